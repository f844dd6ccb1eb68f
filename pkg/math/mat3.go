package math

import "github.com/chewxy/math32"

// Mat3 is a 3x3 matrix in column-major order used as a 2D affine transform
// for texture coordinates.
// Layout: [m0 m3 m6]
//
//	[m1 m4 m7]
//	[m2 m5 m8]
type Mat3 [9]float32

// Identity3 returns an identity matrix.
func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Translate2D returns a translation matrix.
func Translate2D(x, y float32) Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		x, y, 1,
	}
}

// Scale2D returns a scale matrix. Scale2D(0, 0) collapses every point to
// the origin.
func Scale2D(x, y float32) Mat3 {
	return Mat3{
		x, 0, 0,
		0, y, 0,
		0, 0, 1,
	}
}

// Rotate2D returns a counter-clockwise rotation matrix.
// angle is in radians.
func Rotate2D(angle float32) Mat3 {
	s, c := math32.Sincos(angle)

	return Mat3{
		c, s, 0,
		-s, c, 0,
		0, 0, 1,
	}
}

// Mul multiplies this matrix by another (m * other). The result applies
// other first.
func (m Mat3) Mul(other Mat3) Mat3 {
	var result Mat3
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			result[col*3+row] =
				m[0*3+row]*other[col*3+0] +
					m[1*3+row]*other[col*3+1] +
					m[2*3+row]*other[col*3+2]
		}
	}
	return result
}

// Apply transforms a 2D point.
func (m Mat3) Apply(p Vec2) Vec2 {
	return Vec2{
		m[0]*p.X + m[3]*p.Y + m[6],
		m[1]*p.X + m[4]*p.Y + m[7],
	}
}

// ApplyXY transforms the point (x, y).
func (m Mat3) ApplyXY(x, y float32) (float32, float32) {
	return m[0]*x + m[3]*y + m[6], m[1]*x + m[4]*y + m[7]
}
