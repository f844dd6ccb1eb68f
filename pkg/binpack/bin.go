package binpack

import (
	"errors"
	"fmt"
	"math"
	"sort"

	pmath "github.com/Faultbox/propforge/pkg/math"
)

var (
	// ErrInvalidRequest is returned for negative, NaN or infinite sizes.
	ErrInvalidRequest = errors.New("binpack: invalid rectangle size")
	// ErrBadGrowth is returned when the growth factor cannot enlarge the bin.
	ErrBadGrowth = errors.New("binpack: growth factor must be greater than 1")
	// ErrTooLarge is returned when the bin would have to grow past the
	// configured ceiling to fit every request.
	ErrTooLarge = errors.New("binpack: footprints do not fit under the size ceiling")
)

// Request is one footprint a mesh needs in the atlas.
type Request struct {
	Width, Height float64
	// Owner names the part that reported the footprint.
	Owner string
	// Face is the part-local face or region index.
	Face int
}

// Area returns Width * Height.
func (r Request) Area() float64 {
	return r.Width * r.Height
}

// Placement is the packing result for one request. Placements are indexed
// like the request list handed to the bin.
type Placement struct {
	Request Request
	// Rect is the occupied atlas region, padding included.
	Rect       Rect
	Positioned bool
	// UV maps footprint-local coordinates in [0,Width]x[0,Height] into
	// normalized atlas coordinates. Set by GenerateUV.
	UV pmath.Mat3
}

// UnitUV returns the transform for footprint coordinates normalized to
// the unit square.
func (p Placement) UnitUV() pmath.Mat3 {
	return p.UV.Mul(pmath.Scale2D(float32(p.Request.Width), float32(p.Request.Height)))
}

// Bin packs requests into a fixed-size bin with uniform padding.
type Bin struct {
	width, height float64
	padding       float64
	packer        *Packer
	less          func(a, b Request) bool

	placements []Placement
}

// NewBin creates a bin. Every request is inserted grown by padding on both
// axes so neighbors never touch.
func NewBin(width, height, padding float64) *Bin {
	return &Bin{
		width:   width,
		height:  height,
		padding: padding,
		packer:  NewPacker(width, height),
		less:    largestFirst,
	}
}

func largestFirst(a, b Request) bool {
	return a.Area() > b.Area()
}

// SetOrder replaces the insertion order used by AddAll. A nil function
// keeps the caller's order.
func (b *Bin) SetOrder(less func(a, b Request) bool) {
	b.less = less
}

// AddAll packs requests, by default largest area first with ties kept in
// input order. Placements for these requests are appended after any
// earlier ones.
func (b *Bin) AddAll(reqs []Request) {
	base := len(b.placements)
	for _, r := range reqs {
		b.placements = append(b.placements, Placement{Request: r})
	}

	order := make([]int, len(reqs))
	for i := range order {
		order[i] = i
	}
	if b.less != nil {
		sort.SliceStable(order, func(i, j int) bool {
			return b.less(reqs[order[i]], reqs[order[j]])
		})
	}

	for _, i := range order {
		b.insert(base + i)
	}
}

// Add packs a single request and returns its placement index.
func (b *Bin) Add(r Request) int {
	b.placements = append(b.placements, Placement{Request: r})
	i := len(b.placements) - 1
	b.insert(i)
	return i
}

func (b *Bin) insert(i int) {
	p := &b.placements[i]
	rect, ok := b.packer.Insert(p.Request.Width+b.padding, p.Request.Height+b.padding)
	p.Rect = rect
	p.Positioned = ok
}

// GenerateUV computes the UV matrix of every positioned placement:
// scale by the inverse bin size, translate to the placement plus half the
// padding and, for rotated placements, turn the footprint a quarter turn
// clockwise first.
func (b *Bin) GenerateUV() {
	s := pmath.Scale2D(float32(1/b.width), float32(1/b.height))
	half := b.padding / 2
	for i := range b.placements {
		p := &b.placements[i]
		if !p.Positioned {
			continue
		}
		r := p.Rect
		if r.Rotated {
			p.UV = s.
				Mul(pmath.Translate2D(float32(r.X+half), float32(r.Y-half))).
				Mul(pmath.Translate2D(0, float32(r.Height))).
				Mul(pmath.Rotate2D(-math.Pi / 2))
		} else {
			p.UV = s.Mul(pmath.Translate2D(float32(r.X+half), float32(r.Y+half)))
		}
	}
}

// Placements returns the results indexed like the requests.
func (b *Bin) Placements() []Placement {
	return append([]Placement(nil), b.placements...)
}

// Placement returns the result for request i.
func (b *Bin) Placement(i int) Placement {
	return b.placements[i]
}

// Unpositioned returns the indexes of requests that did not fit.
func (b *Bin) Unpositioned() []int {
	var out []int
	for i, p := range b.placements {
		if !p.Positioned {
			out = append(out, i)
		}
	}
	return out
}

// Size returns the bin dimensions.
func (b *Bin) Size() (width, height float64) {
	return b.width, b.height
}

// Padding returns the padding added to every request.
func (b *Bin) Padding() float64 {
	return b.padding
}

// Used returns the ratio of occupied area to bin area.
func (b *Bin) Used() float64 {
	return b.packer.Used()
}

// FaceUV returns the UV matrices of owner's faces 0..n-1 as set by
// GenerateUV. Each maps a face's footprint units, 0..Width by 0..Height of
// its request, into atlas UV space, so callers scale unit coordinates by the
// footprint before applying it. Faces that were never requested or not
// positioned get a zero-scale matrix, which collapses their texture
// coordinates to the atlas origin.
func (b *Bin) FaceUV(owner string, n int) []pmath.Mat3 {
	out := make([]pmath.Mat3, n)
	for i := range out {
		out[i] = pmath.Scale2D(0, 0)
	}
	for _, p := range b.placements {
		if p.Request.Owner != owner || !p.Positioned {
			continue
		}
		if p.Request.Face >= 0 && p.Request.Face < n {
			out[p.Request.Face] = p.UV
		}
	}
	return out
}

func validate(r Request) error {
	for _, v := range []float64{r.Width, r.Height} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s face %d is %gx%g", ErrInvalidRequest, r.Owner, r.Face, r.Width, r.Height)
		}
	}
	return nil
}
