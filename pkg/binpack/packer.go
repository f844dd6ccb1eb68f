package binpack

import "math"

// Packer is the low-level MAXRECTS-BSSF allocator for a single bin.
//
// It keeps a list of maximal free rectangles. Each insertion picks the free
// rectangle (in either orientation) that leaves the shortest leftover side,
// splits every free rectangle overlapping the placement, and prunes free
// rectangles contained in others.
//
// Callers using the Packer directly must check Insert's result or
// Unpositioned: a rectangle that does not fit is not an error here.
type Packer struct {
	width, height float64

	free         []Rect
	positioned   []Rect
	unpositioned []Rect
}

// NewPacker creates a packer for a width x height bin.
func NewPacker(width, height float64) *Packer {
	return &Packer{
		width:  width,
		height: height,
		free:   []Rect{{X: 0, Y: 0, Width: width, Height: height}},
	}
}

// Insert places a width x height rectangle. It returns the placed rectangle
// and true on success. On failure the returned rectangle carries only the
// requested size and false.
func (p *Packer) Insert(width, height float64) (Rect, bool) {
	r, ok := findPosition(width, height, p.free)
	if !ok {
		p.unpositioned = append(p.unpositioned, r)
		return r, false
	}

	next := make([]Rect, 0, len(p.free)+4)
	var added []Rect
	for _, f := range p.free {
		if !f.Intersects(r) {
			next = append(next, f)
			continue
		}
		added = append(added, splitRect(f, r)...)
	}
	p.free = pruneRects(append(next, added...))

	p.positioned = append(p.positioned, r)
	return r, true
}

// Size returns the bin dimensions.
func (p *Packer) Size() (width, height float64) {
	return p.width, p.height
}

// Positioned returns the placed rectangles in insertion order.
func (p *Packer) Positioned() []Rect {
	return append([]Rect(nil), p.positioned...)
}

// Unpositioned returns the rectangles that did not fit, in insertion order.
func (p *Packer) Unpositioned() []Rect {
	return append([]Rect(nil), p.unpositioned...)
}

// FreeRects returns the current free rectangle list.
func (p *Packer) FreeRects() []Rect {
	return append([]Rect(nil), p.free...)
}

// Used returns the ratio of occupied area to bin area.
func (p *Packer) Used() float64 {
	if p.width <= 0 || p.height <= 0 {
		return 0
	}
	var area float64
	for _, r := range p.positioned {
		area += r.Area()
	}
	return area / (p.width * p.height)
}

// findPosition scores every free rectangle against both orientations and
// returns the best short-side fit, tie-broken by the long side. The
// rectangle is placed at the free rectangle's minimum corner.
func findPosition(width, height float64, free []Rect) (Rect, bool) {
	best := Rect{Width: width, Height: height}
	bestShort, bestLong := math.MaxFloat64, math.MaxFloat64
	found := false

	fit := func(f Rect, w, h float64) {
		if f.Width < w || f.Height < h {
			return
		}
		leftoverH := math.Abs(f.Width - w)
		leftoverV := math.Abs(f.Height - h)
		short := math.Min(leftoverH, leftoverV)
		long := math.Max(leftoverH, leftoverV)

		if short < bestShort || (short == bestShort && long < bestLong) {
			best = Rect{X: f.X, Y: f.Y, Width: w, Height: h}
			bestShort, bestLong = short, long
			found = true
		}
	}

	for _, f := range free {
		fit(f, width, height)
		fit(f, height, width)
	}

	if best.Width != width {
		best.Rotated = true
	}
	return best, found
}

// splitRect returns the up to four maximal pieces of f left uncovered by r:
//
//	+---+---+---+
//	|   ! 4 !   |
//	+...+---+...+
//	| 1 |   | 2 |
//	+...+---+...+
//	|   ! 3 !   |
//	+---+---+---+
//
// Pieces overlap each other; pruneRects removes the redundant ones later.
func splitRect(f, r Rect) []Rect {
	var out []Rect
	add := func(minX, minY, maxX, maxY float64) {
		w, h := maxX-minX, maxY-minY
		if w > 0 && h > 0 {
			out = append(out, Rect{X: minX, Y: minY, Width: w, Height: h})
		}
	}

	fMaxX, fMaxY := f.X+f.Width, f.Y+f.Height
	rMaxX, rMaxY := r.X+r.Width, r.Y+r.Height

	if r.X <= fMaxX {
		add(f.X, f.Y, r.X, fMaxY) // 1
	}
	if rMaxX >= f.X {
		add(rMaxX, f.Y, fMaxX, fMaxY) // 2
	}
	if r.Y <= fMaxY {
		add(f.X, f.Y, fMaxX, r.Y) // 3
	}
	if rMaxY >= f.Y {
		add(f.X, rMaxY, fMaxX, fMaxY) // 4
	}
	return out
}

// pruneRects drops every free rectangle contained in another one. Of two
// identical rectangles the earlier one is dropped.
func pruneRects(free []Rect) []Rect {
	dead := make([]bool, len(free))
	for i := range free {
		for j := i + 1; j < len(free); j++ {
			if dead[i] && dead[j] {
				continue
			}
			if free[j].Contains(free[i]) {
				dead[i] = true
				break
			}
			if free[i].Contains(free[j]) {
				dead[j] = true
			}
		}
	}

	out := free[:0]
	for i, f := range free {
		if !dead[i] {
			out = append(out, f)
		}
	}
	return out
}
