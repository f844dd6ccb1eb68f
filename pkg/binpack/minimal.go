package binpack

import (
	"fmt"
	"math"
)

// Default packing options.
const (
	DefaultPadding = 0.015
	DefaultGrowth  = 1.1
	// DefaultMaxScale bounds the bin side at DefaultMaxScale times the
	// start size when Options.MaxSize is zero.
	DefaultMaxScale = 4096
)

// Options controls MinimalPacking.
type Options struct {
	// Padding is a fraction of the current bin side added around every
	// request on each attempt.
	Padding float64
	// Growth multiplies the bin side after a failed attempt. Zero means
	// DefaultGrowth.
	Growth float64
	// MaxSize is the largest bin side tried. Zero means DefaultMaxScale
	// times the start size.
	MaxSize float64
}

// DefaultOptions returns the standard padding and growth.
func DefaultOptions() Options {
	return Options{Padding: DefaultPadding, Growth: DefaultGrowth}
}

// Result is a successful minimal packing.
type Result struct {
	*Bin
	// Attempts lists every bin side tried, in order. The last entry is the
	// size of Bin.
	Attempts []float64
}

// MinimalPacking finds the smallest square bin, growing geometrically from
// startSize, into which every request fits. Each attempt restarts from an
// empty bin. UV matrices are generated for the final bin.
func MinimalPacking(reqs []Request, startSize float64, opts Options) (*Result, error) {
	if opts.Growth == 0 {
		opts.Growth = DefaultGrowth
	}
	if opts.Growth <= 1 || math.IsNaN(opts.Growth) || math.IsInf(opts.Growth, 0) {
		return nil, fmt.Errorf("%w: got %g", ErrBadGrowth, opts.Growth)
	}
	if startSize <= 0 || math.IsNaN(startSize) || math.IsInf(startSize, 0) {
		return nil, fmt.Errorf("%w: start size %g", ErrInvalidRequest, startSize)
	}
	for _, r := range reqs {
		if err := validate(r); err != nil {
			return nil, err
		}
	}

	maxSize := opts.MaxSize
	if maxSize <= 0 {
		maxSize = startSize * DefaultMaxScale
	}

	res := &Result{}
	size := startSize
	for {
		bin := NewBin(size, size, opts.Padding*size)
		bin.AddAll(reqs)
		res.Attempts = append(res.Attempts, size)

		if missing := bin.Unpositioned(); len(missing) > 0 {
			next := size * opts.Growth
			if next > maxSize {
				return nil, fmt.Errorf("%w: %d of %d rectangles unplaced at size %g (limit %g)",
					ErrTooLarge, len(missing), len(reqs), size, maxSize)
			}
			size = next
			continue
		}

		bin.GenerateUV()
		res.Bin = bin
		return res, nil
	}
}
