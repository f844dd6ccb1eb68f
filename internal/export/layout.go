package export

import (
	"hash/fnv"
	"image"
	"image/color"
	"image/draw"
	"io"

	"golang.org/x/image/bmp"

	"github.com/Faultbox/propforge/pkg/binpack"
)

var (
	layoutBackground = color.RGBA{0x20, 0x22, 0x28, 0xff}
	layoutBorder     = color.RGBA{0xf0, 0xf0, 0xf0, 0xff}
)

// LayoutImage paints the placements of a packing into a square image of
// px pixels. Each owner gets its own color, and the padded region is
// outlined around the footprint.
func LayoutImage(res *binpack.Result, px int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, px, px))
	draw.Draw(img, img.Bounds(), image.NewUniform(layoutBackground), image.Point{}, draw.Src)

	size, _ := res.Size()
	scale := float64(px) / size
	half := res.Padding() / 2
	for _, p := range res.Placements() {
		if !p.Positioned {
			continue
		}
		r := p.Rect
		outer := pixelRect(r.X, r.Y, r.Width, r.Height, scale, px)
		inner := pixelRect(r.X+half, r.Y+half, r.Width-2*half, r.Height-2*half, scale, px)

		strokeRect(img, outer, layoutBorder)
		draw.Draw(img, inner, image.NewUniform(ownerColor(p.Request.Owner)), image.Point{}, draw.Src)
	}
	return img
}

// WriteLayoutBMP encodes LayoutImage as BMP.
func WriteLayoutBMP(w io.Writer, res *binpack.Result, px int) error {
	return bmp.Encode(w, LayoutImage(res, px))
}

// pixelRect converts atlas units to pixels with V pointing up.
func pixelRect(x, y, w, h, scale float64, px int) image.Rectangle {
	x0 := int(x * scale)
	x1 := int((x + w) * scale)
	y0 := px - int((y+h)*scale)
	y1 := px - int(y*scale)
	return image.Rect(x0, y0, x1, y1).Intersect(image.Rect(0, 0, px, px))
}

func strokeRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, c)
		img.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, c)
		img.Set(r.Max.X-1, y, c)
	}
}

func ownerColor(owner string) color.RGBA {
	h := fnv.New32a()
	h.Write([]byte(owner))
	v := h.Sum32()
	// Keep channels bright enough to read against the background.
	return color.RGBA{
		R: 0x60 + uint8(v)%0x90,
		G: 0x60 + uint8(v>>8)%0x90,
		B: 0x60 + uint8(v>>16)%0x90,
		A: 0xff,
	}
}
