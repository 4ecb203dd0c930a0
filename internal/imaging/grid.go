package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/parallel-recolor/internal/errors"
)

// Sample is one packed pixel: alpha in the most significant byte, then red,
// green and blue in the least significant byte (0xAARRGGBB).
type Sample uint32

// Pack builds a fully opaque sample from 8-bit channels.
func Pack(r, g, b uint8) Sample {
	return Sample(0xFF)<<24 | Sample(r)<<16 | Sample(g)<<8 | Sample(b)
}

// Red returns the red channel.
func (s Sample) Red() uint8 { return uint8(s >> 16) }

// Green returns the green channel.
func (s Sample) Green() uint8 { return uint8(s >> 8) }

// Blue returns the blue channel.
func (s Sample) Blue() uint8 { return uint8(s) }

// Alpha returns the alpha channel.
func (s Sample) Alpha() uint8 { return uint8(s >> 24) }

// RGB returns the three colour channels.
func (s Sample) RGB() (r, g, b uint8) {
	return s.Red(), s.Green(), s.Blue()
}

// Color converts the sample to a non-premultiplied color.NRGBA.
func (s Sample) Color() color.NRGBA {
	return color.NRGBA{R: s.Red(), G: s.Green(), B: s.Blue(), A: s.Alpha()}
}

// String formats the sample as "#AARRGGBB".
func (s Sample) String() string {
	return fmt.Sprintf("#%08X", uint32(s))
}

// PixelGrid is a width x height raster of packed samples stored row-major.
// Pixel (x, y) lives at Pix[y*Width+x], with (0,0) at the top-left corner.
//
// A PixelGrid carries no locking. Concurrent writers must touch disjoint
// pixels, and a grid being read concurrently must not be written at all.
type PixelGrid struct {
	Width  int
	Height int
	Pix    []Sample
}

// NewPixelGrid allocates a zeroed grid. Both dimensions must be positive.
func NewPixelGrid(width, height int) (*PixelGrid, error) {
	if width <= 0 {
		return nil, errors.NewInvalidArgument("width", width, "must be positive")
	}
	if height <= 0 {
		return nil, errors.NewInvalidArgument("height", height, "must be positive")
	}
	return &PixelGrid{
		Width:  width,
		Height: height,
		Pix:    make([]Sample, width*height),
	}, nil
}

// Bounds returns the grid rectangle, always anchored at (0,0).
func (g *PixelGrid) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.Width, g.Height)
}

// InBounds reports whether (x, y) addresses a pixel of the grid.
func (g *PixelGrid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the sample at (x, y). The caller must keep (x, y) in bounds.
func (g *PixelGrid) At(x, y int) Sample {
	return g.Pix[y*g.Width+x]
}

// Set stores the sample at (x, y). The caller must keep (x, y) in bounds.
func (g *PixelGrid) Set(x, y int, s Sample) {
	g.Pix[y*g.Width+x] = s
}

// Row returns the samples of row y, sharing storage with the grid.
func (g *PixelGrid) Row(y int) []Sample {
	return g.Pix[y*g.Width : (y+1)*g.Width]
}

// FromImage converts any decoded image into an opaque PixelGrid.
//
// The source is first normalised to non-premultiplied NRGBA, so the colour
// channels of translucent pixels keep their stored values. Alpha is then
// dropped: every sample is stored fully opaque.
func FromImage(img image.Image) (*PixelGrid, error) {
	nrgba := imaging.Clone(img)
	bounds := nrgba.Bounds()

	grid, err := NewPixelGrid(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	for y := 0; y < grid.Height; y++ {
		row := grid.Row(y)
		off := nrgba.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		for x := range row {
			p := nrgba.Pix[off : off+4 : off+4]
			row[x] = Pack(p[0], p[1], p[2])
			off += 4
		}
	}
	return grid, nil
}

// ToImage converts the grid into an *image.NRGBA. Samples keep their alpha,
// so pixels that were never written come out fully transparent black.
func (g *PixelGrid) ToImage() *image.NRGBA {
	img := image.NewNRGBA(g.Bounds())
	for y := 0; y < g.Height; y++ {
		off := img.PixOffset(0, y)
		for _, s := range g.Row(y) {
			img.Pix[off+0] = s.Red()
			img.Pix[off+1] = s.Green()
			img.Pix[off+2] = s.Blue()
			img.Pix[off+3] = s.Alpha()
			off += 4
		}
	}
	return img
}

// Equal reports whether both grids have the same dimensions and samples.
func (g *PixelGrid) Equal(other *PixelGrid) bool {
	if g.Width != other.Width || g.Height != other.Height {
		return false
	}
	for i, s := range g.Pix {
		if other.Pix[i] != s {
			return false
		}
	}
	return true
}
