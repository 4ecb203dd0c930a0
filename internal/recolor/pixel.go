package recolor

import (
	"github.com/ironsheep/parallel-recolor/internal/imaging"
)

// greyTolerance is the exclusive bound on pairwise channel differences for
// a pixel to count as a shade of grey.
const greyTolerance = 30

// Channel shifts applied to grey pixels.
const (
	redBoost   = 10
	greenDrop  = 80
	blueDrop   = 20
	channelMax = 255
)

// IsShadeOfGrey reports whether all three channels are mutually within
// greyTolerance of each other.
func IsShadeOfGrey(r, g, b uint8) bool {
	return absDiff(r, g) < greyTolerance &&
		absDiff(r, b) < greyTolerance &&
		absDiff(g, b) < greyTolerance
}

// RecolorPixel maps one source sample to its destination sample.
//
// Grey pixels are tinted (red +10, green -80, blue -20, each clamped to
// 0-255); every other pixel keeps its channels. The result is always fully
// opaque.
func RecolorPixel(s imaging.Sample) imaging.Sample {
	r, g, b := s.RGB()
	if !IsShadeOfGrey(r, g, b) {
		return imaging.Pack(r, g, b)
	}
	return imaging.Pack(
		uint8(min(channelMax, int(r)+redBoost)),
		uint8(max(0, int(g)-greenDrop)),
		uint8(max(0, int(b)-blueDrop)),
	)
}

// RecolorStrip writes RecolorPixel of every source pixel inside strip to
// dst, clipping the strip to both grids. It returns the number of grey
// pixels that were tinted.
//
// Only pixels inside the strip are written, so strips that do not overlap
// can be processed concurrently against the same destination.
func RecolorStrip(src, dst *imaging.PixelGrid, strip Strip) int {
	area := strip.Rect().Intersect(src.Bounds()).Intersect(dst.Bounds())

	tinted := 0
	for y := area.Min.Y; y < area.Max.Y; y++ {
		in := src.Row(y)
		out := dst.Row(y)
		for x := area.Min.X; x < area.Max.X; x++ {
			r, g, b := in[x].RGB()
			if IsShadeOfGrey(r, g, b) {
				tinted++
			}
			out[x] = RecolorPixel(in[x])
		}
	}
	return tinted
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
