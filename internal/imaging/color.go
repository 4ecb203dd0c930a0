package imaging

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/parallel-recolor/internal/errors"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in multiple representations.
type ColorResult struct {
	Hex    string   `json:"hex"`    // Hex format "#rrggbb" (no alpha)
	RGB    RGBColor `json:"rgb"`    // RGB components
	Alpha  uint8    `json:"alpha"`  // Alpha channel of the sample
	HSL    HSLColor `json:"hsl"`    // HSL representation
	Packed string   `json:"packed"` // Packed sample "#AARRGGBB"
}

// Describe converts a sample into its multi-format description.
//
// Hex and HSL come from go-colorful. Hue is rounded to whole degrees and
// saturation/lightness to whole percent.
func Describe(s Sample) ColorResult {
	r, g, b := s.RGB()
	c, _ := colorful.MakeColor(s.Color())
	if s.Alpha() != 0xFF {
		// MakeColor divides out alpha; describe the raw channels instead.
		c = colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	}
	h, sat, l := c.Hsl()
	if math.IsNaN(h) {
		h = 0
	}

	return ColorResult{
		Hex:    c.Hex(),
		RGB:    RGBColor{R: r, G: g, B: b},
		Alpha:  s.Alpha(),
		HSL:    HSLColor{H: int(math.Round(h)) % 360, S: int(math.Round(sat * 100)), L: int(math.Round(l * 100))},
		Packed: s.String(),
	}
}

// SampleColor extracts the color value at a specific pixel coordinate.
//
// Coordinates are 0-based with origin at top-left. An InvalidArgumentError
// is returned when (x, y) lies outside the grid.
func SampleColor(grid *PixelGrid, x, y int) (*ColorResult, error) {
	if !grid.InBounds(x, y) {
		return nil, errors.NewInvalidArgument("coordinates", [2]int{x, y}, "outside image bounds")
	}
	res := Describe(grid.At(x, y))
	return &res, nil
}
