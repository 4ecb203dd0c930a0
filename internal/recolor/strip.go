package recolor

import (
	"fmt"
	"image"
	"strings"

	"github.com/ironsheep/parallel-recolor/internal/errors"
)

// Strip is a horizontal band of the image assigned to one worker:
// x in [Left, Left+Width), y in [Top, Top+Height).
type Strip struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rect returns the strip as an image.Rectangle.
func (s Strip) Rect() image.Rectangle {
	return image.Rect(s.Left, s.Top, s.Left+s.Width, s.Top+s.Height)
}

// Empty reports whether the strip covers no pixels.
func (s Strip) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

func (s Strip) String() string {
	return fmt.Sprintf("strip(x=%d..%d, y=%d..%d)", s.Left, s.Left+s.Width, s.Top, s.Top+s.Height)
}

// RemainderPolicy decides what happens to the rows left over when the
// image height is not a multiple of the worker count.
type RemainderPolicy int

const (
	// RemainderToLast extends the last strip down to the bottom row, so every
	// row is transformed.
	RemainderToLast RemainderPolicy = iota
	// RemainderDrop leaves the trailing height%workers rows unassigned. They
	// are never written and stay zero in the destination.
	RemainderDrop
)

// String returns the configuration name of the policy.
func (p RemainderPolicy) String() string {
	switch p {
	case RemainderToLast:
		return "last"
	case RemainderDrop:
		return "drop"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParseRemainderPolicy converts a configuration name into a policy.
func ParseRemainderPolicy(name string) (RemainderPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "last", "":
		return RemainderToLast, nil
	case "drop":
		return RemainderDrop, nil
	default:
		return RemainderToLast, errors.NewInvalidArgument("remainder_policy", name, "must be last or drop")
	}
}

// Partition splits a width x height grid into workers horizontal strips of
// height/workers rows each (truncating division), ordered top to bottom.
// The rows left over are handled according to policy.
//
// Strips never overlap. When workers exceeds height, every strip but the
// last is empty, and under RemainderDrop all of them are.
func Partition(width, height, workers int, policy RemainderPolicy) ([]Strip, error) {
	if width <= 0 {
		return nil, errors.NewInvalidArgument("width", width, "must be positive")
	}
	if height <= 0 {
		return nil, errors.NewInvalidArgument("height", height, "must be positive")
	}
	if workers <= 0 {
		return nil, errors.NewInvalidArgument("workers", workers, "must be positive")
	}
	if policy != RemainderToLast && policy != RemainderDrop {
		return nil, errors.NewInvalidArgument("remainder_policy", policy, "unknown policy")
	}

	stripHeight := height / workers
	strips := make([]Strip, workers)
	for i := range strips {
		strips[i] = Strip{
			Left:   0,
			Top:    i * stripHeight,
			Width:  width,
			Height: stripHeight,
		}
	}

	if policy == RemainderToLast {
		last := &strips[workers-1]
		last.Height = height - last.Top
	}
	return strips, nil
}

// Unassigned returns the number of rows no strip covers.
func Unassigned(height int, strips []Strip) int {
	covered := 0
	for _, s := range strips {
		if !s.Empty() {
			covered += s.Height
		}
	}
	return height - covered
}
