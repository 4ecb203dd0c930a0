package recolor

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ironsheep/parallel-recolor/internal/errors"
	"github.com/ironsheep/parallel-recolor/internal/imaging"
	"github.com/ironsheep/parallel-recolor/internal/logging"
	"github.com/ironsheep/parallel-recolor/internal/taskrunner"
)

// StripResult is what one strip's work unit reports back.
type StripResult struct {
	Strip  Strip `json:"strip"`
	Tinted int   `json:"tinted"`
}

// Report summarises a recolor run. Strips are listed top to bottom.
type Report struct {
	Width           int           `json:"width"`
	Height          int           `json:"height"`
	Workers         int           `json:"workers"`
	RemainderPolicy string        `json:"remainder_policy"`
	Strips          []StripResult `json:"strips"`
	TintedPixels    int           `json:"tinted_pixels"`
	UnassignedRows  int           `json:"unassigned_rows"`
	Elapsed         time.Duration `json:"elapsed_ns"`
}

// Engine recolors whole images by running one work unit per strip.
type Engine struct {
	runner *taskrunner.Runner
	policy RemainderPolicy
	logger *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRunner sets the runner used for the strip work units.
func WithRunner(r *taskrunner.Runner) Option {
	return func(e *Engine) { e.runner = r }
}

// WithRemainderPolicy sets how leftover rows are handled. The default is RemainderToLast.
func WithRemainderPolicy(p RemainderPolicy) Option {
	return func(e *Engine) { e.policy = p }
}

// WithLogger sets the engine logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates an Engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{policy: RemainderToLast}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = logging.OrNop(e.logger)
	if e.runner == nil {
		e.runner = taskrunner.New(taskrunner.WithLogger(e.logger))
	}
	return e
}

// Policy returns the configured remainder policy.
func (e *Engine) Policy() RemainderPolicy {
	return e.policy
}

// Recolor transforms src into a new grid of the same size using workers
// concurrent strips. src is only read.
//
// Invalid input (nil or empty grid, non-positive worker count) is rejected
// before any strip starts. If any strip fails, no grid is returned.
func (e *Engine) Recolor(src *imaging.PixelGrid, workers int) (*imaging.PixelGrid, *Report, error) {
	if src == nil {
		return nil, nil, errors.NewInvalidArgument("source", nil, "source grid is nil")
	}
	if len(src.Pix) != src.Width*src.Height {
		return nil, nil, errors.NewInvalidArgument("source", len(src.Pix), "pixel buffer does not match dimensions")
	}

	strips, err := Partition(src.Width, src.Height, workers, e.policy)
	if err != nil {
		return nil, nil, err
	}

	dst, err := imaging.NewPixelGrid(src.Width, src.Height)
	if err != nil {
		return nil, nil, err
	}

	units := make([]taskrunner.WorkUnit[StripResult], len(strips))
	for i, strip := range strips {
		strip := strip
		units[i] = func() (StripResult, error) {
			return StripResult{Strip: strip, Tinted: RecolorStrip(src, dst, strip)}, nil
		}
	}

	start := time.Now()
	results, err := taskrunner.Run(e.runner, units)
	if err != nil {
		return nil, nil, fmt.Errorf("recolor: %w", err)
	}

	report := &Report{
		Width:           src.Width,
		Height:          src.Height,
		Workers:         workers,
		RemainderPolicy: e.policy.String(),
		Strips:          results,
		UnassignedRows:  Unassigned(src.Height, strips),
		Elapsed:         time.Since(start),
	}
	for _, r := range results {
		report.TintedPixels += r.Tinted
	}

	e.logger.Debug("Recolored image",
		zap.Int("width", report.Width),
		zap.Int("height", report.Height),
		zap.Int("workers", workers),
		zap.Stringer("policy", e.policy),
		zap.Int("tinted", report.TintedPixels),
		zap.Int("unassigned_rows", report.UnassignedRows),
		zap.Duration("elapsed", report.Elapsed))
	if report.UnassignedRows > 0 {
		e.logger.Warn("Rows left untransformed",
			zap.Int("rows", report.UnassignedRows),
			zap.Stringer("policy", e.policy))
	}

	return dst, report, nil
}
