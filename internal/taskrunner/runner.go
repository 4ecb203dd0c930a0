package taskrunner

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/parallel-recolor/internal/errors"
	"github.com/ironsheep/parallel-recolor/internal/logging"
)

// WorkUnit is one independent computation producing exactly one value.
// A unit must not read or write state that another unit writes.
type WorkUnit[T any] func() (T, error)

// Outcome is the tagged result of a single unit: either Value or Err is meaningful.
type Outcome[T any] struct {
	Value T
	Err   error
}

// Failed reports whether the unit ended with an error or a panic.
func (o Outcome[T]) Failed() bool {
	return o.Err != nil
}

const (
	stateSubmitted int32 = iota
	stateRunning
	stateJoined
)

// Handle owns a submitted list of units and, once joined, their outcomes.
// A handle can be run and joined exactly once.
type Handle[T any] struct {
	units    []WorkUnit[T]
	outcomes []Outcome[T]
	state    atomic.Int32
}

// Len returns the number of submitted units.
func (h *Handle[T]) Len() int {
	return len(h.units)
}

// Joined reports whether RunAndJoin has completed for this handle.
func (h *Handle[T]) Joined() bool {
	return h.state.Load() == stateJoined
}

// Outcomes returns a copy of the per-unit outcomes in submission order,
// or nil if the handle has not been joined yet.
func (h *Handle[T]) Outcomes() []Outcome[T] {
	if !h.Joined() {
		return nil
	}
	out := make([]Outcome[T], len(h.outcomes))
	copy(out, h.outcomes)
	return out
}

// Runner executes handles. The zero configuration starts one goroutine per unit.
type Runner struct {
	limit  int
	logger *zap.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithLimit bounds the number of units executing at the same time.
// A limit of zero or less means one goroutine per unit.
func WithLimit(n int) Option {
	return func(r *Runner) {
		if n < 0 {
			n = 0
		}
		r.limit = n
	}
}

// WithLogger sets the logger used for unit lifecycle and failure messages.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// New creates a Runner.
func New(opts ...Option) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.OrNop(r.logger)
	return r
}

// Limit returns the concurrency bound, zero when unbounded.
func (r *Runner) Limit() int {
	return r.limit
}

// Submit takes ownership of units and returns a handle ready to be run.
// The list must be non-empty and must not contain nil units.
func Submit[T any](units []WorkUnit[T]) (*Handle[T], error) {
	if len(units) == 0 {
		return nil, errors.NewInvalidArgument("units", 0, "at least one work unit is required")
	}
	for i, u := range units {
		if u == nil {
			return nil, errors.NewInvalidArgument("units", i, "work unit is nil")
		}
	}

	owned := make([]WorkUnit[T], len(units))
	copy(owned, units)
	return &Handle[T]{
		units:    owned,
		outcomes: make([]Outcome[T], len(units)),
	}, nil
}

// RunAndJoin starts every unit of h, waits for all of them to finish and
// returns their values in submission order.
//
// If any unit fails, the returned error joins one WorkerFailureError per
// failed unit (in submission order) and no values are returned.
func RunAndJoin[T any](r *Runner, h *Handle[T]) ([]T, error) {
	if h == nil {
		return nil, errors.NewInvalidArgument("handle", nil, "handle is nil")
	}
	if r == nil {
		r = New()
	}
	if !h.state.CompareAndSwap(stateSubmitted, stateRunning) {
		return nil, errors.NewInvalidArgument("handle", h.Len(), "handle has already been run")
	}

	logger := r.logger.With(zap.Int("units", len(h.units)), zap.Int("limit", r.limit))
	logger.Debug("Starting work units")
	start := time.Now()

	var g errgroup.Group
	if r.limit > 0 {
		g.SetLimit(r.limit)
	}
	for i, unit := range h.units {
		i, unit := i, unit
		g.Go(func() error {
			h.outcomes[i] = execute(i, unit, logger)
			return h.outcomes[i].Err
		})
	}
	// Wait only reports the first error; every failure is collected below.
	_ = g.Wait()
	h.state.Store(stateJoined)

	var failures []error
	values := make([]T, len(h.outcomes))
	for i, o := range h.outcomes {
		if o.Failed() {
			failures = append(failures, o.Err)
			continue
		}
		values[i] = o.Value
	}

	if len(failures) > 0 {
		logger.Error("Work units failed",
			zap.Int("failed", len(failures)),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(failures[0]))
		return nil, errors.Join(failures...)
	}

	logger.Debug("All work units completed", zap.Duration("elapsed", time.Since(start)))
	return values, nil
}

// Run submits units and joins them in one call.
func Run[T any](r *Runner, units []WorkUnit[T]) ([]T, error) {
	h, err := Submit(units)
	if err != nil {
		return nil, err
	}
	return RunAndJoin(r, h)
}

// execute runs a single unit, turning errors and panics into worker failures.
func execute[T any](index int, unit WorkUnit[T], logger *zap.Logger) (out Outcome[T]) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("Work unit panicked", zap.Int("unit", index), zap.Any("panic", rec))
			out = Outcome[T]{Err: errors.NewWorkerPanic(index, rec)}
		}
	}()

	logger.Debug("Work unit started", zap.Int("unit", index))
	value, err := unit()
	if err != nil {
		logger.Debug("Work unit returned error", zap.Int("unit", index), zap.Error(err))
		return Outcome[T]{Err: errors.NewWorkerFailure(index, err)}
	}
	logger.Debug("Work unit finished", zap.Int("unit", index))
	return Outcome[T]{Value: value}
}
