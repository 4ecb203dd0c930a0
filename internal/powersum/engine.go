// Package powersum computes base1^power1 + base2^power2 by evaluating the
// two exponentiations as concurrent work units and adding their results.
package powersum

import (
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"

	"github.com/ironsheep/parallel-recolor/internal/bigmath"
	"github.com/ironsheep/parallel-recolor/internal/logging"
	"github.com/ironsheep/parallel-recolor/internal/taskrunner"
)

// Engine evaluates power sums on a task runner.
type Engine struct {
	runner   *taskrunner.Runner
	strategy bigmath.Strategy
	logger   *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRunner sets the runner that executes the two exponentiations.
func WithRunner(r *taskrunner.Runner) Option {
	return func(e *Engine) { e.runner = r }
}

// WithStrategy selects the exponentiation strategy. The default is bigmath.Squaring.
func WithStrategy(s bigmath.Strategy) Option {
	return func(e *Engine) { e.strategy = s }
}

// WithLogger sets the engine logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{strategy: bigmath.Squaring}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = logging.OrNop(e.logger)
	if e.runner == nil {
		e.runner = taskrunner.New(taskrunner.WithLogger(e.logger))
	}
	return e
}

// Strategy returns the configured exponentiation strategy.
func (e *Engine) Strategy() bigmath.Strategy {
	return e.strategy
}

// Compute returns base1^power1 + base2^power2.
//
// Both powers must be non-negative. Operands are validated before any work
// unit starts, and a failing unit fails the whole sum.
func (e *Engine) Compute(base1, power1, base2, power2 *big.Int) (*big.Int, error) {
	if err := bigmath.ValidatePower(base1, power1); err != nil {
		return nil, fmt.Errorf("first term: %w", err)
	}
	if err := bigmath.ValidatePower(base2, power2); err != nil {
		return nil, fmt.Errorf("second term: %w", err)
	}

	units := []taskrunner.WorkUnit[*big.Int]{
		e.powerUnit(base1, power1),
		e.powerUnit(base2, power2),
	}

	start := time.Now()
	terms, err := taskrunner.Run(e.runner, units)
	if err != nil {
		return nil, fmt.Errorf("power sum: %w", err)
	}

	sum := bigmath.Add(terms[0], terms[1])
	e.logger.Debug("Computed power sum",
		zap.Stringer("strategy", e.strategy),
		zap.Int("bits", sum.BitLen()),
		zap.Duration("elapsed", time.Since(start)))
	return sum, nil
}

func (e *Engine) powerUnit(base, power *big.Int) taskrunner.WorkUnit[*big.Int] {
	return func() (*big.Int, error) {
		return bigmath.Power(base, power, e.strategy)
	}
}
