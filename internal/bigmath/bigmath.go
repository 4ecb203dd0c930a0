// Package bigmath wraps the arbitrary-precision integer operations used by
// the power-sum engine. Operands are never modified; every operation
// returns a freshly allocated value.
package bigmath

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ironsheep/parallel-recolor/internal/errors"
)

// Strategy selects how Power raises a base to an exponent.
type Strategy int

const (
	// Squaring uses binary exponentiation: O(log power) multiplications.
	Squaring Strategy = iota
	// Unary multiplies the accumulator by the base once per unit of power.
	Unary
)

// String returns the configuration name of the strategy.
func (s Strategy) String() string {
	switch s {
	case Squaring:
		return "squaring"
	case Unary:
		return "unary"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// ParseStrategy converts a configuration name into a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "squaring", "":
		return Squaring, nil
	case "unary":
		return Unary, nil
	default:
		return Squaring, errors.NewInvalidArgument("strategy", name, "must be squaring or unary")
	}
}

var one = big.NewInt(1)

// Power returns base^power. power must be non-negative; power 0 yields 1
// for every base, including 0.
func Power(base, power *big.Int, s Strategy) (*big.Int, error) {
	if err := ValidatePower(base, power); err != nil {
		return nil, err
	}

	switch s {
	case Squaring:
		return new(big.Int).Exp(base, power, nil), nil
	case Unary:
		return unaryPower(base, power), nil
	default:
		return nil, errors.NewInvalidArgument("strategy", s, "unknown exponentiation strategy")
	}
}

// ValidatePower checks the operands accepted by Power.
func ValidatePower(base, power *big.Int) error {
	if base == nil {
		return errors.NewInvalidArgument("base", nil, "must not be nil")
	}
	if power == nil {
		return errors.NewInvalidArgument("power", nil, "must not be nil")
	}
	if power.Sign() < 0 {
		return errors.NewInvalidArgument("power", power.String(), "must be non-negative")
	}
	return nil
}

// unaryPower multiplies an accumulator starting at 1 by base, power times.
func unaryPower(base, power *big.Int) *big.Int {
	result := big.NewInt(1)
	for i := new(big.Int); i.Cmp(power) < 0; i.Add(i, one) {
		result.Mul(result, base)
	}
	return result
}

// Add returns a+b.
func Add(a, b *big.Int) *big.Int {
	return new(big.Int).Add(a, b)
}

// Parse reads a base-10 integer.
func Parse(field, s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return nil, errors.NewInvalidArgument(field, s, "not a base-10 integer")
	}
	return v, nil
}
