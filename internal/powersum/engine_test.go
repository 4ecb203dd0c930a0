package powersum

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/ironsheep/parallel-recolor/internal/bigmath"
	"github.com/ironsheep/parallel-recolor/internal/errors"
	"github.com/ironsheep/parallel-recolor/internal/taskrunner"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestCompute_KnownValue(t *testing.T) {
	for _, s := range []bigmath.Strategy{bigmath.Squaring, bigmath.Unary} {
		t.Run(s.String(), func(t *testing.T) {
			e := New(WithStrategy(s))
			assert.Equal(t, s, e.Strategy())

			got, err := e.Compute(big.NewInt(2), big.NewInt(100), big.NewInt(3), big.NewInt(50))
			require.NoError(t, err)
			assert.Equal(t, "1267651318126217093349291975625", got.String())
		})
	}
}

func TestCompute_MatchesIndependentArithmetic(t *testing.T) {
	tests := []struct {
		b1, p1, b2, p2 int64
	}{
		{0, 0, 0, 0},
		{0, 5, 7, 0},
		{-2, 3, 5, 2},
		{17, 23, 19, 29},
		{1, 1000, -1, 999},
	}

	e := New(WithLogger(zap.NewNop()))
	for _, tt := range tests {
		want := new(big.Int).Add(
			new(big.Int).Exp(big.NewInt(tt.b1), big.NewInt(tt.p1), nil),
			new(big.Int).Exp(big.NewInt(tt.b2), big.NewInt(tt.p2), nil),
		)

		got, err := e.Compute(big.NewInt(tt.b1), big.NewInt(tt.p1), big.NewInt(tt.b2), big.NewInt(tt.p2))
		require.NoError(t, err)
		assert.Equal(t, 0, want.Cmp(got), "%d^%d + %d^%d", tt.b1, tt.p1, tt.b2, tt.p2)
	}
}

func TestCompute_ZeroPowers(t *testing.T) {
	got, err := New().Compute(big.NewInt(0), big.NewInt(0), big.NewInt(12345), big.NewInt(0))
	require.NoError(t, err)
	assert.Equal(t, "2", got.String())
}

func TestCompute_NegativePower(t *testing.T) {
	e := New()

	_, err := e.Compute(big.NewInt(2), big.NewInt(-1), big.NewInt(3), big.NewInt(2))
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "first term")

	_, err = e.Compute(big.NewInt(2), big.NewInt(1), big.NewInt(3), big.NewInt(-2))
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "second term")
	assert.False(t, errors.IsWorkerFailure(err), "rejected before any unit runs")
}

func TestCompute_NilOperand(t *testing.T) {
	_, err := New().Compute(nil, big.NewInt(1), big.NewInt(3), big.NewInt(2))
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestCompute_UnknownStrategyFailsAggregate(t *testing.T) {
	e := New(WithStrategy(bigmath.Strategy(42)))

	got, err := e.Compute(big.NewInt(2), big.NewInt(3), big.NewInt(4), big.NewInt(5))
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.IsWorkerFailure(err))
}

func TestCompute_DoesNotMutateOperands(t *testing.T) {
	b1, p1 := big.NewInt(9), big.NewInt(9)
	b2, p2 := big.NewInt(8), big.NewInt(8)

	_, err := New(WithStrategy(bigmath.Unary)).Compute(b1, p1, b2, p2)
	require.NoError(t, err)
	assert.Equal(t, "9", b1.String())
	assert.Equal(t, "9", p1.String())
	assert.Equal(t, "8", b2.String())
	assert.Equal(t, "8", p2.String())
}

func TestCompute_BoundedRunner(t *testing.T) {
	e := New(WithRunner(taskrunner.New(taskrunner.WithLimit(1))))

	got, err := e.Compute(big.NewInt(2), big.NewInt(10), big.NewInt(2), big.NewInt(10))
	require.NoError(t, err)
	assert.Equal(t, "2048", got.String())
}
