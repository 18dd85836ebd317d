package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateArithmetic(t *testing.T) {
	t.Parallel()
	pairs := [][2]float64{{10, 4}, {-2.5, 0.5}, {0, 7}, {1e6, -3}}
	for _, p := range pairs {
		a, b := p[0], p[1]

		res, err := Calculate(a, b, Add)
		require.NoError(t, err)
		assert.Equal(t, a+b, res.Value)

		res, err = Calculate(a, b, Subtract)
		require.NoError(t, err)
		assert.Equal(t, a-b, res.Value)

		res, err = Calculate(a, b, Multiply)
		require.NoError(t, err)
		assert.Equal(t, a*b, res.Value)

		res, err = Calculate(a, b, Divide)
		require.NoError(t, err)
		assert.False(t, res.IsError())
		assert.Equal(t, a/b, res.Value)
	}
}

func TestCalculateDivisionByZero(t *testing.T) {
	t.Parallel()
	res, err := Calculate(10, 0, Divide)
	require.NoError(t, err)
	assert.True(t, res.IsError())
	assert.Equal(t, "Error! Division by zero.", res.String())
	assert.Equal(t, "Result: Error! Division by zero.", res.Line())

	res, err = Calculate(1, math.Copysign(0, -1), Divide)
	require.NoError(t, err)
	assert.True(t, res.IsError())
}

func TestCalculateUnknownOperation(t *testing.T) {
	t.Parallel()
	_, err := Calculate(1, 2, Operation("Modulo"))
	require.ErrorIs(t, err, ErrUnknownOperation)
}

func TestParseOperation(t *testing.T) {
	t.Parallel()
	op, err := ParseOperation(" divide ")
	require.NoError(t, err)
	assert.Equal(t, Divide, op)

	_, err = ParseOperation("Power")
	require.ErrorIs(t, err, ErrUnknownOperation)

	assert.Equal(t, []Operation{Add, Subtract, Multiply, Divide}, Operations())
}

func TestResultFormatting(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Result: 2.5", Result{Value: 2.5}.Line())
	assert.Equal(t, "Result: 14.0", Result{Value: 14}.Line())
	assert.Equal(t, "Result: -0.1", Result{Value: -0.1}.Line())
}

func TestFormatNumberMatchesFloatRepr(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{math.Copysign(0, -1), "-0.0"},
		{14, "14.0"},
		{0.1 + 0.2, "0.30000000000000004"},
		{0.0001, "0.0001"},
		{0.00001, "1e-05"},
		{1.5e-7, "1.5e-07"},
		{9999999999999998, "9999999999999998.0"},
		{1e16, "1e+16"},
		{-2.5e20, "-2.5e+20"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatNumber(tc.in), "input %v", tc.in)
	}
	assert.Equal(t, "nan", FormatNumber(math.NaN()))

	res, err := Calculate(1e308, 1e308, Add)
	require.NoError(t, err)
	assert.Equal(t, "Result: inf", res.Line())
}

func TestParseNumber(t *testing.T) {
	t.Parallel()
	v, err := ParseNumber("")
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)

	v, err = ParseNumber(" 3.25 ")
	require.NoError(t, err)
	assert.Equal(t, 3.25, v)

	_, err = ParseNumber("abc")
	require.Error(t, err)
}
