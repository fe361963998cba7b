package fmv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDistribution_Empty(t *testing.T) {
	assert.Nil(t, NewDistribution(nil))
	assert.Nil(t, NewDistribution([]float64{}))
}

func TestNewDistribution_SingleValue(t *testing.T) {
	d := NewDistribution([]float64{425000})
	require.NotNil(t, d)

	assert.Equal(t, 425000.0, d.Min)
	assert.Equal(t, 425000.0, d.P10)
	assert.Equal(t, 425000.0, d.P50)
	assert.Equal(t, 425000.0, d.P90)
	assert.Equal(t, 425000.0, d.Max)
}

func TestNewDistribution_LinearInterpolation(t *testing.T) {
	// Four points: the median interpolates halfway between the middle two.
	d := NewDistribution([]float64{100, 200, 300, 400})
	require.NotNil(t, d)

	assert.InDelta(t, 100, d.Min, 1e-9)
	assert.InDelta(t, 250, d.P50, 1e-9)
	assert.InDelta(t, 175, d.P25, 1e-9)
	assert.InDelta(t, 325, d.P75, 1e-9)
	assert.InDelta(t, 400, d.Max, 1e-9)
}

func TestNewDistribution_UnsortedInputNotMutated(t *testing.T) {
	prices := []float64{300000, 100000, 200000}
	d := NewDistribution(prices)
	require.NotNil(t, d)

	assert.InDelta(t, 100000, d.Min, 1e-9)
	assert.InDelta(t, 200000, d.P50, 1e-9)
	assert.InDelta(t, 300000, d.Max, 1e-9)
	assert.Equal(t, []float64{300000, 100000, 200000}, prices)
}

func TestNewDistribution_Ordering(t *testing.T) {
	sets := [][]float64{
		{350000, 520000, 410000, 395000, 480000, 505000, 370000, 440000, 455000, 390000, 425000, 500000},
		{1, 400000},
		{250000, 250000, 250000},
		{9.5, 2.25, 1000000, 42, 77777, 3.14, 88},
	}

	for _, prices := range sets {
		d := NewDistribution(prices)
		require.NotNil(t, d)

		assert.LessOrEqual(t, d.Min, d.P10)
		assert.LessOrEqual(t, d.P10, d.P25)
		assert.LessOrEqual(t, d.P25, d.P50)
		assert.LessOrEqual(t, d.P50, d.P75)
		assert.LessOrEqual(t, d.P75, d.P90)
		assert.LessOrEqual(t, d.P90, d.Max)
	}
}
