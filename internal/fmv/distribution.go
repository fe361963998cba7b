package fmv

import (
	"math"
	"sort"

	"homeworth/server/internal/models"
)

// quantile computes the p-quantile of sorted using linear interpolation
// between order statistics (the continuous-rank method). sorted must be
// non-empty and ascending.
func quantile(p float64, sorted []float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	h := p * float64(n-1)
	lo := int(math.Floor(h))
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// NewDistribution builds the percentile spread over the given prices.
// Returns nil for an empty input. The source sequence is not mutated.
func NewDistribution(prices []float64) *models.Distribution {
	if len(prices) == 0 {
		return nil
	}
	sorted := make([]float64, len(prices))
	copy(sorted, prices)
	sort.Float64s(sorted)

	return &models.Distribution{
		Min: sorted[0],
		P10: quantile(0.10, sorted),
		P25: quantile(0.25, sorted),
		P50: quantile(0.50, sorted),
		P75: quantile(0.75, sorted),
		P90: quantile(0.90, sorted),
		Max: sorted[len(sorted)-1],
	}
}
