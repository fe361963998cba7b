package fmv

const (
	// DefaultOutlierLowerRatio flags guesses below 10% of the reference
	// value. The band is a policy choice, tunable through configuration.
	DefaultOutlierLowerRatio = 0.1

	// DefaultOutlierUpperRatio flags guesses above 1000% of the reference.
	DefaultOutlierUpperRatio = 10.0
)

// OutlierDetector classifies a single guess as a meme guess relative to a
// reference value. Flagged guesses stay in the aggregation; the flag only
// drives presentation.
type OutlierDetector struct {
	LowerRatio float64
	UpperRatio float64
}

// NewOutlierDetector returns a detector with the default tolerance band.
func NewOutlierDetector() OutlierDetector {
	return OutlierDetector{
		LowerRatio: DefaultOutlierLowerRatio,
		UpperRatio: DefaultOutlierUpperRatio,
	}
}

// IsOutlier reports whether guessedPrice falls outside the tolerance band
// around reference. Without a reference value there is no baseline to
// classify against, so the guess is conservatively accepted.
func (d OutlierDetector) IsOutlier(guessedPrice float64, reference *float64) bool {
	if reference == nil || *reference <= 0 {
		return false
	}
	ratio := guessedPrice / *reference
	return ratio < d.LowerRatio || ratio > d.UpperRatio
}
