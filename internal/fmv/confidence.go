package fmv

import "homeworth/server/internal/models"

// Guess-count thresholds for the confidence tiers.
const (
	mediumConfidenceMin = 3
	highConfidenceMin   = 10
)

// ConfidenceForCount classifies an FMV estimate purely by how many guesses
// back it.
func ConfidenceForCount(count int) models.Confidence {
	switch {
	case count <= 0:
		return models.ConfidenceNone
	case count < mediumConfidenceMin:
		return models.ConfidenceLow
	case count < highConfidenceMin:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceHigh
	}
}
