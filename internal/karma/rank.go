package karma

import "homeworth/server/internal/models"

// tier is one reputation band with an inclusive lower bound.
type tier struct {
	minScore int
	title    string
	level    int
}

// tiers must stay sorted by minScore descending; Rank scans from the top.
var tiers = []tier{
	{500, "Legend", 5},
	{101, "Expert", 4},
	{51, "Trusted", 3},
	{11, "Regular", 2},
	{0, "Newbie", 1},
}

// Rank maps a reputation score to its named tier. Negative scores are
// clamped to zero so the resolver stays total.
func Rank(score int) models.KarmaRank {
	if score < 0 {
		score = 0
	}
	for _, t := range tiers {
		if score >= t.minScore {
			return models.KarmaRank{Title: t.title, Level: t.level}
		}
	}
	return models.KarmaRank{Title: "Newbie", Level: 1}
}

// WeightStep is the per-level increment applied to a guess's weight in the
// FMV point estimate. A Legend counts 1.4x a Newbie.
const WeightStep = 0.1

// Weight converts a reputation score into an aggregation weight using a
// simple monotonic curve: 1 + WeightStep*(level-1).
func Weight(score int) float64 {
	return 1 + WeightStep*float64(Rank(score).Level-1)
}
