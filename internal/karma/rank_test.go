package karma

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRank(t *testing.T) {
	tests := []struct {
		name          string
		score         int
		expectedTitle string
		expectedLevel int
	}{
		{"Zero score", 0, "Newbie", 1},
		{"Top of Newbie band", 10, "Newbie", 1},
		{"Bottom of Regular band", 11, "Regular", 2},
		{"Top of Regular band", 50, "Regular", 2},
		{"Bottom of Trusted band", 51, "Trusted", 3},
		{"Top of Trusted band", 100, "Trusted", 3},
		{"Bottom of Expert band", 101, "Expert", 4},
		{"Top of Expert band", 499, "Expert", 4},
		{"Bottom of Legend band", 500, "Legend", 5},
		{"Far beyond Legend", 120000, "Legend", 5},
		{"Negative score clamps to zero", -42, "Newbie", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rank := Rank(tt.score)
			assert.Equal(t, tt.expectedTitle, rank.Title)
			assert.Equal(t, tt.expectedLevel, rank.Level)
		})
	}
}

func TestWeight(t *testing.T) {
	// The weighting curve is a policy choice: 1 + 0.1*(level-1).
	assert.InDelta(t, 1.0, Weight(0), 1e-9)
	assert.InDelta(t, 1.1, Weight(25), 1e-9)
	assert.InDelta(t, 1.2, Weight(75), 1e-9)
	assert.InDelta(t, 1.3, Weight(200), 1e-9)
	assert.InDelta(t, 1.4, Weight(10000), 1e-9)

	// Monotonic in score.
	assert.LessOrEqual(t, Weight(10), Weight(11))
	assert.LessOrEqual(t, Weight(499), Weight(500))
}
