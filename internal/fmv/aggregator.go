package fmv

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"homeworth/server/internal/cache"
	"homeworth/server/internal/karma"
	"homeworth/server/internal/models"
)

// ErrPropertyNotFound is returned when the property ID does not resolve.
var ErrPropertyNotFound = errors.New("property not found")

// DefaultAnchorBlendRatio is the share of the assessed value blended into a
// low-confidence estimate. 0.5 keeps a single guess from dominating the
// displayed number.
const DefaultAnchorBlendRatio = 0.5

// Store is the read side the aggregator needs from the guess store.
type Store interface {
	PropertyReference(propertyID uuid.UUID) (models.PropertyReference, bool, error)
	GuessesForProperty(propertyID uuid.UUID) ([]models.Guess, error)
	KarmaScores(userIDs []uuid.UUID) (map[uuid.UUID]int, error)
}

// Aggregator turns the full guess set of a property plus its reference
// values into the crowd FMV snapshot. It performs only reads and is safe
// under concurrent use.
type Aggregator struct {
	store       Store
	refs        *cache.ReferenceCache
	anchorBlend float64
	logger      *logrus.Logger
}

// NewAggregator wires an aggregator. refs may be nil to bypass caching;
// anchorBlend outside (0,1] falls back to the default.
func NewAggregator(store Store, refs *cache.ReferenceCache, anchorBlend float64, logger *logrus.Logger) *Aggregator {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	if anchorBlend <= 0 || anchorBlend > 1 {
		anchorBlend = DefaultAnchorBlendRatio
	}
	return &Aggregator{
		store:       store,
		refs:        refs,
		anchorBlend: anchorBlend,
		logger:      logger,
	}
}

// Compute derives the point-in-time FMV snapshot for a property. Zero
// guesses is a valid steady state, not an error; the only failure mode is
// an unknown property. For a fixed guess set and reference values the
// result is deterministic.
func (a *Aggregator) Compute(propertyID uuid.UUID) (models.FmvResult, error) {
	ref, err := a.reference(propertyID)
	if err != nil {
		return models.FmvResult{}, err
	}

	guesses, err := a.store.GuessesForProperty(propertyID)
	if err != nil {
		return models.FmvResult{}, fmt.Errorf("failed to load guesses: %w", err)
	}

	result := models.FmvResult{
		Confidence:    models.ConfidenceNone,
		AssessedValue: ref.AssessedValue,
		AskingPrice:   ref.AskingPrice,
		GuessCount:    len(guesses),
	}
	if len(guesses) == 0 {
		return result, nil
	}

	result.Confidence = ConfidenceForCount(len(guesses))

	prices := make([]float64, len(guesses))
	userIDs := make([]uuid.UUID, len(guesses))
	for i, g := range guesses {
		prices[i] = g.GuessedPrice
		userIDs[i] = g.UserID
	}
	result.Distribution = NewDistribution(prices)

	weights, err := a.weights(userIDs)
	if err != nil {
		return models.FmvResult{}, err
	}
	estimate := stat.Mean(prices, weights)

	// Anchoring: with one or two guesses the raw estimate is too volatile,
	// so blend it toward the assessed value when one exists.
	if result.Confidence == models.ConfidenceLow && ref.AssessedValue != nil {
		estimate = a.anchorBlend**ref.AssessedValue + (1-a.anchorBlend)*estimate
	}
	result.Value = &estimate

	if ref.AskingPrice != nil && estimate != 0 {
		divergence := (*ref.AskingPrice - estimate) / estimate * 100
		result.Divergence = &divergence
	}

	a.logger.WithFields(logrus.Fields{
		"property_id": propertyID,
		"guess_count": len(guesses),
		"confidence":  result.Confidence,
		"value":       math.Round(estimate),
	}).Debug("Computed FMV snapshot")

	return result, nil
}

// weights maps each guess author to an aggregation weight derived from
// their karma tier, normalized so the weights sum to the guess count.
func (a *Aggregator) weights(userIDs []uuid.UUID) ([]float64, error) {
	scores, err := a.store.KarmaScores(userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load karma scores: %w", err)
	}

	weights := make([]float64, len(userIDs))
	var sum float64
	for i, id := range userIDs {
		weights[i] = karma.Weight(scores[id])
		sum += weights[i]
	}
	if sum > 0 {
		norm := float64(len(userIDs)) / sum
		for i := range weights {
			weights[i] *= norm
		}
	}
	return weights, nil
}

// reference resolves the property's reference values through the TTL cache.
func (a *Aggregator) reference(propertyID uuid.UUID) (models.PropertyReference, error) {
	if a.refs != nil {
		if ref, ok := a.refs.Get(propertyID); ok {
			return ref, nil
		}
	}

	ref, found, err := a.store.PropertyReference(propertyID)
	if err != nil {
		return models.PropertyReference{}, fmt.Errorf("failed to load property reference: %w", err)
	}
	if !found {
		return models.PropertyReference{}, ErrPropertyNotFound
	}

	if a.refs != nil {
		a.refs.Set(ref)
	}
	return ref, nil
}
