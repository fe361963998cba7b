package guessing

import (
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"homeworth/server/internal/fmv"
	"homeworth/server/internal/models"
)

// DefaultCooldown is the minimum time between successive edits of the same
// guess.
const DefaultCooldown = 5 * 24 * time.Hour

// Store is the persistence surface the gate needs. PutGuess must perform
// the existence check, cooldown check and write as one atomic unit per
// (property, user) pair; see the database package.
type Store interface {
	PropertyReference(propertyID uuid.UUID) (models.PropertyReference, bool, error)
	PutGuess(propertyID, userID uuid.UUID, price float64, isOutlier bool, cooldown time.Duration, now time.Time) (models.Guess, bool, error)
}

// Gate validates and persists guess submissions, enforcing the
// one-guess-per-user invariant and the edit cooldown.
type Gate struct {
	store    Store
	detector fmv.OutlierDetector
	cooldown time.Duration
	logger   *logrus.Logger
	now      func() time.Time
}

// NewGate wires a submission gate. A non-positive cooldown falls back to
// the default.
func NewGate(store Store, detector fmv.OutlierDetector, cooldown time.Duration, logger *logrus.Logger) *Gate {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Gate{
		store:    store,
		detector: detector,
		cooldown: cooldown,
		logger:   logger,
		now:      time.Now,
	}
}

// Submit records userID's price guess for propertyID. The returned bool is
// true when a new guess was created, false when an existing one was
// updated. Failure modes: ErrInvalidPrice, ErrUnauthorized,
// ErrPropertyNotFound, and *CooldownError for early edits.
func (g *Gate) Submit(propertyID, userID uuid.UUID, price float64) (models.Guess, bool, error) {
	if userID == uuid.Nil {
		return models.Guess{}, false, ErrUnauthorized
	}
	if price <= 0 {
		return models.Guess{}, false, ErrInvalidPrice
	}

	ref, found, err := g.store.PropertyReference(propertyID)
	if err != nil {
		return models.Guess{}, false, err
	}
	if !found {
		return models.Guess{}, false, ErrPropertyNotFound
	}

	// Classification runs on every write so an edit is re-tagged against
	// the current assessed value.
	isOutlier := g.detector.IsOutlier(price, ref.AssessedValue)

	guess, created, err := g.store.PutGuess(propertyID, userID, price, isOutlier, g.cooldown, g.now())
	if err != nil {
		return models.Guess{}, false, err
	}

	g.logger.WithFields(logrus.Fields{
		"property_id": propertyID,
		"user_id":     userID,
		"created":     created,
		"is_outlier":  isOutlier,
	}).Info("Guess accepted")

	return guess, created, nil
}
