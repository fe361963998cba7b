package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"homeworth/server/internal/guessing"
	"homeworth/server/internal/models"
)

// PutGuess inserts a first-time guess or updates an existing one after the
// cooldown, as a single transaction per (property, user) pair. The unique
// index closes the create race: a concurrent duplicate insert surfaces as
// gorm.ErrDuplicatedKey and falls through to the update path, where the
// freshly committed updated_at makes the cooldown check reject it.
// Returns the stored guess and whether it was created.
func (d *Database) PutGuess(propertyID, userID uuid.UUID, price float64, isOutlier bool, cooldown time.Duration, now time.Time) (models.Guess, bool, error) {
	var (
		guess   models.Guess
		created bool
	)

	err := d.db.Transaction(func(tx *gorm.DB) error {
		existing, err := guessFor(tx, propertyID, userID)
		if err != nil {
			return err
		}

		if existing == nil {
			guess = models.Guess{
				ID:           uuid.New(),
				PropertyID:   propertyID,
				UserID:       userID,
				GuessedPrice: price,
				IsOutlier:    isOutlier,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			err := tx.Create(&guess).Error
			if err == nil {
				created = true
				return nil
			}
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("failed to insert guess: %w", err)
			}
			// Lost the create race; re-read and treat as an edit.
			existing, err = guessFor(tx, propertyID, userID)
			if err != nil {
				return err
			}
			if existing == nil {
				return gorm.ErrRecordNotFound
			}
		}

		cooldownEnd := existing.UpdatedAt.Add(cooldown)
		if now.Before(cooldownEnd) {
			return &guessing.CooldownError{Until: cooldownEnd}
		}

		updates := map[string]interface{}{
			"guessed_price": price,
			"is_outlier":    isOutlier,
			"updated_at":    now,
		}
		if err := tx.Model(&models.Guess{}).Where("id = ?", existing.ID).UpdateColumns(updates).Error; err != nil {
			return fmt.Errorf("failed to update guess: %w", err)
		}

		existing.GuessedPrice = price
		existing.IsOutlier = isOutlier
		existing.UpdatedAt = now
		guess = *existing
		return nil
	})
	if err != nil {
		return models.Guess{}, false, err
	}
	return guess, created, nil
}

func guessFor(tx *gorm.DB, propertyID, userID uuid.UUID) (*models.Guess, error) {
	var g models.Guess
	err := tx.Where("property_id = ? AND user_id = ?", propertyID, userID).First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up guess: %w", err)
	}
	return &g, nil
}

// GuessesForProperty returns every guess for the property, outliers
// included, oldest first.
func (d *Database) GuessesForProperty(propertyID uuid.UUID) ([]models.Guess, error) {
	var guesses []models.Guess
	err := d.db.
		Where("property_id = ?", propertyID).
		Order("created_at ASC").
		Find(&guesses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load guesses: %w", err)
	}
	return guesses, nil
}

// ListGuesses returns one page of a property's guesses ordered by creation
// time ascending, plus the total count for pagination.
func (d *Database) ListGuesses(propertyID uuid.UUID, page, pageSize int) ([]models.Guess, int64, error) {
	if page < 1 {
		page = 1
	}

	var total int64
	if err := d.db.Model(&models.Guess{}).Where("property_id = ?", propertyID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count guesses: %w", err)
	}

	var guesses []models.Guess
	err := d.db.
		Where("property_id = ?", propertyID).
		Order("created_at ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&guesses).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list guesses: %w", err)
	}
	return guesses, total, nil
}
