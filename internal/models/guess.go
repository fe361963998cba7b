package models

import (
	"time"

	"github.com/google/uuid"
)

// Guess is one user's price estimate for one property. The composite unique
// index enforces at most one guess per (property, user) pair; edits mutate
// the row in place.
type Guess struct {
	ID           uuid.UUID `gorm:"type:text;primaryKey" json:"id"`
	PropertyID   uuid.UUID `gorm:"type:text;not null;index;uniqueIndex:idx_guesses_property_user" json:"property_id"`
	UserID       uuid.UUID `gorm:"type:text;not null;uniqueIndex:idx_guesses_property_user" json:"user_id"`
	GuessedPrice float64   `gorm:"not null" json:"guessed_price"`
	IsOutlier    bool      `gorm:"not null;default:false" json:"is_outlier"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}
