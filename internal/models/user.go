package models

import (
	"time"

	"github.com/google/uuid"
)

// User carries the display identity and the reputation score consumed by
// the rank resolver. Reputation bookkeeping itself lives outside this
// service; the score is read-only here.
type User struct {
	ID          uuid.UUID `gorm:"type:text;primaryKey" json:"id"`
	DisplayName string    `json:"display_name"`
	KarmaScore  int       `gorm:"not null;default:0" json:"karma_score"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// KarmaRank is the named reputation tier shown next to a guess author.
type KarmaRank struct {
	Title string `json:"title"`
	Level int    `json:"level"`
}
