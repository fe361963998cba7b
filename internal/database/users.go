package database

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	"homeworth/server/internal/models"
)

// KarmaScores returns the reputation score for each known user in userIDs.
// Unknown users are simply absent; callers treat missing entries as zero.
func (d *Database) KarmaScores(userIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	scores := make(map[uuid.UUID]int, len(userIDs))
	if len(userIDs) == 0 {
		return scores, nil
	}

	var users []models.User
	if err := d.db.Select("id", "karma_score").Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to load karma scores: %w", err)
	}
	for _, u := range users {
		scores[u.ID] = u.KarmaScore
	}
	return scores, nil
}

// UsersByIDs returns the users for the given IDs keyed by ID.
func (d *Database) UsersByIDs(userIDs []uuid.UUID) (map[uuid.UUID]models.User, error) {
	byID := make(map[uuid.UUID]models.User, len(userIDs))
	if len(userIDs) == 0 {
		return byID, nil
	}

	var users []models.User
	if err := d.db.Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID, nil
}

// UpsertUsers writes user rows, updating display name and karma on
// conflict.
func (d *Database) UpsertUsers(users []*models.User) error {
	if len(users) == 0 {
		return nil
	}
	err := d.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"display_name", "karma_score", "updated_at"}),
	}).Create(users).Error
	if err != nil {
		return fmt.Errorf("failed to upsert users: %w", err)
	}
	return nil
}
