package database

import (
	"fmt"

	"homeworth/server/internal/models"
)

// RunMigrations creates or updates the schema. The composite unique index
// on guesses(property_id, user_id) comes from the model tags and is what
// the submission path's duplicate-key fallback relies on.
func (d *Database) RunMigrations() error {
	if err := d.db.AutoMigrate(
		&models.Property{},
		&models.User{},
		&models.Guess{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
