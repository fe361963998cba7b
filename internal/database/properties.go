package database

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"homeworth/server/internal/models"
)

// GetProperty returns the full property row, or (nil, nil) when the ID does
// not resolve.
func (d *Database) GetProperty(propertyID uuid.UUID) (*models.Property, error) {
	var p models.Property
	err := d.db.First(&p, "id = ?", propertyID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load property: %w", err)
	}
	return &p, nil
}

// PropertyReference returns the aggregation inputs for a property. The
// second return value reports whether the property exists.
func (d *Database) PropertyReference(propertyID uuid.UUID) (models.PropertyReference, bool, error) {
	p, err := d.GetProperty(propertyID)
	if err != nil {
		return models.PropertyReference{}, false, err
	}
	if p == nil {
		return models.PropertyReference{}, false, nil
	}
	return p.Reference(), true, nil
}

// UpsertProperties writes a batch of catalog rows inside the given
// transaction, updating reference values on conflict.
func UpsertProperties(tx *gorm.DB, properties []*models.Property) error {
	if len(properties) == 0 {
		return nil
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"address", "city", "postal_code", "property_type",
			"living_area", "asking_price", "assessed_value", "updated_at",
		}),
	}).Create(properties).Error
}
