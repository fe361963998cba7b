package models

import (
	"time"

	"github.com/google/uuid"
)

// Property is one catalog entry users can guess on. Reference values come
// from the listing feed and the official valuation register; either may be
// missing for a given property.
type Property struct {
	ID            uuid.UUID `gorm:"type:text;primaryKey" json:"id"`
	Address       string    `gorm:"not null" json:"address"`
	City          string    `gorm:"index" json:"city"`
	PostalCode    string    `json:"postal_code"`
	PropertyType  string    `json:"property_type"`
	LivingArea    *int      `json:"living_area"`
	AskingPrice   *float64  `json:"asking_price"`
	AssessedValue *float64  `json:"assessed_value"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PropertyReference is the read-only slice of a property the estimation
// engine consumes.
type PropertyReference struct {
	PropertyID    uuid.UUID `json:"property_id"`
	AssessedValue *float64  `json:"assessed_value"`
	AskingPrice   *float64  `json:"asking_price"`
}

// Reference projects the aggregation inputs out of a full property row.
func (p Property) Reference() PropertyReference {
	return PropertyReference{
		PropertyID:    p.ID,
		AssessedValue: p.AssessedValue,
		AskingPrice:   p.AskingPrice,
	}
}
