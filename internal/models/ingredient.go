package models

import "github.com/google/uuid"

// Ingredient is reference data; MeasurementUnit is free text ("g", "ml").
type Ingredient struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string    `gorm:"size:200;not null;index" json:"name"`
	MeasurementUnit string    `gorm:"size:200;not null" json:"measurement_unit"`
}
