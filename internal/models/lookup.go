package models

import (
	"time"

	"gorm.io/datatypes"
)

// LookupCollection identifies one reference-data collection.
type LookupCollection string

const (
	LookupSkills            LookupCollection = "skills"
	LookupCertifications    LookupCollection = "certifications"
	LookupEducationLevels   LookupCollection = "educationLevels"
	LookupFieldsOfStudy     LookupCollection = "fieldsOfStudy"
	LookupProficiencyLevels LookupCollection = "proficiencyLevels"
	LookupClearanceLevels   LookupCollection = "clearanceLevels"
	LookupOtherTraining     LookupCollection = "otherTraining"
)

// AllLookupCollections lists every served collection.
var AllLookupCollections = []LookupCollection{
	LookupSkills,
	LookupCertifications,
	LookupEducationLevels,
	LookupFieldsOfStudy,
	LookupProficiencyLevels,
	LookupClearanceLevels,
	LookupOtherTraining,
}

// Valid reports whether c names a known collection.
func (c LookupCollection) Valid() bool {
	for _, known := range AllLookupCollections {
		if c == known {
			return true
		}
	}
	return false
}

// LookupOption is one selectable value in a reference collection.
type LookupOption struct {
	ID         uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Collection string `json:"collection" gorm:"size:100;uniqueIndex:idx_lookup_collection_name;not null"`
	Name       string `json:"name" gorm:"size:255;uniqueIndex:idx_lookup_collection_name;not null"`
	SortOrder  int    `json:"sort_order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (LookupOption) TableName() string {
	return "lookup_options"
}

// GridSetting stores one user's saved grid layout as an opaque blob.
type GridSetting struct {
	ID     uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID string         `json:"user_id" gorm:"size:255;uniqueIndex:idx_grid_setting_user_grid;not null"`
	GridID string         `json:"grid_id" gorm:"size:100;uniqueIndex:idx_grid_setting_user_grid;not null"`
	State  datatypes.JSON `json:"state" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (GridSetting) TableName() string {
	return "grid_settings"
}
