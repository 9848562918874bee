package gorm

import (
	"time"

	"github.com/google/uuid"
	gormlib "gorm.io/gorm"
)

// Sighting is one observed-animal event as persisted in the sightings table
type Sighting struct {
	ID                  string    `gorm:"column:id;primaryKey;type:varchar(36)" json:"id" db:"id"`
	Species             string    `gorm:"column:species;type:varchar(100);not null;index" json:"species" db:"species"`
	ReporterFirstName   string    `gorm:"column:reporter_first_name;type:varchar(100);not null" json:"reporter_first_name" db:"reporter_first_name"`
	ReporterLastName    string    `gorm:"column:reporter_last_name;type:varchar(100);not null" json:"reporter_last_name" db:"reporter_last_name"`
	Notes               *string   `gorm:"column:notes;type:text" json:"notes" db:"notes"`
	Status              string    `gorm:"column:status;type:varchar(10);not null;default:normal" json:"status" db:"status"`
	LocationDescription *string   `gorm:"column:location_description;type:varchar(255)" json:"location_description" db:"location_description"`
	Latitude            float64   `gorm:"column:latitude;not null" json:"latitude" db:"latitude"`
	Longitude           float64   `gorm:"column:longitude;not null" json:"longitude" db:"longitude"`
	ObservedAt          time.Time `gorm:"column:observed_at;not null;index:idx_sightings_observed_at,sort:desc" json:"observed_at" db:"observed_at"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime" json:"-" db:"created_at"`
}

// TableName specifies the table name for GORM
func (Sighting) TableName() string {
	return "sightings"
}

// BeforeCreate assigns the id when the caller has not
func (s *Sighting) BeforeCreate(tx *gormlib.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// ReporterName is the display name of the submitting guide
func (s *Sighting) ReporterName() string {
	return s.ReporterFirstName + " " + s.ReporterLastName
}

// IsUrgent reports whether the sighting shows fighting or eating behaviour
func (s *Sighting) IsUrgent() bool {
	return s.Status == "urgent"
}
