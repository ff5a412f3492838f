// Package models holds the persistent registry entities.
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// Key folds s for case-insensitive unique columns.
func Key(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

type Person struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"size:254;not null"`
	EmailKey     string    `json:"-" gorm:"size:254;not null;uniqueIndex:idx_person_identity"`
	Telephone    string    `json:"telephone" gorm:"size:15"`
	Organisation string    `json:"organisation" gorm:"size:250;not null;uniqueIndex:idx_person_identity"`
	Website      string    `json:"website" gorm:"size:250"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// Type of sensor, e.g. "Geluidsensor".
type Type struct {
	ID      uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name    string    `json:"name" gorm:"size:255;not null"`
	NameKey string    `json:"-" gorm:"size:255;not null;uniqueIndex"`
	IsOther bool      `json:"is_other" gorm:"not null"`
}

type Theme struct {
	ID      uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name    string    `json:"name" gorm:"size:255;not null"`
	NameKey string    `json:"-" gorm:"size:255;not null;uniqueIndex"`
	IsOther bool      `json:"is_other" gorm:"not null"`
}

type Region struct {
	ID      uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name    string    `json:"name" gorm:"size:255;not null"`
	NameKey string    `json:"-" gorm:"size:255;not null;uniqueIndex"`
	IsOther bool      `json:"is_other" gorm:"not null"`
}

type LegalGround struct {
	ID      uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name    string    `json:"name" gorm:"size:255;not null"`
	NameKey string    `json:"-" gorm:"size:255;not null;uniqueIndex"`
}

// ObservationGoal is an immutable value: any change to one of its fields
// is a different goal.
type ObservationGoal struct {
	ID                 uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey"`
	ObservationGoal    string       `json:"observation_goal" gorm:"type:text;not null"`
	PrivacyDeclaration string       `json:"privacy_declaration" gorm:"type:text;not null"`
	LegalGroundID      *uuid.UUID   `json:"-" gorm:"type:uuid"`
	LegalGround        *LegalGround `json:"legal_ground,omitempty"`
}

type Project struct {
	ID   uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Path Path      `json:"path" gorm:"not null"`
}

// Device is a registered sensor, unique per owner by reference. Source
// names the feed that reported it and is empty for spreadsheet
// registrations.
type Device struct {
	ID                  uuid.UUID         `json:"id" gorm:"type:uuid;primaryKey"`
	Reference           string            `json:"reference" gorm:"size:255;not null;uniqueIndex:idx_device_identity"`
	OwnerID             uuid.UUID         `json:"-" gorm:"type:uuid;not null;uniqueIndex:idx_device_identity"`
	Owner               *Person           `json:"owner,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	TypeID              uuid.UUID         `json:"-" gorm:"type:uuid;not null"`
	Type                *Type             `json:"type,omitempty"`
	Latitude            *float64          `json:"latitude"`
	Longitude           *float64          `json:"longitude"`
	LocationDescription string            `json:"location_description" gorm:"size:255"`
	Datastream          string            `json:"datastream" gorm:"size:1000"`
	ContainsPiData      bool              `json:"contains_pi_data" gorm:"not null"`
	ActiveUntil         *time.Time        `json:"active_until" gorm:"type:date"`
	Source              string            `json:"source,omitempty" gorm:"size:100;not null;default:'';index"`
	Regions             []Region          `json:"regions" gorm:"many2many:device_regions"`
	Themes              []Theme           `json:"themes" gorm:"many2many:device_themes"`
	ObservationGoals    []ObservationGoal `json:"observation_goals" gorm:"many2many:device_observation_goals"`
	Projects            []Project         `json:"projects" gorm:"many2many:device_projects"`
	CreatedAt           time.Time         `json:"-"`
	UpdatedAt           time.Time         `json:"-"`
}

// All lists the models in migration order.
func All() []any {
	return []any{
		&Person{},
		&Type{},
		&Theme{},
		&Region{},
		&LegalGround{},
		&ObservationGoal{},
		&Project{},
		&Device{},
	}
}
