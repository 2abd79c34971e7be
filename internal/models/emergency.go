package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EmergencyActive   = "active"
	EmergencyResolved = "resolved"
)

type Emergency struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind       string    `gorm:"not null"`
	Message    string
	Latitude   float64
	Longitude  float64
	Status     string `gorm:"not null;default:'active'"`
	ResolvedBy *uuid.UUID `gorm:"type:uuid"`
	ResolvedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (emergency *Emergency) BeforeCreate(tx *gorm.DB) (err error) {
	if emergency.ID == uuid.Nil {
		emergency.ID = uuid.New()
	}
	return
}
