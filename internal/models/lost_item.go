package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ItemStatusOpen    = "open"
	ItemStatusClaimed = "claimed"
)

type LostItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	Name        string    `gorm:"not null"`
	Description string
	Location    string
	PhotoPath   string
	ReporterID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Status      string    `gorm:"not null;default:'open'"`
	ClaimedBy   *uuid.UUID `gorm:"type:uuid"`
	ClaimedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (item *LostItem) BeforeCreate(tx *gorm.DB) (err error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return
}
