package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PriorityNormal    = "normal"
	PriorityImportant = "important"
	PriorityUrgent    = "urgent"
)

type Announcement struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Title     string    `gorm:"not null"`
	Content   string    `gorm:"not null"`
	Priority  string    `gorm:"not null;default:'normal'"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Author    string    `gorm:"not null"`
	ExpiresAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (announcement *Announcement) BeforeCreate(tx *gorm.DB) (err error) {
	if announcement.ID == uuid.Nil {
		announcement.ID = uuid.New()
	}
	return
}
