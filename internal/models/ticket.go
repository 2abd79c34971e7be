package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ticket is a single-use admission right for one (event, user) pair.
// Once Used flips to true the record is immutable and kept for audit.
type Ticket struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	Token    string    `gorm:"unique;not null"`
	EventID  uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index"`
	IssuedAt time.Time `gorm:"not null"`
	Used     bool      `gorm:"not null;default:false"`
	UsedAt   *time.Time
}

func (ticket *Ticket) BeforeCreate(tx *gorm.DB) (err error) {
	if ticket.ID == uuid.Nil {
		ticket.ID = uuid.New()
	}
	return
}
