package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Event struct {
	gorm.Model
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	Name         string    `gorm:"not null"`
	Description  string
	Date         time.Time `gorm:"not null"`
	Location     string
	Capacity     int       `gorm:"not null;default:100"`
	OrganizerID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Organizer    User      `gorm:"foreignKey:OrganizerID"`
	Attendees    []Attendee
	EntryToken   string `gorm:"index"`
	EntryTokenAt *time.Time
}

func (event *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	return
}

type Attendee struct {
	EventID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_event_attendees_event_user"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_event_attendees_event_user"`
	CreatedAt time.Time
}

func (Attendee) TableName() string {
	return "event_attendees"
}
