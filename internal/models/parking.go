package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ParkingTwoWheeler  = "two_wheeler"
	ParkingFourWheeler = "four_wheeler"
)

// ParkingLot tracks occupancy per vehicle kind. Booked never exceeds
// Total, enforced under a row lock by the parking service.
type ParkingLot struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primary_key"`
	Kind      string    `gorm:"unique;not null"`
	Total     int       `gorm:"not null"`
	Booked    int       `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ParkingBooking struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Kind      string    `gorm:"not null;index"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (booking *ParkingBooking) BeforeCreate(tx *gorm.DB) (err error) {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	return
}
