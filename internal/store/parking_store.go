package store

import (
	"context"
	"errors"

	"github.com/eventease/eventease/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ParkingStore struct {
	*DB
}

func NewParkingStore(db *DB) *ParkingStore {
	return &ParkingStore{DB: db}
}

func (s *ParkingStore) ListLots(ctx context.Context) ([]models.ParkingLot, error) {
	db, cancel := s.handle(ctx)
	defer cancel()

	var lots []models.ParkingLot
	if err := db.Order("kind").Find(&lots).Error; err != nil {
		return nil, translateErr(err)
	}
	return lots, nil
}

// LotForUpdate locks the lot row so the occupancy check and increment are
// serialized per kind.
func (s *ParkingStore) LotForUpdate(ctx context.Context, kind string) (models.ParkingLot, error) {
	db, cancel := s.handle(ctx)
	defer cancel()

	var lot models.ParkingLot
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("kind = ?", kind).First(&lot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ParkingLot{}, models.ErrValidation
		}
		return models.ParkingLot{}, translateErr(err)
	}
	return lot, nil
}

func (s *ParkingStore) SetLotBooked(ctx context.Context, kind string, booked int) error {
	db, cancel := s.handle(ctx)
	defer cancel()

	return translateErr(db.Model(&models.ParkingLot{}).Where("kind = ?", kind).Update("booked", booked).Error)
}

func (s *ParkingStore) CreateBooking(ctx context.Context, booking *models.ParkingBooking) error {
	db, cancel := s.handle(ctx)
	defer cancel()

	return translateErr(db.Create(booking).Error)
}

func (s *ParkingStore) ActiveBooking(ctx context.Context, kind string, userID uuid.UUID) (models.ParkingBooking, error) {
	db, cancel := s.handle(ctx)
	defer cancel()

	var booking models.ParkingBooking
	err := db.Where("kind = ? AND user_id = ? AND active = ?", kind, userID, true).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ParkingBooking{}, models.ErrBookingNotFound
		}
		return models.ParkingBooking{}, translateErr(err)
	}
	return booking, nil
}

// ReleaseBooking deactivates an active booking; zero rows means it was
// already released.
func (s *ParkingStore) ReleaseBooking(ctx context.Context, id uuid.UUID) (bool, error) {
	db, cancel := s.handle(ctx)
	defer cancel()

	result := db.Model(&models.ParkingBooking{}).
		Where("id = ? AND active = ?", id, true).
		Update("active", false)
	if result.Error != nil {
		return false, translateErr(result.Error)
	}
	return result.RowsAffected > 0, nil
}
