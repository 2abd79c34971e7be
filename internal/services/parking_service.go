package services

import (
	"context"

	"github.com/eventease/eventease/internal/models"
	"github.com/google/uuid"
)

type ParkingStore interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	ListLots(ctx context.Context) ([]models.ParkingLot, error)
	LotForUpdate(ctx context.Context, kind string) (models.ParkingLot, error)
	SetLotBooked(ctx context.Context, kind string, booked int) error
	CreateBooking(ctx context.Context, booking *models.ParkingBooking) error
	ActiveBooking(ctx context.Context, kind string, userID uuid.UUID) (models.ParkingBooking, error)
	ReleaseBooking(ctx context.Context, id uuid.UUID) (bool, error)
}

type ParkingService struct {
	store ParkingStore
}

func NewParkingService(store ParkingStore) *ParkingService {
	return &ParkingService{store: store}
}

type LotStatus struct {
	Kind      string
	Total     int
	Booked    int
	Available int
}

func (s *ParkingService) Status(ctx context.Context) ([]LotStatus, error) {
	lots, err := s.store.ListLots(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]LotStatus, 0, len(lots))
	for _, lot := range lots {
		statuses = append(statuses, LotStatus{
			Kind:      lot.Kind,
			Total:     lot.Total,
			Booked:    lot.Booked,
			Available: lot.Total - lot.Booked,
		})
	}
	return statuses, nil
}

// Book takes one slot of the given kind. The occupancy check and the
// increment run under the lot row lock, the same discipline as event
// admission.
func (s *ParkingService) Book(ctx context.Context, kind string, userID uuid.UUID) (models.ParkingBooking, error) {
	if kind != models.ParkingTwoWheeler && kind != models.ParkingFourWheeler {
		return models.ParkingBooking{}, models.ErrValidation
	}

	var booking models.ParkingBooking
	err := s.store.WithTx(ctx, func(txCtx context.Context) error {
		lot, err := s.store.LotForUpdate(txCtx, kind)
		if err != nil {
			return err
		}

		if _, err := s.store.ActiveBooking(txCtx, kind, userID); err == nil {
			return models.ErrAlreadyBooked
		} else if err != models.ErrBookingNotFound {
			return err
		}

		if lot.Booked >= lot.Total {
			return models.ErrParkingFull
		}

		booking = models.ParkingBooking{
			ID:     uuid.New(),
			Kind:   kind,
			UserID: userID,
			Active: true,
		}
		if err := s.store.CreateBooking(txCtx, &booking); err != nil {
			return err
		}
		return s.store.SetLotBooked(txCtx, kind, lot.Booked+1)
	})
	if err != nil {
		return models.ParkingBooking{}, err
	}
	return booking, nil
}

func (s *ParkingService) Release(ctx context.Context, kind string, userID uuid.UUID) error {
	if kind != models.ParkingTwoWheeler && kind != models.ParkingFourWheeler {
		return models.ErrValidation
	}

	return s.store.WithTx(ctx, func(txCtx context.Context) error {
		lot, err := s.store.LotForUpdate(txCtx, kind)
		if err != nil {
			return err
		}

		booking, err := s.store.ActiveBooking(txCtx, kind, userID)
		if err != nil {
			return err
		}

		released, err := s.store.ReleaseBooking(txCtx, booking.ID)
		if err != nil {
			return err
		}
		if !released {
			return models.ErrBookingNotFound
		}

		if lot.Booked > 0 {
			return s.store.SetLotBooked(txCtx, kind, lot.Booked-1)
		}
		return nil
	})
}
