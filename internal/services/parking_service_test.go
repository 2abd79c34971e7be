package services

import (
	"context"
	"sync"
	"testing"

	"github.com/eventease/eventease/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedLots(store *memStore, twoWheeler, fourWheeler int) {
	store.lots[models.ParkingTwoWheeler] = models.ParkingLot{
		ID:    uuid.New(),
		Kind:  models.ParkingTwoWheeler,
		Total: twoWheeler,
	}
	store.lots[models.ParkingFourWheeler] = models.ParkingLot{
		ID:    uuid.New(),
		Kind:  models.ParkingFourWheeler,
		Total: fourWheeler,
	}
}

func TestParkingBookAndRelease(t *testing.T) {
	store := newMemStore()
	seedLots(store, 2, 1)
	svc := NewParkingService(store)

	userID := uuid.New()
	booking, err := svc.Book(context.Background(), models.ParkingTwoWheeler, userID)
	require.NoError(t, err)
	assert.True(t, booking.Active)

	statuses, err := svc.Status(context.Background())
	require.NoError(t, err)
	for _, status := range statuses {
		if status.Kind == models.ParkingTwoWheeler {
			assert.Equal(t, 1, status.Booked)
			assert.Equal(t, 1, status.Available)
		}
	}

	require.NoError(t, svc.Release(context.Background(), models.ParkingTwoWheeler, userID))

	statuses, err = svc.Status(context.Background())
	require.NoError(t, err)
	for _, status := range statuses {
		if status.Kind == models.ParkingTwoWheeler {
			assert.Equal(t, 0, status.Booked)
		}
	}
}

func TestParkingDoubleBookSameKind(t *testing.T) {
	store := newMemStore()
	seedLots(store, 10, 10)
	svc := NewParkingService(store)

	userID := uuid.New()
	_, err := svc.Book(context.Background(), models.ParkingTwoWheeler, userID)
	require.NoError(t, err)

	_, err = svc.Book(context.Background(), models.ParkingTwoWheeler, userID)
	assert.ErrorIs(t, err, models.ErrAlreadyBooked)

	// A different kind is a separate slot.
	_, err = svc.Book(context.Background(), models.ParkingFourWheeler, userID)
	assert.NoError(t, err)
}

func TestParkingFullLot(t *testing.T) {
	store := newMemStore()
	seedLots(store, 1, 1)
	svc := NewParkingService(store)

	first := uuid.New()
	_, err := svc.Book(context.Background(), models.ParkingTwoWheeler, first)
	require.NoError(t, err)

	_, err = svc.Book(context.Background(), models.ParkingTwoWheeler, uuid.New())
	assert.ErrorIs(t, err, models.ErrParkingFull)

	require.NoError(t, svc.Release(context.Background(), models.ParkingTwoWheeler, first))

	_, err = svc.Book(context.Background(), models.ParkingTwoWheeler, uuid.New())
	assert.NoError(t, err, "a released slot is bookable again")
}

func TestParkingReleaseWithoutBooking(t *testing.T) {
	store := newMemStore()
	seedLots(store, 1, 1)
	svc := NewParkingService(store)

	err := svc.Release(context.Background(), models.ParkingTwoWheeler, uuid.New())
	assert.ErrorIs(t, err, models.ErrBookingNotFound)
}

func TestParkingInvalidKind(t *testing.T) {
	store := newMemStore()
	seedLots(store, 1, 1)
	svc := NewParkingService(store)

	_, err := svc.Book(context.Background(), "hovercraft", uuid.New())
	assert.ErrorIs(t, err, models.ErrValidation)

	err = svc.Release(context.Background(), "hovercraft", uuid.New())
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestParkingConcurrentLastSlot(t *testing.T) {
	store := newMemStore()
	seedLots(store, 1, 1)
	svc := NewParkingService(store)

	const contenders = 8
	var wg sync.WaitGroup
	errs := make([]error, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Book(context.Background(), models.ParkingTwoWheeler, uuid.New())
		}(i)
	}
	wg.Wait()

	var successes int
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, models.ErrParkingFull)
		}
	}
	assert.Equal(t, 1, successes)

	lot, err := store.LotForUpdate(context.Background(), models.ParkingTwoWheeler)
	require.NoError(t, err)
	assert.Equal(t, 1, lot.Booked, "occupancy must never exceed the lot total")
}
