package services

import (
	"context"
	"time"

	"github.com/eventease/eventease/internal/clock"
	"github.com/eventease/eventease/internal/models"
	"github.com/google/uuid"
)

type EmergencyStore interface {
	CreateEmergency(ctx context.Context, emergency *models.Emergency) error
	Emergency(ctx context.Context, id uuid.UUID) (models.Emergency, error)
	ListEmergencies(ctx context.Context, status string) ([]models.Emergency, error)
	ResolveEmergency(ctx context.Context, id, resolverID uuid.UUID, at time.Time) (bool, error)
}

type EmergencyService struct {
	store EmergencyStore
	clock clock.Clock
}

func NewEmergencyService(store EmergencyStore, clk clock.Clock) *EmergencyService {
	return &EmergencyService{store: store, clock: clk}
}

type RaiseEmergencyInput struct {
	UserID    uuid.UUID
	Kind      string
	Message   string
	Latitude  float64
	Longitude float64
}

func (s *EmergencyService) Raise(ctx context.Context, in RaiseEmergencyInput) (models.Emergency, error) {
	if in.Kind == "" {
		return models.Emergency{}, models.ErrValidation
	}

	emergency := models.Emergency{
		ID:        uuid.New(),
		UserID:    in.UserID,
		Kind:      in.Kind,
		Message:   in.Message,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		Status:    models.EmergencyActive,
	}

	if err := s.store.CreateEmergency(ctx, &emergency); err != nil {
		return models.Emergency{}, err
	}
	return emergency, nil
}

func (s *EmergencyService) List(ctx context.Context, status string) ([]models.Emergency, error) {
	switch status {
	case "", models.EmergencyActive, models.EmergencyResolved:
	default:
		return nil, models.ErrValidation
	}
	return s.store.ListEmergencies(ctx, status)
}

// Resolve transitions active -> resolved exactly once.
func (s *EmergencyService) Resolve(ctx context.Context, id, resolverID uuid.UUID) (models.Emergency, error) {
	resolved, err := s.store.ResolveEmergency(ctx, id, resolverID, s.clock.Now())
	if err != nil {
		return models.Emergency{}, err
	}
	if !resolved {
		if _, err := s.store.Emergency(ctx, id); err != nil {
			return models.Emergency{}, err
		}
		return models.Emergency{}, models.ErrEmergencyResolved
	}
	return s.store.Emergency(ctx, id)
}
