package services

import (
	"context"
	"time"

	"github.com/eventease/eventease/internal/clock"
	"github.com/eventease/eventease/internal/models"
	"github.com/google/uuid"
)

type LostItemStore interface {
	CreateItem(ctx context.Context, item *models.LostItem) error
	Item(ctx context.Context, id uuid.UUID) (models.LostItem, error)
	ListItems(ctx context.Context, status string) ([]models.LostItem, error)
	ClaimItem(ctx context.Context, id, userID uuid.UUID, at time.Time) (bool, error)
}

type LostItemService struct {
	store LostItemStore
	clock clock.Clock
}

func NewLostItemService(store LostItemStore, clk clock.Clock) *LostItemService {
	return &LostItemService{store: store, clock: clk}
}

type ReportItemInput struct {
	Name        string
	Description string
	Location    string
	PhotoPath   string
	ReporterID  uuid.UUID
}

func (s *LostItemService) Report(ctx context.Context, in ReportItemInput) (models.LostItem, error) {
	if in.Name == "" {
		return models.LostItem{}, models.ErrValidation
	}

	item := models.LostItem{
		ID:          uuid.New(),
		Name:        in.Name,
		Description: in.Description,
		Location:    in.Location,
		PhotoPath:   in.PhotoPath,
		ReporterID:  in.ReporterID,
		Status:      models.ItemStatusOpen,
	}

	if err := s.store.CreateItem(ctx, &item); err != nil {
		return models.LostItem{}, err
	}
	return item, nil
}

func (s *LostItemService) List(ctx context.Context, status string) ([]models.LostItem, error) {
	switch status {
	case "", models.ItemStatusOpen, models.ItemStatusClaimed:
	default:
		return nil, models.ErrValidation
	}
	return s.store.ListItems(ctx, status)
}

// Claim moves an item open -> claimed exactly once; a lost claim race is
// reported as already-claimed, never as a second success.
func (s *LostItemService) Claim(ctx context.Context, id, userID uuid.UUID) (models.LostItem, error) {
	claimed, err := s.store.ClaimItem(ctx, id, userID, s.clock.Now())
	if err != nil {
		return models.LostItem{}, err
	}
	if !claimed {
		if _, err := s.store.Item(ctx, id); err != nil {
			return models.LostItem{}, err
		}
		return models.LostItem{}, models.ErrItemAlreadyClaimed
	}
	return s.store.Item(ctx, id)
}
