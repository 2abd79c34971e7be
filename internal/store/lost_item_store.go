package store

import (
	"context"
	"errors"
	"time"

	"github.com/eventease/eventease/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LostItemStore struct {
	*DB
}

func NewLostItemStore(db *DB) *LostItemStore {
	return &LostItemStore{DB: db}
}

func (s *LostItemStore) CreateItem(ctx context.Context, item *models.LostItem) error {
	db, cancel := s.handle(ctx)
	defer cancel()

	return translateErr(db.Create(item).Error)
}

func (s *LostItemStore) Item(ctx context.Context, id uuid.UUID) (models.LostItem, error) {
	db, cancel := s.handle(ctx)
	defer cancel()

	var item models.LostItem
	err := db.Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.LostItem{}, models.ErrItemNotFound
		}
		return models.LostItem{}, translateErr(err)
	}
	return item, nil
}

func (s *LostItemStore) ListItems(ctx context.Context, status string) ([]models.LostItem, error) {
	db, cancel := s.handle(ctx)
	defer cancel()

	query := db.Model(&models.LostItem{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var items []models.LostItem
	if err := query.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, translateErr(err)
	}
	return items, nil
}

// ClaimItem transitions open -> claimed; zero rows means the item was
// already claimed or never existed.
func (s *LostItemStore) ClaimItem(ctx context.Context, id, userID uuid.UUID, at time.Time) (bool, error) {
	db, cancel := s.handle(ctx)
	defer cancel()

	result := db.Model(&models.LostItem{}).
		Where("id = ? AND status = ?", id, models.ItemStatusOpen).
		Updates(map[string]interface{}{
			"status":     models.ItemStatusClaimed,
			"claimed_by": userID,
			"claimed_at": at,
		})
	if result.Error != nil {
		return false, translateErr(result.Error)
	}
	return result.RowsAffected > 0, nil
}
