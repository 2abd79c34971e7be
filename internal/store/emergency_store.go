package store

import (
	"context"
	"errors"
	"time"

	"github.com/eventease/eventease/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmergencyStore struct {
	*DB
}

func NewEmergencyStore(db *DB) *EmergencyStore {
	return &EmergencyStore{DB: db}
}

func (s *EmergencyStore) CreateEmergency(ctx context.Context, emergency *models.Emergency) error {
	db, cancel := s.handle(ctx)
	defer cancel()

	return translateErr(db.Create(emergency).Error)
}

func (s *EmergencyStore) Emergency(ctx context.Context, id uuid.UUID) (models.Emergency, error) {
	db, cancel := s.handle(ctx)
	defer cancel()

	var emergency models.Emergency
	err := db.Where("id = ?", id).First(&emergency).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Emergency{}, models.ErrEmergencyNotFound
		}
		return models.Emergency{}, translateErr(err)
	}
	return emergency, nil
}

func (s *EmergencyStore) ListEmergencies(ctx context.Context, status string) ([]models.Emergency, error) {
	db, cancel := s.handle(ctx)
	defer cancel()

	query := db.Model(&models.Emergency{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var emergencies []models.Emergency
	if err := query.Order("created_at DESC").Find(&emergencies).Error; err != nil {
		return nil, translateErr(err)
	}
	return emergencies, nil
}

// ResolveEmergency transitions active -> resolved exactly once.
func (s *EmergencyStore) ResolveEmergency(ctx context.Context, id, resolverID uuid.UUID, at time.Time) (bool, error) {
	db, cancel := s.handle(ctx)
	defer cancel()

	result := db.Model(&models.Emergency{}).
		Where("id = ? AND status = ?", id, models.EmergencyActive).
		Updates(map[string]interface{}{
			"status":      models.EmergencyResolved,
			"resolved_by": resolverID,
			"resolved_at": at,
		})
	if result.Error != nil {
		return false, translateErr(result.Error)
	}
	return result.RowsAffected > 0, nil
}
