package store

import (
	"context"
	"errors"
	"time"

	"github.com/eventease/eventease/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnnouncementStore struct {
	*DB
}

func NewAnnouncementStore(db *DB) *AnnouncementStore {
	return &AnnouncementStore{DB: db}
}

func (s *AnnouncementStore) CreateAnnouncement(ctx context.Context, announcement *models.Announcement) error {
	db, cancel := s.handle(ctx)
	defer cancel()

	return translateErr(db.Create(announcement).Error)
}

func (s *AnnouncementStore) Announcement(ctx context.Context, id uuid.UUID) (models.Announcement, error) {
	db, cancel := s.handle(ctx)
	defer cancel()

	var announcement models.Announcement
	err := db.Where("id = ?", id).First(&announcement).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Announcement{}, models.ErrAnnouncementNotFound
		}
		return models.Announcement{}, translateErr(err)
	}
	return announcement, nil
}

// ListAnnouncements returns announcements still live at the given instant,
// newest first.
func (s *AnnouncementStore) ListAnnouncements(ctx context.Context, now time.Time) ([]models.Announcement, error) {
	db, cancel := s.handle(ctx)
	defer cancel()

	var announcements []models.Announcement
	err := db.Where("expires_at IS NULL OR expires_at > ?", now).
		Order("created_at DESC").
		Find(&announcements).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return announcements, nil
}

func (s *AnnouncementStore) DeleteAnnouncement(ctx context.Context, id uuid.UUID) error {
	db, cancel := s.handle(ctx)
	defer cancel()

	result := db.Where("id = ?", id).Delete(&models.Announcement{})
	if result.Error != nil {
		return translateErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrAnnouncementNotFound
	}
	return nil
}

func (s *AnnouncementStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	db, cancel := s.handle(ctx)
	defer cancel()

	result := db.Where("expires_at IS NOT NULL AND expires_at <= ?", now).Delete(&models.Announcement{})
	if result.Error != nil {
		return 0, translateErr(result.Error)
	}
	return result.RowsAffected, nil
}
