package services

import (
	"context"
	"time"

	"github.com/eventease/eventease/internal/clock"
	"github.com/eventease/eventease/internal/models"
	"github.com/google/uuid"
)

type AnnouncementStore interface {
	CreateAnnouncement(ctx context.Context, announcement *models.Announcement) error
	Announcement(ctx context.Context, id uuid.UUID) (models.Announcement, error)
	ListAnnouncements(ctx context.Context, now time.Time) ([]models.Announcement, error)
	DeleteAnnouncement(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type AnnouncementService struct {
	store AnnouncementStore
	clock clock.Clock
}

func NewAnnouncementService(store AnnouncementStore, clk clock.Clock) *AnnouncementService {
	return &AnnouncementService{store: store, clock: clk}
}

type CreateAnnouncementInput struct {
	Title     string
	Content   string
	Priority  string
	AuthorID  uuid.UUID
	Author    string
	ExpiresAt *time.Time
}

func (s *AnnouncementService) Create(ctx context.Context, in CreateAnnouncementInput) (models.Announcement, error) {
	if in.Title == "" || in.Content == "" {
		return models.Announcement{}, models.ErrValidation
	}

	priority := in.Priority
	switch priority {
	case "":
		priority = models.PriorityNormal
	case models.PriorityNormal, models.PriorityImportant, models.PriorityUrgent:
	default:
		return models.Announcement{}, models.ErrValidation
	}

	announcement := models.Announcement{
		ID:        uuid.New(),
		Title:     in.Title,
		Content:   in.Content,
		Priority:  priority,
		AuthorID:  in.AuthorID,
		Author:    in.Author,
		ExpiresAt: in.ExpiresAt,
	}

	if err := s.store.CreateAnnouncement(ctx, &announcement); err != nil {
		return models.Announcement{}, err
	}
	return announcement, nil
}

func (s *AnnouncementService) List(ctx context.Context) ([]models.Announcement, error) {
	return s.store.ListAnnouncements(ctx, s.clock.Now())
}

func (s *AnnouncementService) Delete(ctx context.Context, id, callerID uuid.UUID, callerRole string) error {
	announcement, err := s.store.Announcement(ctx, id)
	if err != nil {
		return err
	}

	if announcement.AuthorID != callerID && callerRole != models.RoleAdmin {
		return models.ErrForbidden
	}

	return s.store.DeleteAnnouncement(ctx, id)
}

// PruneExpired drops announcements past their expiry; called from the
// background janitor.
func (s *AnnouncementService) PruneExpired(ctx context.Context) (int64, error) {
	return s.store.DeleteExpired(ctx, s.clock.Now())
}
