package store

import (
	"context"
	"errors"
	"time"

	"github.com/eventease/eventease/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventStore struct {
	*DB
}

func NewEventStore(db *DB) *EventStore {
	return &EventStore{DB: db}
}

func (s *EventStore) CreateEvent(ctx context.Context, event *models.Event) error {
	db, cancel := s.handle(ctx)
	defer cancel()

	return translateErr(db.Create(event).Error)
}

func (s *EventStore) Event(ctx context.Context, id uuid.UUID) (models.Event, error) {
	db, cancel := s.handle(ctx)
	defer cancel()

	var event models.Event
	err := db.Preload("Attendees").Where("id = ?", id).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Event{}, models.ErrEventNotFound
		}
		return models.Event{}, translateErr(err)
	}
	return event, nil
}

// EventForUpdate locks the event row for the rest of the transaction,
// serializing capacity checks per event.
func (s *EventStore) EventForUpdate(ctx context.Context, id uuid.UUID) (models.Event, error) {
	db, cancel := s.handle(ctx)
	defer cancel()

	var event models.Event
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Event{}, models.ErrEventNotFound
		}
		return models.Event{}, translateErr(err)
	}
	return event, nil
}

func (s *EventStore) ListEvents(ctx context.Context, page, limit int) ([]models.Event, int64, error) {
	db, cancel := s.handle(ctx)
	defer cancel()

	query := db.Model(&models.Event{})

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, translateErr(err)
	}

	var events []models.Event
	offset := (page - 1) * limit
	err := query.Preload("Attendees").Offset(offset).Limit(limit).Order("created_at DESC").Find(&events).Error
	if err != nil {
		return nil, 0, translateErr(err)
	}
	return events, totalCount, nil
}

func (s *EventStore) UpdateEvent(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	db, cancel := s.handle(ctx)
	defer cancel()

	result := db.Model(&models.Event{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return translateErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrEventNotFound
	}
	return nil
}

func (s *EventStore) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	db, cancel := s.handle(ctx)
	defer cancel()

	result := db.Where("id = ?", id).Delete(&models.Event{})
	if result.Error != nil {
		return translateErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrEventNotFound
	}
	return nil
}

func (s *EventStore) CountAttendees(ctx context.Context, eventID uuid.UUID) (int, error) {
	db, cancel := s.handle(ctx)
	defer cancel()

	var count int64
	err := db.Model(&models.Attendee{}).Where("event_id = ?", eventID).Count(&count).Error
	if err != nil {
		return 0, translateErr(err)
	}
	return int(count), nil
}

func (s *EventStore) IsAttendee(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	db, cancel := s.handle(ctx)
	defer cancel()

	var count int64
	err := db.Model(&models.Attendee{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error
	if err != nil {
		return false, translateErr(err)
	}
	return count > 0, nil
}

func (s *EventStore) AddAttendee(ctx context.Context, eventID, userID uuid.UUID) error {
	db, cancel := s.handle(ctx)
	defer cancel()

	attendee := models.Attendee{EventID: eventID, UserID: userID}
	if err := db.Create(&attendee).Error; err != nil {
		if isUniqueViolation(err) {
			return models.ErrAlreadyRegistered
		}
		return translateErr(err)
	}
	return nil
}

func (s *EventStore) RemoveAttendee(ctx context.Context, eventID, userID uuid.UUID) error {
	db, cancel := s.handle(ctx)
	defer cancel()

	result := db.Where("event_id = ? AND user_id = ?", eventID, userID).Delete(&models.Attendee{})
	if result.Error != nil {
		return translateErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrNotRegistered
	}
	return nil
}

func (s *EventStore) SetEntryToken(ctx context.Context, id uuid.UUID, token string, at time.Time) error {
	db, cancel := s.handle(ctx)
	defer cancel()

	result := db.Model(&models.Event{}).Where("id = ?", id).Updates(map[string]interface{}{
		"entry_token":    token,
		"entry_token_at": at,
	})
	if result.Error != nil {
		return translateErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrEventNotFound
	}
	return nil
}
