package services

import (
	"context"
	"time"

	"github.com/eventease/eventease/internal/clock"
	"github.com/eventease/eventease/internal/models"
	"github.com/google/uuid"
)

type EventStore interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	CreateEvent(ctx context.Context, event *models.Event) error
	Event(ctx context.Context, id uuid.UUID) (models.Event, error)
	EventForUpdate(ctx context.Context, id uuid.UUID) (models.Event, error)
	ListEvents(ctx context.Context, page, limit int) ([]models.Event, int64, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	DeleteEvent(ctx context.Context, id uuid.UUID) error
	CountAttendees(ctx context.Context, eventID uuid.UUID) (int, error)
	IsAttendee(ctx context.Context, eventID, userID uuid.UUID) (bool, error)
	AddAttendee(ctx context.Context, eventID, userID uuid.UUID) error
	RemoveAttendee(ctx context.Context, eventID, userID uuid.UUID) error
	SetEntryToken(ctx context.Context, id uuid.UUID, token string, at time.Time) error
}

type EventService struct {
	store           EventStore
	clock           clock.Clock
	defaultCapacity int
}

func NewEventService(store EventStore, clk clock.Clock, defaultCapacity int) *EventService {
	return &EventService{
		store:           store,
		clock:           clk,
		defaultCapacity: defaultCapacity,
	}
}

type CreateEventInput struct {
	Name        string
	Description string
	Date        time.Time
	Location    string
	Capacity    int
	OrganizerID uuid.UUID
}

func (s *EventService) Create(ctx context.Context, in CreateEventInput) (models.Event, error) {
	if in.Name == "" || in.Date.IsZero() || in.OrganizerID == uuid.Nil {
		return models.Event{}, models.ErrValidation
	}
	if in.Capacity < 0 {
		return models.Event{}, models.ErrValidation
	}

	capacity := in.Capacity
	if capacity == 0 {
		capacity = s.defaultCapacity
	}

	event := models.Event{
		ID:          uuid.New(),
		Name:        in.Name,
		Description: in.Description,
		Date:        in.Date,
		Location:    in.Location,
		Capacity:    capacity,
		OrganizerID: in.OrganizerID,
	}

	if err := s.store.CreateEvent(ctx, &event); err != nil {
		return models.Event{}, err
	}
	return event, nil
}

func (s *EventService) Get(ctx context.Context, id uuid.UUID) (models.Event, error) {
	return s.store.Event(ctx, id)
}

func (s *EventService) List(ctx context.Context, page, limit int) ([]models.Event, int64, error) {
	return s.store.ListEvents(ctx, page, limit)
}

// UpdateEventPatch carries only the fields the caller supplied; nil fields
// are left untouched.
type UpdateEventPatch struct {
	Name        *string
	Description *string
	Date        *time.Time
	Location    *string
	Capacity    *int
}

func (s *EventService) Update(ctx context.Context, id uuid.UUID, patch UpdateEventPatch, callerID uuid.UUID, callerRole string) (models.Event, error) {
	event, err := s.store.Event(ctx, id)
	if err != nil {
		return models.Event{}, err
	}

	if event.OrganizerID != callerID && callerRole != models.RoleAdmin {
		return models.Event{}, models.ErrForbidden
	}

	fields := map[string]interface{}{
		"updated_at": s.clock.Now(),
	}
	if patch.Name != nil {
		if *patch.Name == "" {
			return models.Event{}, models.ErrValidation
		}
		fields["name"] = *patch.Name
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.Date != nil {
		fields["date"] = *patch.Date
	}
	if patch.Location != nil {
		fields["location"] = *patch.Location
	}
	if patch.Capacity != nil {
		if *patch.Capacity <= 0 {
			return models.Event{}, models.ErrValidation
		}
		fields["capacity"] = *patch.Capacity
	}

	if err := s.store.UpdateEvent(ctx, id, fields); err != nil {
		return models.Event{}, err
	}
	return s.store.Event(ctx, id)
}

func (s *EventService) Delete(ctx context.Context, id uuid.UUID, callerID uuid.UUID, callerRole string) error {
	event, err := s.store.Event(ctx, id)
	if err != nil {
		return err
	}

	if event.OrganizerID != callerID && callerRole != models.RoleAdmin {
		return models.ErrForbidden
	}

	return s.store.DeleteEvent(ctx, id)
}

// AddAttendee admits a user. The capacity check and the insert run under
// the event row lock so concurrent admissions near capacity cannot both
// pass the check.
func (s *EventService) AddAttendee(ctx context.Context, eventID, userID uuid.UUID) error {
	return s.store.WithTx(ctx, func(txCtx context.Context) error {
		event, err := s.store.EventForUpdate(txCtx, eventID)
		if err != nil {
			return err
		}

		registered, err := s.store.IsAttendee(txCtx, eventID, userID)
		if err != nil {
			return err
		}
		if registered {
			return models.ErrAlreadyRegistered
		}

		count, err := s.store.CountAttendees(txCtx, eventID)
		if err != nil {
			return err
		}
		if count >= event.Capacity {
			return models.ErrCapacityExceeded
		}

		return s.store.AddAttendee(txCtx, eventID, userID)
	})
}

func (s *EventService) RemoveAttendee(ctx context.Context, eventID, userID uuid.UUID) error {
	if _, err := s.store.Event(ctx, eventID); err != nil {
		return err
	}
	return s.store.RemoveAttendee(ctx, eventID, userID)
}

// RotateEntryToken replaces the event-level entry code. Only the
// organizer, a volunteer or an admin may request one.
func (s *EventService) RotateEntryToken(ctx context.Context, eventID, callerID uuid.UUID, callerRole string) (models.Event, string, error) {
	event, err := s.store.Event(ctx, eventID)
	if err != nil {
		return models.Event{}, "", err
	}

	if event.OrganizerID != callerID && callerRole != models.RoleAdmin && callerRole != models.RoleVolunteer {
		return models.Event{}, "", models.ErrForbidden
	}

	token := uuid.NewString()
	now := s.clock.Now()
	if err := s.store.SetEntryToken(ctx, eventID, token, now); err != nil {
		return models.Event{}, "", err
	}

	event.EntryToken = token
	event.EntryTokenAt = &now
	return event, token, nil
}
