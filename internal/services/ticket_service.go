package services

import (
	"context"
	"errors"
	"time"

	"github.com/eventease/eventease/internal/clock"
	"github.com/eventease/eventease/internal/models"
	"github.com/google/uuid"
)

type TicketStore interface {
	CreateTicket(ctx context.Context, ticket *models.Ticket) error
	TicketByToken(ctx context.Context, token string) (models.Ticket, error)
	ConsumeTicket(ctx context.Context, token string, usedAt time.Time) (bool, error)
}

// TicketService owns the ticket lifecycle: ISSUED -> CONSUMED, terminal.
// Consumption is a compare-and-set on the used flag; the attendee add
// happens in the same transaction so a rolled-back admission never leaves
// a half-consumed token.
type TicketService struct {
	tickets  TicketStore
	events   EventStore
	clock    clock.Clock
	tokenTTL time.Duration
}

const defaultTokenTTL = 24 * time.Hour

func NewTicketService(tickets TicketStore, events EventStore, clk clock.Clock, opts ...TicketServiceOption) *TicketService {
	svc := &TicketService{
		tickets:  tickets,
		events:   events,
		clock:    clk,
		tokenTTL: defaultTokenTTL,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type TicketServiceOption func(*TicketService)

// WithTokenTTL overrides how long an issued token stays scannable.
func WithTokenTTL(d time.Duration) TicketServiceOption {
	return func(s *TicketService) {
		if d > 0 {
			s.tokenTTL = d
		}
	}
}

// Issue creates a single-use token bound to (event, user). The token is a
// v4 UUID: 122 random bits, which is what makes the global-uniqueness
// invariant hold in practice.
func (s *TicketService) Issue(ctx context.Context, eventID, userID uuid.UUID) (models.Ticket, error) {
	if eventID == uuid.Nil || userID == uuid.Nil {
		return models.Ticket{}, models.ErrValidation
	}

	if _, err := s.events.Event(ctx, eventID); err != nil {
		return models.Ticket{}, err
	}

	ticket := models.Ticket{
		ID:       uuid.New(),
		Token:    uuid.NewString(),
		EventID:  eventID,
		UserID:   userID,
		IssuedAt: s.clock.Now(),
	}

	if err := s.tickets.CreateTicket(ctx, &ticket); err != nil {
		return models.Ticket{}, err
	}
	return ticket, nil
}

type ValidateResult struct {
	UserID uuid.UUID
}

// Validate consumes a token exactly once. Check order: unknown token,
// wrong event, already used, expired, then the atomic consume + idempotent
// attendee add under the event row lock. A capacity failure rolls the
// whole transaction back, so the token stays unconsumed.
func (s *TicketService) Validate(ctx context.Context, token string, eventID uuid.UUID) (ValidateResult, error) {
	if token == "" || eventID == uuid.Nil {
		return ValidateResult{}, models.ErrValidation
	}

	now := s.clock.Now()
	var result ValidateResult

	err := s.events.WithTx(ctx, func(txCtx context.Context) error {
		ticket, err := s.tickets.TicketByToken(txCtx, token)
		if err != nil {
			return err
		}

		if ticket.EventID != eventID {
			return models.ErrEventMismatch
		}
		if ticket.Used {
			return models.ErrTicketAlreadyUsed
		}
		if now.Sub(ticket.IssuedAt) > s.tokenTTL {
			return models.ErrTicketExpired
		}

		// Serializes with every other admission path for this event.
		event, err := s.events.EventForUpdate(txCtx, eventID)
		if err != nil {
			return err
		}

		consumed, err := s.tickets.ConsumeTicket(txCtx, token, now)
		if err != nil {
			return err
		}
		if !consumed {
			return models.ErrTicketAlreadyUsed
		}

		registered, err := s.events.IsAttendee(txCtx, eventID, ticket.UserID)
		if err != nil {
			return err
		}
		if !registered {
			count, err := s.events.CountAttendees(txCtx, eventID)
			if err != nil {
				return err
			}
			if count >= event.Capacity {
				return models.ErrCapacityExceeded
			}
			if err := s.events.AddAttendee(txCtx, eventID, ticket.UserID); err != nil &&
				!errors.Is(err, models.ErrAlreadyRegistered) {
				return err
			}
		}

		result.UserID = ticket.UserID
		return nil
	})
	if err != nil {
		return ValidateResult{}, err
	}
	return result, nil
}
