package store

import (
	"context"
	"errors"
	"time"

	"github.com/eventease/eventease/internal/models"
	"gorm.io/gorm"
)

type TicketStore struct {
	*DB
}

func NewTicketStore(db *DB) *TicketStore {
	return &TicketStore{DB: db}
}

func (s *TicketStore) CreateTicket(ctx context.Context, ticket *models.Ticket) error {
	db, cancel := s.handle(ctx)
	defer cancel()

	return translateErr(db.Create(ticket).Error)
}

func (s *TicketStore) TicketByToken(ctx context.Context, token string) (models.Ticket, error) {
	db, cancel := s.handle(ctx)
	defer cancel()

	var ticket models.Ticket
	err := db.Where("token = ?", token).First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Ticket{}, models.ErrTicketNotFound
		}
		return models.Ticket{}, translateErr(err)
	}
	return ticket, nil
}

// ConsumeTicket flips used from false to true. The WHERE clause is the
// compare-and-set: a second scan of the same token matches zero rows.
func (s *TicketStore) ConsumeTicket(ctx context.Context, token string, usedAt time.Time) (bool, error) {
	db, cancel := s.handle(ctx)
	defer cancel()

	result := db.Model(&models.Ticket{}).
		Where("token = ? AND used = ?", token, false).
		Updates(map[string]interface{}{"used": true, "used_at": usedAt})
	if result.Error != nil {
		return false, translateErr(result.Error)
	}
	return result.RowsAffected > 0, nil
}
