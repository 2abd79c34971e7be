package store

import (
	"context"
	"errors"
	"time"

	"github.com/eventease/eventease/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type txKey struct{}

// DB wraps the gorm handle shared by every repository. Each call gets the
// configured timeout; transactions are carried through the context so one
// transaction can span repositories.
type DB struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewDB(db *gorm.DB, timeout time.Duration) *DB {
	return &DB{db: db, timeout: timeout}
}

func (d *DB) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	// The whole transaction shares one deadline, so a contended row lock
	// inside it cannot block past the timeout.
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
	return translateErr(err)
}

func txFromContext(ctx context.Context) *gorm.DB {
	tx, _ := ctx.Value(txKey{}).(*gorm.DB)
	return tx
}

// handle returns the transaction handle when one is in flight, otherwise a
// deadline-bounded session. The cancel func is a no-op inside a transaction
// so the transaction's own context stays in charge.
func (d *DB) handle(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	if tx := txFromContext(ctx); tx != nil {
		return tx, func() {}
	}
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	return d.db.WithContext(ctx), cancel
}

func translateErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return models.ErrStoreUnavailable
	default:
		return err
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
