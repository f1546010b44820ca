package repository

import (
	"errors"
	"fmt"

	"kickstreet/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ErrDuplicate is returned when an insert or update hits a unique constraint.
var ErrDuplicate = errors.New("duplicate key")

type Repository struct {
	User       UserRepository
	Session    SessionRepository
	Product    ProductRepository
	Slider     SliderRepository
	Order      OrderRepository
	Newsletter NewsletterRepository
	Stats      StatsRepository

	// Tx runs fn against repositories bound to one database transaction.
	Tx TxRunner
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	repo := newRepository(db, log)
	repo.Tx = &pgxTxRunner{db: db, log: log}
	return repo
}

func newRepository(q database.Querier, log *zap.Logger) *Repository {
	return &Repository{
		User:       NewUserRepository(q, log),
		Session:    NewSessionRepository(q, log),
		Product:    NewProductRepository(q, log),
		Slider:     NewSliderRepository(q, log),
		Order:      NewOrderRepository(q, log),
		Newsletter: NewNewsletterRepository(q, log),
		Stats:      NewStatsRepository(q, log),
	}
}

// uniqueViolation reports whether err is a Postgres unique_violation (23505).
func uniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func wrapDuplicate(err error, format string, args ...any) error {
	if uniqueViolation(err) {
		return fmt.Errorf(format+": %w", append(args, ErrDuplicate)...)
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
