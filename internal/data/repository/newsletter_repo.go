package repository

import (
	"context"
	"fmt"

	"kickstreet/internal/data/entity"
	"kickstreet/pkg/database"

	"go.uber.org/zap"
)

type NewsletterRepository interface {
	// Subscribe inserts the email or reactivates it. It reports whether the address was new.
	Subscribe(ctx context.Context, sub *entity.NewsletterSubscriber) (bool, error)
	ActiveEmails(ctx context.Context) ([]string, error)
}

type newsletterRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewNewsletterRepository(db database.Querier, log *zap.Logger) NewsletterRepository {
	return &newsletterRepository{
		db:  db,
		log: log.With(zap.String("repository", "newsletter")),
	}
}

func (r *newsletterRepository) Subscribe(ctx context.Context, sub *entity.NewsletterSubscriber) (bool, error) {
	query := `
		INSERT INTO newsletter_subscribers (id, email, is_active, created_at)
		VALUES ($1, $2, TRUE, $3)
		ON CONFLICT (email) DO UPDATE SET is_active = TRUE
		RETURNING (xmax = 0)
	`

	var inserted bool
	if err := r.db.QueryRow(ctx, query, sub.ID, sub.Email, sub.CreatedAt).Scan(&inserted); err != nil {
		r.log.Error("Failed to subscribe", zap.Error(err), zap.String("email", sub.Email))
		return false, fmt.Errorf("subscribe %s: %w", sub.Email, err)
	}
	return inserted, nil
}

func (r *newsletterRepository) ActiveEmails(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT email FROM newsletter_subscribers WHERE is_active ORDER BY created_at`)
	if err != nil {
		r.log.Error("Failed to list subscribers", zap.Error(err))
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	defer rows.Close()

	emails := make([]string, 0)
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("scan subscriber: %w", err)
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}
