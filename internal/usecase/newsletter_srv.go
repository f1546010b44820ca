package usecase

import (
	"context"
	"strings"

	"kickstreet/internal/data/entity"
	"kickstreet/internal/data/repository"
	"kickstreet/pkg/mailer"
	"kickstreet/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type NewsletterService interface {
	Subscribe(ctx context.Context, email string) error
	ActiveEmails(ctx context.Context) ([]string, error)
	// AnnounceProduct mails every active subscriber about a new product.
	AnnounceProduct(ctx context.Context, product *entity.Product) error
}

type newsletterService struct {
	repo   *repository.Repository
	config *utils.Config
	deps   Deps
	log    *zap.Logger
}

func NewNewsletterService(repo *repository.Repository, config *utils.Config, deps Deps, log *zap.Logger) NewsletterService {
	return &newsletterService{
		repo:   repo,
		config: config,
		deps:   deps,
		log:    log.With(zap.String("service", "newsletter")),
	}
}

func (s *newsletterService) Subscribe(ctx context.Context, email string) error {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return errorf(ErrValidation, "email is required")
	}

	inserted, err := s.repo.Newsletter.Subscribe(ctx, &entity.NewsletterSubscriber{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: s.deps.Clock()},
		Email:      email,
		IsActive:   true,
	})
	if err != nil {
		return err
	}
	if !inserted {
		return errorf(ErrConflict, "email is already on the list")
	}

	s.log.Info("Newsletter subscription", zap.String("email", email))
	return nil
}

func (s *newsletterService) ActiveEmails(ctx context.Context) ([]string, error) {
	return s.repo.Newsletter.ActiveEmails(ctx)
}

func (s *newsletterService) AnnounceProduct(ctx context.Context, product *entity.Product) error {
	emails, err := s.repo.Newsletter.ActiveEmails(ctx)
	if err != nil {
		return err
	}
	if len(emails) == 0 {
		return nil
	}

	return s.deps.Mailer.SendAnnouncement(ctx, emails, mailer.Announcement{
		ProductName: product.Name,
		Price:       formatPrice(s.config.Payment.Currency, product.Price.StringFixed(2)),
		Image:       product.CoverImage(),
		URL:         s.config.App.BaseURL + "/products/" + product.Slug,
	})
}

func formatPrice(currency, amount string) string {
	if currency == "" {
		currency = "inr"
	}
	return strings.ToUpper(currency) + " " + amount
}
