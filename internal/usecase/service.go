package usecase

import (
	"time"

	"kickstreet/internal/data/repository"
	"kickstreet/pkg/mailer"
	"kickstreet/pkg/payment"
	"kickstreet/pkg/storage"
	"kickstreet/pkg/utils"

	"go.uber.org/zap"
)

// Clock returns the current time. Tests pin it.
type Clock func() time.Time

// Deps are the outside systems the services talk to.
type Deps struct {
	Mailer  mailer.Sender
	Payment payment.Gateway
	Images  storage.ImageStore
	Tokens  *utils.TokenIssuer
	Clock   Clock
}

type Service struct {
	Auth       AuthService
	User       UserService
	Product    ProductService
	Slider     SliderService
	Checkout   CheckoutService
	Order      OrderService
	Stats      StatsService
	Newsletter NewsletterService
}

func NewService(repo *repository.Repository, config *utils.Config, deps Deps, log *zap.Logger) *Service {
	if deps.Clock == nil {
		deps.Clock = time.Now
	}

	newsletter := NewNewsletterService(repo, config, deps, log)

	return &Service{
		Auth:       NewAuthService(repo, config, deps, log),
		User:       NewUserService(repo, config, deps, log),
		Product:    NewProductService(repo, newsletter, deps, log),
		Slider:     NewSliderService(repo, config, deps, log),
		Checkout:   NewCheckoutService(repo, config, deps, log),
		Order:      NewOrderService(repo, log),
		Stats:      NewStatsService(repo, deps, log),
		Newsletter: newsletter,
	}
}
