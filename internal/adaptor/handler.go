package adaptor

import (
	"kickstreet/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth       *AuthHandler
	User       *UserHandler
	Product    *ProductHandler
	Slider     *SliderHandler
	Checkout   *CheckoutHandler
	Order      *OrderHandler
	Stats      *StatsHandler
	Newsletter *NewsletterHandler
	Health     *HealthHandler
}

func NewHandler(service *usecase.Service, health *HealthHandler, log *zap.Logger) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(service.Auth, log),
		User:       NewUserHandler(service.User, log),
		Product:    NewProductHandler(service.Product, log),
		Slider:     NewSliderHandler(service.Slider, log),
		Checkout:   NewCheckoutHandler(service.Checkout, log),
		Order:      NewOrderHandler(service.Order, log),
		Stats:      NewStatsHandler(service.Stats, log),
		Newsletter: NewNewsletterHandler(service.Newsletter, log),
		Health:     health,
	}
}
