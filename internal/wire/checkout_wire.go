package wire

import (
	"kickstreet/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCheckout(r chi.Router, checkout *adaptor.CheckoutHandler, orders *adaptor.OrderHandler, g guards) {
	r.Post("/cart/quote", checkout.Quote)

	// guests may check out; a valid token attaches the order to the account
	r.With(g.optional).Post("/checkout/cod", checkout.PlaceCOD)
	r.With(g.optional).Post("/checkout/session", checkout.CreateSession)

	// authenticated by the provider signature, not by a session
	r.Post("/webhooks/payment", checkout.Webhook)

	r.Get("/orders/verify-session", orders.VerifySession)
	r.With(g.auth).Get("/orders/mine", orders.MyOrders)
}
