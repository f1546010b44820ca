package adaptor

import (
	"io"
	"net/http"

	"kickstreet/internal/dto/request"
	"kickstreet/internal/usecase"
	"kickstreet/pkg/utils"

	"go.uber.org/zap"
)

const maxWebhookBytes = 64 << 10

type CheckoutHandler struct {
	service usecase.CheckoutService
	log     *zap.Logger
}

func NewCheckoutHandler(service usecase.CheckoutService, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		log:     log.With(zap.String("handler", "checkout")),
	}
}

// Quote handles POST /api/cart/quote
func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req request.QuoteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	quote, err := h.service.Quote(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "quote cart")
		return
	}

	utils.ResponseSuccess(w, "Cart priced successfully", quote)
}

// PlaceCOD handles POST /api/checkout/cod
func (h *CheckoutHandler) PlaceCOD(w http.ResponseWriter, r *http.Request) {
	var req request.CheckoutRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	order, err := h.service.PlaceCOD(r.Context(), caller(r), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "place COD order")
		return
	}

	utils.ResponseCreated(w, "Order placed successfully", order)
}

// CreateSession handles POST /api/checkout/session
func (h *CheckoutHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req request.CheckoutRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	session, err := h.service.CreateSession(r.Context(), caller(r), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create checkout session")
		return
	}

	utils.ResponseSuccess(w, "Checkout session created", session)
}

// Webhook handles POST /api/webhooks/payment. The raw body is needed for the signature
// check, so it is read before any decoding.
func (h *CheckoutHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBytes))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid webhook body", nil)
		return
	}

	if err := h.service.HandleWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature")); err != nil {
		handleServiceError(w, h.log, err, "handle payment webhook")
		return
	}

	utils.ResponseSuccess(w, "Webhook received", map[string]bool{"received": true})
}
