package adaptor

import (
	"net/http"

	"kickstreet/internal/dto/request"
	"kickstreet/internal/usecase"
	"kickstreet/pkg/utils"

	"go.uber.org/zap"
)

type NewsletterHandler struct {
	service usecase.NewsletterService
	log     *zap.Logger
}

func NewNewsletterHandler(service usecase.NewsletterService, log *zap.Logger) *NewsletterHandler {
	return &NewsletterHandler{
		service: service,
		log:     log.With(zap.String("handler", "newsletter")),
	}
}

// Subscribe handles POST /api/newsletter/subscribe
func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req request.SubscribeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.Subscribe(r.Context(), req.Email); err != nil {
		handleServiceError(w, h.log, err, "subscribe")
		return
	}

	utils.ResponseCreated(w, "Subscribed successfully", nil)
}
