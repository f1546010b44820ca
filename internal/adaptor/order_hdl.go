package adaptor

import (
	"net/http"

	"kickstreet/internal/dto/request"
	"kickstreet/internal/usecase"
	"kickstreet/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderHandler struct {
	service usecase.OrderService
	log     *zap.Logger
}

func NewOrderHandler(service usecase.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		log:     log.With(zap.String("handler", "order")),
	}
}

// VerifySession handles GET /api/orders/verify-session?session_id=
func (h *OrderHandler) VerifySession(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.VerifySession(r.Context(), r.URL.Query().Get("session_id"))
	if err != nil {
		handleServiceError(w, h.log, err, "verify checkout session")
		return
	}

	utils.ResponseSuccess(w, "Order retrieved successfully", order)
}

// MyOrders handles GET /api/orders/mine
func (h *OrderHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	identity := caller(r)
	if identity == nil {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	orders, err := h.service.MyOrders(r.Context(), *identity)
	if err != nil {
		handleServiceError(w, h.log, err, "list my orders")
		return
	}

	utils.ResponseSuccess(w, "Orders retrieved successfully", orders)
}

// List handles GET /api/admin/orders?page=1&per_page=12
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.List(r.Context(), request.PaginationFromQuery(r.URL.Query()))
	if err != nil {
		handleServiceError(w, h.log, err, "list orders")
		return
	}

	utils.ResponseSuccess(w, "Orders retrieved successfully", orders)
}

// Update handles PUT /api/admin/orders/{id}
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req request.UpdateOrderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	h.update(w, r, id, &req)
}

// UpdateFromBody handles PUT /api/admin/orders, where the order id travels in the body.
func (h *OrderHandler) UpdateFromBody(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderID string `json:"order_id" validate:"required,uuid"`
		request.UpdateOrderRequest
	}
	if !decodeAndValidate(w, r, &req) {
		return
	}

	h.update(w, r, uuid.MustParse(req.OrderID), &req.UpdateOrderRequest)
}

func (h *OrderHandler) update(w http.ResponseWriter, r *http.Request, id uuid.UUID, req *request.UpdateOrderRequest) {
	order, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		handleServiceError(w, h.log, err, "update order")
		return
	}

	utils.ResponseSuccess(w, "Order updated successfully", order)
}
