package usecase

import (
	"context"

	"kickstreet/internal/data/entity"
	"kickstreet/internal/data/repository"
	"kickstreet/internal/dto/request"
	"kickstreet/internal/dto/response"
	"kickstreet/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderService interface {
	// VerifySession finds the order booked for a card checkout session. Clients poll it
	// until the webhook has landed.
	VerifySession(ctx context.Context, sessionID string) (*response.OrderResponse, error)
	MyOrders(ctx context.Context, caller utils.Identity) ([]response.OrderResponse, error)
	List(ctx context.Context, page request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error)
	Update(ctx context.Context, id uuid.UUID, req *request.UpdateOrderRequest) (*response.OrderResponse, error)
}

type orderService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewOrderService(repo *repository.Repository, log *zap.Logger) OrderService {
	return &orderService{
		repo: repo,
		log:  log.With(zap.String("service", "order")),
	}
}

func (s *orderService) VerifySession(ctx context.Context, sessionID string) (*response.OrderResponse, error) {
	if sessionID == "" {
		return nil, errorf(ErrValidation, "session_id is required")
	}

	order, err := s.repo.Order.FindByPaymentSessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errorf(ErrNotFound, "order not found")
	}

	resp := response.OrderToResponse(order)
	return &resp, nil
}

func (s *orderService) MyOrders(ctx context.Context, caller utils.Identity) ([]response.OrderResponse, error) {
	orders, err := s.repo.Order.FindByCustomer(ctx, caller.UserID, caller.Email)
	if err != nil {
		return nil, err
	}
	return response.OrdersToResponse(orders), nil
}

func (s *orderService) List(ctx context.Context, page request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error) {
	orders, err := s.repo.Order.FindAll(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Order.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	return response.NewPaginatedResponse(response.OrdersToResponse(orders), page.Page, page.Limit(), total), nil
}

func (s *orderService) Update(ctx context.Context, id uuid.UUID, req *request.UpdateOrderRequest) (*response.OrderResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if req.Status == nil && req.OrderStatus == nil && req.TrackingID == nil {
		return nil, errorf(ErrValidation, "nothing to update")
	}

	order, err := s.repo.Order.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errorf(ErrNotFound, "order not found")
	}

	if req.Status != nil {
		status := entity.PaymentStatus(*req.Status)
		if !status.Valid() {
			return nil, errorf(ErrValidation, "invalid payment status %q", *req.Status)
		}
		order.Status = status
	}
	if req.OrderStatus != nil {
		status := entity.OrderStatus(*req.OrderStatus)
		if !status.Valid() {
			return nil, errorf(ErrValidation, "invalid order status %q", *req.OrderStatus)
		}
		order.OrderStatus = status
	}
	if req.TrackingID != nil {
		order.TrackingID = *req.TrackingID
	}

	if err := s.repo.Order.UpdateStatus(ctx, order); err != nil {
		return nil, err
	}

	s.log.Info("Order updated",
		zap.String("id", id.String()),
		zap.String("status", string(order.Status)),
		zap.String("order_status", string(order.OrderStatus)),
	)

	resp := response.OrderToResponse(order)
	return &resp, nil
}
