package usecase

import (
	"context"
	"time"

	"kickstreet/internal/data/entity"
	"kickstreet/internal/data/repository"
	"kickstreet/internal/dto/response"

	"go.uber.org/zap"
)

const recentOrdersLimit = 10

type StatsService interface {
	// GetStats aggregates orders for filter, one of all, today, week or month.
	GetStats(ctx context.Context, filter string) (*response.StatsResponse, error)
}

type statsService struct {
	repo  *repository.Repository
	clock Clock
	log   *zap.Logger
}

func NewStatsService(repo *repository.Repository, deps Deps, log *zap.Logger) StatsService {
	return &statsService{
		repo:  repo,
		clock: deps.Clock,
		log:   log.With(zap.String("service", "stats")),
	}
}

// StatsBound is the inclusive lower bound on created_at for filter. The zero time means
// no bound.
func StatsBound(filter string, now time.Time) (time.Time, error) {
	switch filter {
	case "", "all":
		return time.Time{}, nil
	case "today":
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), nil
	case "week":
		return now.AddDate(0, 0, -7), nil
	case "month":
		return now.AddDate(0, -1, 0), nil
	default:
		return time.Time{}, errorf(ErrValidation, "filter must be one of: all, today, week, month")
	}
}

func (s *statsService) GetStats(ctx context.Context, filter string) (*response.StatsResponse, error) {
	since, err := StatsBound(filter, s.clock())
	if err != nil {
		return nil, err
	}
	if filter == "" {
		filter = "all"
	}

	agg, err := s.repo.Stats.Aggregate(ctx, since)
	if err != nil {
		return nil, err
	}

	recent, err := s.repo.Stats.OrdersSince(ctx, time.Time{}, recentOrdersLimit)
	if err != nil {
		return nil, err
	}

	all, err := s.repo.Stats.OrdersSince(ctx, since, 0)
	if err != nil {
		return nil, err
	}

	resp := &response.StatsResponse{
		Filter:           filter,
		TotalRevenue:     agg.Revenue,
		ProductsCount:    agg.ProductsCount,
		PendingOrders:    agg.ByStatus[entity.PaymentStatusPending],
		PaidOrders:       agg.ByStatus[entity.PaymentStatusPaid],
		FailedOrders:     agg.ByStatus[entity.PaymentStatusFailed],
		ProcessingOrders: agg.ByOrderStatus[entity.OrderStatusProcessing],
		ShippedOrders:    agg.ByOrderStatus[entity.OrderStatusShipped],
		DeliveredOrders:  agg.ByOrderStatus[entity.OrderStatusDelivered],
		CancelledOrders:  agg.ByOrderStatus[entity.OrderStatusCancelled],
		ReturnedOrders:   agg.ByOrderStatus[entity.OrderStatusReturned],
		RecentOrders:     response.OrdersToResponse(recent),
		AllOrders:        response.OrdersToResponse(all),
	}
	resp.TotalOrders = resp.PendingOrders + resp.PaidOrders + resp.FailedOrders

	return resp, nil
}
