package repository

import (
	"context"
	"fmt"
	"time"

	"kickstreet/internal/data/entity"
	"kickstreet/pkg/database"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderAggregate holds the figures of the admin dashboard for one time window.
type OrderAggregate struct {
	Revenue       decimal.Decimal
	ByStatus      map[entity.PaymentStatus]int64
	ByOrderStatus map[entity.OrderStatus]int64
	ProductsCount int64
}

type StatsRepository interface {
	// Aggregate counts orders created at or after since. A zero since means no bound.
	Aggregate(ctx context.Context, since time.Time) (*OrderAggregate, error)
	// OrdersSince lists orders newest first; limit <= 0 returns all of them.
	OrdersSince(ctx context.Context, since time.Time, limit int) ([]*entity.Order, error)
}

type statsRepository struct {
	db     database.Querier
	orders *orderRepository
	log    *zap.Logger
}

func NewStatsRepository(db database.Querier, log *zap.Logger) StatsRepository {
	return &statsRepository{
		db:     db,
		orders: &orderRepository{db: db, log: log.With(zap.String("repository", "order"))},
		log:    log.With(zap.String("repository", "stats")),
	}
}

func (r *statsRepository) Aggregate(ctx context.Context, since time.Time) (*OrderAggregate, error) {
	agg := &OrderAggregate{
		Revenue:       decimal.Zero,
		ByStatus:      make(map[entity.PaymentStatus]int64),
		ByOrderStatus: make(map[entity.OrderStatus]int64),
	}

	revenueQuery := `
		SELECT COALESCE(SUM(amount_total), 0)
		FROM orders
		WHERE status = 'Paid' AND created_at >= $1
	`
	if err := r.db.QueryRow(ctx, revenueQuery, since).Scan(&agg.Revenue); err != nil {
		r.log.Error("Failed to sum revenue", zap.Error(err), zap.Time("since", since))
		return nil, fmt.Errorf("sum revenue: %w", err)
	}

	if err := r.countBy(ctx, "status", since, func(key string, n int64) {
		agg.ByStatus[entity.PaymentStatus(key)] = n
	}); err != nil {
		return nil, err
	}

	if err := r.countBy(ctx, "order_status", since, func(key string, n int64) {
		agg.ByOrderStatus[entity.OrderStatus(key)] = n
	}); err != nil {
		return nil, err
	}

	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&agg.ProductsCount); err != nil {
		r.log.Error("Failed to count products", zap.Error(err))
		return nil, fmt.Errorf("count products: %w", err)
	}

	return agg, nil
}

// countBy groups orders by column, which is one of the two status columns and never user input.
func (r *statsRepository) countBy(ctx context.Context, column string, since time.Time, fn func(string, int64)) error {
	query := fmt.Sprintf(`SELECT %s, COUNT(*) FROM orders WHERE created_at >= $1 GROUP BY %s`, column, column)

	rows, err := r.db.Query(ctx, query, since)
	if err != nil {
		r.log.Error("Failed to count orders", zap.Error(err), zap.String("column", column))
		return fmt.Errorf("count orders by %s: %w", column, err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var n int64
		if err := rows.Scan(&key, &n); err != nil {
			return fmt.Errorf("scan %s count: %w", column, err)
		}
		fn(key, n)
	}
	return rows.Err()
}

func (r *statsRepository) OrdersSince(ctx context.Context, since time.Time, limit int) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE created_at >= $1 ORDER BY created_at DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	orders, err := r.orders.queryOrders(ctx, query, since)
	if err != nil {
		r.log.Error("Failed to list orders since", zap.Error(err), zap.Time("since", since))
		return nil, fmt.Errorf("orders since %s: %w", since.Format(time.RFC3339), err)
	}
	return orders, nil
}
