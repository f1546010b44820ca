package repository

import (
	"context"
	"errors"
	"fmt"

	"kickstreet/internal/data/entity"
	"kickstreet/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	// CreateIfAbsent inserts the order unless one already carries its payment session id.
	CreateIfAbsent(ctx context.Context, order *entity.Order) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	FindByPaymentSessionID(ctx context.Context, sessionID string) (*entity.Order, error)
	FindByCustomer(ctx context.Context, userID uuid.UUID, email string) ([]*entity.Order, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Order, error)
	CountAll(ctx context.Context) (int64, error)
	UpdateStatus(ctx context.Context, order *entity.Order) error
}

type orderRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewOrderRepository(db database.Querier, log *zap.Logger) OrderRepository {
	return &orderRepository{
		db:  db,
		log: log.With(zap.String("repository", "order")),
	}
}

const orderColumns = `
	id, user_id, email, amount_total, currency, payment_method, status,
	payment_session_id, order_status, ship_line1, ship_city, ship_state,
	ship_postal, ship_country, ship_phone, tracking_id, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.Email,
		&o.AmountTotal,
		&o.Currency,
		&o.PaymentMethod,
		&o.Status,
		&o.PaymentSessionID,
		&o.OrderStatus,
		&o.ShippingAddress.Line1,
		&o.ShippingAddress.City,
		&o.ShippingAddress.State,
		&o.ShippingAddress.PostalCode,
		&o.ShippingAddress.Country,
		&o.ShippingAddress.Phone,
		&o.TrackingID,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

const insertOrder = `
	INSERT INTO orders (id, user_id, email, amount_total, currency, payment_method,
	                    status, payment_session_id, order_status, ship_line1, ship_city,
	                    ship_state, ship_postal, ship_country, ship_phone, tracking_id,
	                    created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
`

func orderArgs(o *entity.Order) []any {
	return []any{
		o.ID,
		o.UserID,
		o.Email,
		o.AmountTotal,
		o.Currency,
		o.PaymentMethod,
		o.Status,
		o.PaymentSessionID,
		o.OrderStatus,
		o.ShippingAddress.Line1,
		o.ShippingAddress.City,
		o.ShippingAddress.State,
		o.ShippingAddress.PostalCode,
		o.ShippingAddress.Country,
		o.ShippingAddress.Phone,
		o.TrackingID,
		o.CreatedAt,
		o.UpdatedAt,
	}
}

// Create writes the order and its items. Callers wrap it in a transaction when the
// items must land atomically with other writes.
func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	if _, err := r.db.Exec(ctx, insertOrder, orderArgs(order)...); err != nil {
		r.log.Error("Failed to create order", zap.Error(err), zap.String("email", order.Email))
		return wrapDuplicate(err, "create order %s", order.ID.String())
	}

	if err := r.insertItems(ctx, order); err != nil {
		return err
	}

	r.log.Info("Order created",
		zap.String("id", order.ID.String()),
		zap.String("payment_method", string(order.PaymentMethod)),
		zap.String("amount", order.AmountTotal.StringFixed(2)),
	)
	return nil
}

func (r *orderRepository) CreateIfAbsent(ctx context.Context, order *entity.Order) (bool, error) {
	result, err := r.db.Exec(ctx, insertOrder+` ON CONFLICT (payment_session_id) DO NOTHING`, orderArgs(order)...)
	if err != nil {
		r.log.Error("Failed to create order", zap.Error(err), zap.String("email", order.Email))
		return false, fmt.Errorf("create order %s: %w", order.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return false, nil
	}

	if err := r.insertItems(ctx, order); err != nil {
		return false, err
	}
	return true, nil
}

func (r *orderRepository) insertItems(ctx context.Context, order *entity.Order) error {
	query := `
		INSERT INTO order_items (id, order_id, product_id, name, quantity, price, size, image, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	for i := range order.Items {
		item := &order.Items[i]
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.OrderID = order.ID

		_, err := r.db.Exec(ctx, query,
			item.ID,
			item.OrderID,
			item.ProductID,
			item.Name,
			item.Quantity,
			item.Price,
			item.Size,
			item.Image,
			i,
		)
		if err != nil {
			r.log.Error("Failed to create order item",
				zap.Error(err),
				zap.String("order_id", order.ID.String()),
				zap.String("name", item.Name),
			)
			return fmt.Errorf("create order item %s: %w", item.Name, err)
		}
	}
	return nil
}

func (r *orderRepository) findOne(ctx context.Context, where string, arg any) (*entity.Order, error) {
	order, err := scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE `+where, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, []*entity.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := r.findOne(ctx, `id = $1`, id)
	if err != nil {
		r.log.Error("Failed to find order", zap.Error(err), zap.String("id", id.String()))
		return nil, fmt.Errorf("find order %s: %w", id.String(), err)
	}
	return order, nil
}

func (r *orderRepository) FindByPaymentSessionID(ctx context.Context, sessionID string) (*entity.Order, error) {
	order, err := r.findOne(ctx, `payment_session_id = $1`, sessionID)
	if err != nil {
		r.log.Error("Failed to find order by session", zap.Error(err), zap.String("session_id", sessionID))
		return nil, fmt.Errorf("find order by session %s: %w", sessionID, err)
	}
	return order, nil
}

// FindByCustomer returns orders placed by the user or, for guest checkouts, under their email.
func (r *orderRepository) FindByCustomer(ctx context.Context, userID uuid.UUID, email string) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE user_id = $1 OR lower(email) = lower($2)
		ORDER BY created_at DESC`

	orders, err := r.queryOrders(ctx, query, userID, email)
	if err != nil {
		r.log.Error("Failed to list customer orders", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find orders of user %s: %w", userID.String(), err)
	}
	return orders, nil
}

func (r *orderRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	orders, err := r.queryOrders(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list orders", zap.Error(err))
		return nil, fmt.Errorf("find all orders: %w", err)
	}
	return orders, nil
}

func (r *orderRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count); err != nil {
		r.log.Error("Failed to count orders", zap.Error(err))
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return count, nil
}

func (r *orderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	orders := make([]*entity.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, o)
	}
	rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	if err := r.loadItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// loadItems fills Items for every order with a single query.
func (r *orderRepository) loadItems(ctx context.Context, orders []*entity.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(orders))
	byID := make(map[uuid.UUID]*entity.Order, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		byID[o.ID] = o
		o.Items = make([]entity.OrderItem, 0)
	}

	query := `
		SELECT id, order_id, product_id, name, quantity, price, size, image
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, position
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item entity.OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Name,
			&item.Quantity,
			&item.Price,
			&item.Size,
			&item.Image,
		); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		if o, ok := byID[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}

	return rows.Err()
}

// UpdateStatus writes the admin-editable fields: payment status, fulfilment status and tracking id.
func (r *orderRepository) UpdateStatus(ctx context.Context, order *entity.Order) error {
	query := `
		UPDATE orders
		SET status = $2, order_status = $3, tracking_id = $4, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, order.ID, order.Status, order.OrderStatus, order.TrackingID)
	if err != nil {
		r.log.Error("Failed to update order", zap.Error(err), zap.String("id", order.ID.String()))
		return fmt.Errorf("update order %s: %w", order.ID.String(), err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("order %s not found", order.ID.String())
	}
	return nil
}
