package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodStripe PaymentMethod = "stripe"
	PaymentMethodCOD    PaymentMethod = "cod"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusFailed  PaymentStatus = "Failed"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed:
		return true
	}
	return false
}

type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
	OrderStatusReturned   OrderStatus = "Returned"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled, OrderStatusReturned:
		return true
	}
	return false
}

type Order struct {
	Base
	UserID           *uuid.UUID      `db:"user_id"`
	Email            string          `db:"email"`
	Items            []OrderItem     `db:"-"`
	AmountTotal      decimal.Decimal `db:"amount_total"`
	Currency         string          `db:"currency"`
	PaymentMethod    PaymentMethod   `db:"payment_method"`
	Status           PaymentStatus   `db:"status"`
	PaymentSessionID *string         `db:"payment_session_id"`
	OrderStatus      OrderStatus     `db:"order_status"`
	ShippingAddress  Address
	TrackingID       string `db:"tracking_id"`
}

// OrderItem is a snapshot of the product at purchase time. It is written once with the
// order and never updated.
type OrderItem struct {
	ID        uuid.UUID       `db:"id"`
	OrderID   uuid.UUID       `db:"order_id"`
	ProductID *uuid.UUID      `db:"product_id"`
	Name      string          `db:"name"`
	Quantity  int             `db:"quantity"`
	Price     decimal.Decimal `db:"price"`
	Size      string          `db:"size"`
	Image     string          `db:"image"`
}
