package response

import (
	"time"

	"kickstreet/internal/data/entity"

	"github.com/shopspring/decimal"
)

type OrderItemResponse struct {
	ProductID *string         `json:"product_id,omitempty"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Size      string          `json:"size"`
	Image     string          `json:"image"`
}

type OrderResponse struct {
	ID               string               `json:"id"`
	UserID           *string              `json:"user_id,omitempty"`
	Email            string               `json:"email"`
	Items            []OrderItemResponse  `json:"items"`
	AmountTotal      decimal.Decimal      `json:"amount_total"`
	Currency         string               `json:"currency"`
	PaymentMethod    entity.PaymentMethod `json:"payment_method"`
	Status           entity.PaymentStatus `json:"status"`
	PaymentSessionID *string              `json:"payment_session_id,omitempty"`
	OrderStatus      entity.OrderStatus   `json:"order_status"`
	ShippingAddress  entity.Address       `json:"shipping_address"`
	TrackingID       string               `json:"tracking_id"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

func OrderToResponse(o *entity.Order) OrderResponse {
	resp := OrderResponse{
		ID:               o.ID.String(),
		Email:            o.Email,
		Items:            make([]OrderItemResponse, 0, len(o.Items)),
		AmountTotal:      o.AmountTotal,
		Currency:         o.Currency,
		PaymentMethod:    o.PaymentMethod,
		Status:           o.Status,
		PaymentSessionID: o.PaymentSessionID,
		OrderStatus:      o.OrderStatus,
		ShippingAddress:  o.ShippingAddress,
		TrackingID:       o.TrackingID,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}

	if o.UserID != nil {
		id := o.UserID.String()
		resp.UserID = &id
	}

	for _, item := range o.Items {
		ir := OrderItemResponse{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
			Size:     item.Size,
			Image:    item.Image,
		}
		if item.ProductID != nil {
			id := item.ProductID.String()
			ir.ProductID = &id
		}
		resp.Items = append(resp.Items, ir)
	}

	return resp
}

func OrdersToResponse(orders []*entity.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, OrderToResponse(o))
	}
	return out
}

type CODResponse struct {
	OrderID     string          `json:"order_id"`
	AmountTotal decimal.Decimal `json:"amount_total"`
}

type CheckoutSessionResponse struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

type QuoteLine struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Size      string          `json:"size"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
	Stock     int             `json:"stock"`
	Available bool            `json:"available"`
}

type QuoteResponse struct {
	Lines   []QuoteLine     `json:"lines"`
	Missing []string        `json:"missing,omitempty"`
	Total   decimal.Decimal `json:"total"`
	Count   int             `json:"count"`
}

type StatsResponse struct {
	Filter           string          `json:"filter"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TotalOrders      int64           `json:"total_orders"`
	ProductsCount    int64           `json:"products_count"`
	PendingOrders    int64           `json:"pending_orders"`
	PaidOrders       int64           `json:"paid_orders"`
	FailedOrders     int64           `json:"failed_orders"`
	ProcessingOrders int64           `json:"processing_orders"`
	ShippedOrders    int64           `json:"shipped_orders"`
	DeliveredOrders  int64           `json:"delivered_orders"`
	CancelledOrders  int64           `json:"cancelled_orders"`
	ReturnedOrders   int64           `json:"returned_orders"`
	RecentOrders     []OrderResponse `json:"recent_orders"`
	AllOrders        []OrderResponse `json:"all_orders"`
}
