package request

type CartItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1,max=100"`
	Size      string `json:"size" validate:"required,max=20"`
}

type QuoteRequest struct {
	Items []CartItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CheckoutRequest is shared by both payment branches. Email may be omitted when the
// caller is signed in.
type CheckoutRequest struct {
	Items           []CartItemRequest `json:"items" validate:"required,min=1,dive"`
	Email           string            `json:"email,omitempty" validate:"omitempty,email"`
	ShippingAddress *AddressRequest   `json:"shipping_address,omitempty"`
}

type UpdateOrderRequest struct {
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=Pending Paid Failed"`
	OrderStatus *string `json:"order_status,omitempty" validate:"omitempty,oneof=Processing Shipped Delivered Cancelled Returned"`
	TrackingID  *string `json:"tracking_id,omitempty" validate:"omitempty,max=100"`
}

type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}
