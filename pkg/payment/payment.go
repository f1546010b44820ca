// Package payment wraps the hosted checkout of the card payment provider.
package payment

import (
	"context"
	"errors"
)

var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrProvider         = errors.New("payment provider error")
)

const EventCheckoutCompleted = "checkout.session.completed"

// LineItem is one purchasable line. UnitAmount is in minor units (paise, cents).
type LineItem struct {
	ProductID  string
	Size       string
	Name       string
	Image      string
	Quantity   int64
	UnitAmount int64
}

type SessionRequest struct {
	Email             string
	UserID            string
	Currency          string
	Items             []LineItem
	SuccessURL        string
	CancelURL         string
	ShippingCountries []string
}

type Session struct {
	ID  string
	URL string
}

type Address struct {
	Line1      string
	City       string
	State      string
	PostalCode string
	Country    string
	Phone      string
}

// CompletedCheckout is the part of a completed session needed to book the order.
type CompletedCheckout struct {
	SessionID   string
	Email       string
	UserID      string
	AmountTotal int64
	Currency    string
	Shipping    Address
}

type Event struct {
	ID       string
	Type     string
	Checkout *CompletedCheckout
}

// Gateway is implemented by StripeGateway.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req SessionRequest) (*Session, error)
	ParseWebhook(payload []byte, signature string) (*Event, error)
	ListLineItems(ctx context.Context, sessionID string) ([]LineItem, error)
}
