package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"kickstreet/pkg/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

const (
	metaProductID = "productId"
	metaSize      = "size"
	metaEmail     = "email"
	metaUserID    = "userId"
)

type StripeGateway struct {
	api           *client.API
	webhookSecret string
	log           *zap.Logger
}

func NewStripeGateway(cfg utils.PaymentConfig, log *zap.Logger) *StripeGateway {
	return &StripeGateway{
		api:           client.New(cfg.SecretKey, nil),
		webhookSecret: cfg.WebhookSecret,
		log:           log.With(zap.String("component", "payment")),
	}
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req SessionRequest) (*Session, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.Items))
	for _, item := range req.Items {
		product := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(fmt.Sprintf("%s (Size: UK %s)", item.Name, item.Size)),
			Metadata: map[string]string{
				metaProductID: item.ProductID,
				metaSize:      item.Size,
			},
		}
		if item.Image != "" {
			product.Images = stripe.StringSlice([]string{item.Image})
		}

		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(item.Quantity),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(req.Currency),
				UnitAmount:  stripe.Int64(item.UnitAmount),
				ProductData: product,
			},
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		SuccessURL:         stripe.String(req.SuccessURL),
		CancelURL:          stripe.String(req.CancelURL),
		CustomerEmail:      stripe.String(req.Email),
	}
	if len(req.ShippingCountries) > 0 {
		params.ShippingAddressCollection = &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice(req.ShippingCountries),
		}
	}
	params.AddMetadata(metaEmail, req.Email)
	if req.UserID != "" {
		params.AddMetadata(metaUserID, req.UserID)
	}
	params.Context = ctx

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		g.log.Error("Failed to create checkout session", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("%w: create checkout session: %v", ErrProvider, err)
	}

	g.log.Info("Checkout session created", zap.String("session_id", sess.ID), zap.Int("items", len(lineItems)))
	return &Session{ID: sess.ID, URL: sess.URL}, nil
}

// ParseWebhook verifies the signature header and decodes the event. Only completed
// checkouts carry a decoded payload.
func (g *StripeGateway) ParseWebhook(payload []byte, signature string) (*Event, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		g.log.Warn("Webhook signature rejected", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	out := &Event{ID: event.ID, Type: string(event.Type)}
	if out.Type != EventCheckoutCompleted {
		return out, nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return nil, fmt.Errorf("decode checkout session: %w", err)
	}

	checkout := &CompletedCheckout{
		SessionID:   sess.ID,
		Email:       sess.CustomerEmail,
		AmountTotal: sess.AmountTotal,
		Currency:    string(sess.Currency),
		UserID:      sess.Metadata[metaUserID],
	}
	if sess.CustomerDetails != nil {
		if sess.CustomerDetails.Email != "" {
			checkout.Email = sess.CustomerDetails.Email
		}
		checkout.Shipping.Phone = sess.CustomerDetails.Phone
	}
	if checkout.Email == "" {
		checkout.Email = sess.Metadata[metaEmail]
	}
	if sess.ShippingDetails != nil && sess.ShippingDetails.Address != nil {
		addr := sess.ShippingDetails.Address
		checkout.Shipping.Line1 = addr.Line1
		checkout.Shipping.City = addr.City
		checkout.Shipping.State = addr.State
		checkout.Shipping.PostalCode = addr.PostalCode
		checkout.Shipping.Country = addr.Country
	}
	out.Checkout = checkout

	return out, nil
}

// ListLineItems re-reads the purchased lines from the provider, product metadata included.
func (g *StripeGateway) ListLineItems(ctx context.Context, sessionID string) ([]LineItem, error) {
	params := &stripe.CheckoutSessionListLineItemsParams{
		Session: stripe.String(sessionID),
	}
	params.AddExpand("data.price.product")
	params.Context = ctx

	var items []LineItem
	iter := g.api.CheckoutSessions.ListLineItems(params)
	for iter.Next() {
		li := iter.LineItem()

		item := LineItem{
			Name:     li.Description,
			Quantity: li.Quantity,
		}
		if li.Quantity > 0 {
			item.UnitAmount = li.AmountTotal / li.Quantity
		}
		if li.Price != nil && li.Price.Product != nil {
			product := li.Price.Product
			item.ProductID = product.Metadata[metaProductID]
			item.Size = product.Metadata[metaSize]
			if len(product.Images) > 0 {
				item.Image = product.Images[0]
			}
		}
		items = append(items, item)
	}

	if err := iter.Err(); err != nil {
		g.log.Error("Failed to list line items", zap.Error(err), zap.String("session_id", sessionID))
		return nil, fmt.Errorf("%w: list line items: %v", ErrProvider, err)
	}
	return items, nil
}
