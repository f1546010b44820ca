package usecase

import (
	"context"
	"errors"
	"strings"

	"kickstreet/internal/cart"
	"kickstreet/internal/data/entity"
	"kickstreet/internal/data/repository"
	"kickstreet/internal/dto/request"
	"kickstreet/internal/dto/response"
	"kickstreet/pkg/payment"
	"kickstreet/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CheckoutService interface {
	// Quote prices a cart against the catalog without reserving anything.
	Quote(ctx context.Context, req *request.QuoteRequest) (*response.QuoteResponse, error)
	// PlaceCOD books a cash-on-delivery order. Stock is taken and the order written in one
	// transaction, so a failing line leaves every product untouched.
	PlaceCOD(ctx context.Context, caller *utils.Identity, req *request.CheckoutRequest) (*response.CODResponse, error)
	// CreateSession starts a hosted card checkout. No order exists until the provider
	// confirms payment through the webhook.
	CreateSession(ctx context.Context, caller *utils.Identity, req *request.CheckoutRequest) (*response.CheckoutSessionResponse, error)
	// HandleWebhook books the order of a completed card checkout. Redelivery of the same
	// event is a no-op.
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type checkoutService struct {
	repo   *repository.Repository
	config *utils.Config
	deps   Deps
	log    *zap.Logger
}

func NewCheckoutService(repo *repository.Repository, config *utils.Config, deps Deps, log *zap.Logger) CheckoutService {
	return &checkoutService{
		repo:   repo,
		config: config,
		deps:   deps,
		log:    log.With(zap.String("service", "checkout")),
	}
}

// buildCart merges request lines; prices and names are filled in later from the catalog.
func buildCart(items []request.CartItemRequest) (*cart.Cart, error) {
	if len(items) == 0 {
		return nil, errorf(ErrValidation, "no items in cart")
	}

	c := cart.New()
	for _, item := range items {
		id, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, errorf(ErrValidation, "invalid product id %q", item.ProductID)
		}
		if item.Quantity < 1 {
			return nil, errorf(ErrValidation, "quantity must be at least 1")
		}
		c.Add(cart.Line{ProductID: id, Size: item.Size, Quantity: item.Quantity})
	}
	return c, nil
}

func (s *checkoutService) resolveEmail(caller *utils.Identity, fallback string) (string, error) {
	if caller != nil && caller.Email != "" {
		return utils.NormalizeEmail(caller.Email), nil
	}
	email := utils.NormalizeEmail(fallback)
	if email == "" {
		return "", errorf(ErrValidation, "email is required for checkout")
	}
	return email, nil
}

func (s *checkoutService) Quote(ctx context.Context, req *request.QuoteRequest) (*response.QuoteResponse, error) {
	c, err := buildCart(req.Items)
	if err != nil {
		return nil, err
	}

	products, err := s.repo.Product.FindByIDs(ctx, c.ProductIDs())
	if err != nil {
		return nil, err
	}

	priced := cart.New()
	resp := &response.QuoteResponse{Lines: make([]response.QuoteLine, 0, c.Len())}

	for _, line := range c.Lines() {
		p, ok := products[line.ProductID]
		if !ok {
			resp.Missing = append(resp.Missing, line.ProductID.String())
			continue
		}

		line.Name = p.Name
		line.Image = p.CoverImage()
		line.Price = p.Price
		priced.Add(line)

		resp.Lines = append(resp.Lines, response.QuoteLine{
			ProductID: p.ID.String(),
			Name:      p.Name,
			Size:      line.Size,
			Image:     line.Image,
			Quantity:  line.Quantity,
			UnitPrice: p.Price,
			LineTotal: line.Subtotal(),
			Stock:     p.Stock,
			Available: p.Stock >= c.QuantityOf(p.ID),
		})
	}

	resp.Total = priced.Total()
	resp.Count = priced.Count()
	return resp, nil
}

func (s *checkoutService) PlaceCOD(ctx context.Context, caller *utils.Identity, req *request.CheckoutRequest) (*response.CODResponse, error) {
	c, err := buildCart(req.Items)
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}
	email, err := s.resolveEmail(caller, req.Email)
	if err != nil {
		return nil, err
	}

	now := s.deps.Clock()
	order := &entity.Order{
		Base:            entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Email:           email,
		Currency:        s.currency(),
		PaymentMethod:   entity.PaymentMethodCOD,
		Status:          entity.PaymentStatusPending,
		OrderStatus:     entity.OrderStatusProcessing,
		ShippingAddress: req.ShippingAddress.ToEntity(defaultCountry(s.config)),
	}
	if caller != nil && caller.UserID != uuid.Nil {
		uid := caller.UserID
		order.UserID = &uid
	}

	err = s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		total := decimal.Zero
		items := make([]entity.OrderItem, 0, c.Len())

		for _, line := range c.Lines() {
			product, err := tx.Product.FindByID(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return errorf(ErrNotFound, "product %s not found", line.ProductID)
			}
			if product.Stock < line.Quantity {
				return errorf(ErrInsufficientStock, "insufficient stock for %s", product.Name)
			}

			ok, err := tx.Product.DecrementStock(ctx, product.ID, line.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				// another checkout took the units between the read and the update
				return errorf(ErrInsufficientStock, "insufficient stock for %s", product.Name)
			}

			line.Price = product.Price
			total = total.Add(line.Subtotal())

			productID := product.ID
			items = append(items, entity.OrderItem{
				ID:        uuid.New(),
				ProductID: &productID,
				Name:      product.Name,
				Quantity:  line.Quantity,
				Price:     product.Price,
				Size:      line.Size,
				Image:     product.CoverImage(),
			})
		}

		order.Items = items
		order.AmountTotal = total
		return tx.Order.Create(ctx, order)
	})
	if err != nil {
		s.log.Warn("COD checkout failed", zap.Error(err), zap.String("email", email))
		return nil, err
	}

	s.log.Info("COD order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("amount", order.AmountTotal.StringFixed(2)),
	)
	return &response.CODResponse{OrderID: order.ID.String(), AmountTotal: order.AmountTotal}, nil
}

func (s *checkoutService) CreateSession(ctx context.Context, caller *utils.Identity, req *request.CheckoutRequest) (*response.CheckoutSessionResponse, error) {
	c, err := buildCart(req.Items)
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}
	email, err := s.resolveEmail(caller, req.Email)
	if err != nil {
		return nil, err
	}

	products, err := s.repo.Product.FindByIDs(ctx, c.ProductIDs())
	if err != nil {
		return nil, err
	}

	items := make([]payment.LineItem, 0, c.Len())
	for _, line := range c.Lines() {
		p, ok := products[line.ProductID]
		if !ok {
			return nil, errorf(ErrNotFound, "product %s not found", line.ProductID)
		}
		if p.Stock < c.QuantityOf(p.ID) {
			return nil, errorf(ErrInsufficientStock, "insufficient stock for %s", p.Name)
		}

		items = append(items, payment.LineItem{
			ProductID:  p.ID.String(),
			Size:       line.Size,
			Name:       p.Name,
			Image:      p.CoverImage(),
			Quantity:   int64(line.Quantity),
			UnitAmount: toMinorUnits(p.Price),
		})
	}

	sessReq := payment.SessionRequest{
		Email:             email,
		Currency:          s.config.Payment.Currency,
		Items:             items,
		SuccessURL:        s.config.App.BaseURL + "/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:         s.config.App.BaseURL + "/cart",
		ShippingCountries: s.config.Payment.ShippingCountries,
	}
	if caller != nil && caller.UserID != uuid.Nil {
		sessReq.UserID = caller.UserID.String()
	}

	sess, err := s.deps.Payment.CreateCheckoutSession(ctx, sessReq)
	if err != nil {
		return nil, errorf(ErrUpstream, "could not start card payment, please try again")
	}

	return &response.CheckoutSessionResponse{URL: sess.URL, SessionID: sess.ID}, nil
}

func (s *checkoutService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.deps.Payment.ParseWebhook(payload, signature)
	if err != nil {
		if errors.Is(err, payment.ErrInvalidSignature) {
			return errorf(ErrValidation, "webhook signature verification failed")
		}
		return err
	}

	if event.Type != payment.EventCheckoutCompleted || event.Checkout == nil {
		s.log.Debug("Webhook event ignored", zap.String("type", event.Type))
		return nil
	}
	checkout := event.Checkout

	existing, err := s.repo.Order.FindByPaymentSessionID(ctx, checkout.SessionID)
	if err != nil {
		return err
	}
	if existing != nil {
		s.log.Info("Webhook redelivered, order already booked",
			zap.String("session_id", checkout.SessionID),
			zap.String("order_id", existing.ID.String()),
		)
		return nil
	}

	lineItems, err := s.deps.Payment.ListLineItems(ctx, checkout.SessionID)
	if err != nil {
		return errorf(ErrUpstream, "could not read checkout line items")
	}

	order := s.orderFromCheckout(checkout, lineItems)

	var inserted bool
	err = s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		if err := s.dropDeletedProducts(ctx, tx, order); err != nil {
			return err
		}

		var err error
		inserted, err = tx.Order.CreateIfAbsent(ctx, order)
		if err != nil || !inserted {
			return err
		}

		for _, item := range order.Items {
			if item.ProductID == nil {
				continue
			}
			shortfall, err := tx.Product.DecrementStockFloor(ctx, *item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if shortfall > 0 {
				s.log.Warn("Paid order exceeds stock",
					zap.String("order_id", order.ID.String()),
					zap.String("product_id", item.ProductID.String()),
					zap.Int("shortfall", shortfall),
				)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if inserted {
		s.log.Info("Card order booked",
			zap.String("order_id", order.ID.String()),
			zap.String("session_id", checkout.SessionID),
			zap.String("amount", order.AmountTotal.StringFixed(2)),
		)
	}
	return nil
}

// dropDeletedProducts unlinks items whose product no longer exists. The item keeps its
// name, price and image snapshot.
func (s *checkoutService) dropDeletedProducts(ctx context.Context, tx *repository.Repository, order *entity.Order) error {
	ids := make([]uuid.UUID, 0, len(order.Items))
	for _, item := range order.Items {
		if item.ProductID != nil {
			ids = append(ids, *item.ProductID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	products, err := tx.Product.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}

	for i := range order.Items {
		pid := order.Items[i].ProductID
		if pid == nil {
			continue
		}
		if _, ok := products[*pid]; !ok {
			s.log.Warn("Paid item references a deleted product",
				zap.String("order_id", order.ID.String()),
				zap.String("product_id", pid.String()),
			)
			order.Items[i].ProductID = nil
		}
	}
	return nil
}

func (s *checkoutService) orderFromCheckout(checkout *payment.CompletedCheckout, lineItems []payment.LineItem) *entity.Order {
	now := s.deps.Clock()
	sessionID := checkout.SessionID

	currency := strings.ToUpper(checkout.Currency)
	if currency == "" {
		currency = s.currency()
	}

	order := &entity.Order{
		Base:             entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Email:            utils.NormalizeEmail(checkout.Email),
		AmountTotal:      fromMinorUnits(checkout.AmountTotal),
		Currency:         currency,
		PaymentMethod:    entity.PaymentMethodStripe,
		Status:           entity.PaymentStatusPaid,
		PaymentSessionID: &sessionID,
		OrderStatus:      entity.OrderStatusProcessing,
		ShippingAddress: entity.Address{
			Line1:      checkout.Shipping.Line1,
			City:       checkout.Shipping.City,
			State:      checkout.Shipping.State,
			PostalCode: checkout.Shipping.PostalCode,
			Country:    checkout.Shipping.Country,
			Phone:      checkout.Shipping.Phone,
		},
		Items: make([]entity.OrderItem, 0, len(lineItems)),
	}
	if uid, err := uuid.Parse(checkout.UserID); err == nil {
		order.UserID = &uid
	}

	for _, li := range lineItems {
		size := li.Size
		if size == "" {
			size = "N/A"
		}
		item := entity.OrderItem{
			ID:       uuid.New(),
			Name:     li.Name,
			Quantity: int(li.Quantity),
			Price:    fromMinorUnits(li.UnitAmount),
			Size:     size,
			Image:    li.Image,
		}
		if pid, err := uuid.Parse(li.ProductID); err == nil {
			item.ProductID = &pid
		}
		order.Items = append(order.Items, item)
	}

	return order
}

func (s *checkoutService) currency() string {
	if s.config.Payment.Currency == "" {
		return "INR"
	}
	return strings.ToUpper(s.config.Payment.Currency)
}

var hundred = decimal.NewFromInt(100)

func toMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

func fromMinorUnits(amount int64) decimal.Decimal {
	return decimal.New(amount, -2)
}
