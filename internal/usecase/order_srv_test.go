package usecase

import (
	"context"
	"testing"

	"kickstreet/internal/data/entity"
	"kickstreet/internal/dto/request"
	"kickstreet/pkg/payment"
	"kickstreet/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placeCOD(t *testing.T, f *fixture, caller *utils.Identity, email string) uuid.UUID {
	t.Helper()
	shoe := f.addProduct("Shoe "+uuid.NewString()[:8], 1000, 5)
	resp, err := f.svc.Checkout.PlaceCOD(context.Background(), caller, &request.CheckoutRequest{
		Items: []request.CartItemRequest{item(shoe, 1, "9")},
		Email: email,
	})
	require.NoError(t, err)
	return mustUUID(t, resp.OrderID)
}

func TestOrder_VerifySession(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Order.VerifySession(ctx, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.Order.VerifySession(ctx, "cs_unknown")
	assert.ErrorIs(t, err, ErrNotFound)

	shoe := f.addProduct("Runner One", 1000, 5)
	f.gateway.event = completedEvent("cs_paid_9")
	f.gateway.lineItems = []payment.LineItem{{ProductID: shoe.ID.String(), Name: shoe.Name, Quantity: 1, UnitAmount: 100000}}
	require.NoError(t, f.svc.Checkout.HandleWebhook(ctx, []byte("{}"), "valid"))

	order, err := f.svc.Order.VerifySession(ctx, "cs_paid_9")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, order.Status)
}

func TestOrder_MyOrdersMatchesAccountOrEmail(t *testing.T) {
	f := newFixture()
	me := utils.Identity{UserID: uuid.New(), Email: "me@example.com", Role: "user"}

	placeCOD(t, f, &me, "")
	placeCOD(t, f, nil, "ME@example.com")
	placeCOD(t, f, nil, "someone@example.com")

	orders, err := f.svc.Order.MyOrders(context.Background(), me)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestOrder_AdminUpdate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := placeCOD(t, f, nil, "guest@example.com")

	shipped := "Shipped"
	tracking := "TRK123"
	order, err := f.svc.Order.Update(ctx, id, &request.UpdateOrderRequest{OrderStatus: &shipped, TrackingID: &tracking})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusShipped, order.OrderStatus)
	assert.Equal(t, "TRK123", order.TrackingID)
	assert.Equal(t, entity.PaymentStatusPending, order.Status)

	_, err = f.svc.Order.Update(ctx, id, &request.UpdateOrderRequest{})
	assert.ErrorIs(t, err, ErrValidation)

	bogus := "Lost"
	_, err = f.svc.Order.Update(ctx, id, &request.UpdateOrderRequest{OrderStatus: &bogus})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.Order.Update(ctx, uuid.New(), &request.UpdateOrderRequest{OrderStatus: &shipped})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrder_ListPaginates(t *testing.T) {
	f := newFixture()
	for i := 0; i < 3; i++ {
		placeCOD(t, f, nil, "guest@example.com")
	}

	page, err := f.svc.Order.List(context.Background(), request.PaginatedRequest{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Pagination.Total)
	assert.Len(t, page.Items, 2)
	assert.True(t, page.Pagination.HasNext)
}
