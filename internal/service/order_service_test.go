package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rnzluv/ecom/internal/domain"
	"github.com/rnzluv/ecom/internal/repository"
)

var (
	buyer = domain.User{ID: "u1", Name: "Juan", Email: "juan@example.com", Role: "customer"}
	admin = domain.User{ID: "a1", Name: "Admin", Email: "admin@example.com", Role: "admin"}
)

func validAddress() domain.ShippingAddress {
	return domain.ShippingAddress{
		FullName:   "Juan dela Cruz",
		Phone:      "09171234567",
		Address:    "123 Mabini St",
		City:       "Quezon City",
		PostalCode: "1100",
	}
}

type orderFixture struct {
	svc    *OrderService
	orders *memOrders
	carts  *memCarts
	events *capturedEvents
}

func newOrderFixture(products ...*domain.Product) *orderFixture {
	carts := newMemCarts()
	orders := newMemOrders(carts)
	captured := &capturedEvents{}
	users := newMemUsers(&buyer, &admin)
	svc := NewOrderService(orders, carts, newMemProducts(products...), users, captured, zap.NewNop())
	return &orderFixture{svc: svc, orders: orders, carts: carts, events: captured}
}

func TestCreateOrderSnapshotsLines(t *testing.T) {
	f := newOrderFixture(productA())

	req := domain.CreateOrderRequest{
		Items:           []domain.OrderItemInput{{ProductID: "prod-a", Quantity: 2, Price: 500}},
		ShippingAddress: validAddress(),
		PaymentMethod:   "cod",
		TotalAmount:     1000,
	}

	order, err := f.svc.Create(context.Background(), buyer, req, "req-1")
	require.NoError(t, err)

	assert.Equal(t, "u1", order.UserID)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, domain.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, 1000.0, order.TotalAmount)
	require.Len(t, order.Items, 1)
	assert.Equal(t, domain.OrderItem{ProductID: "prod-a", Quantity: 2, Price: 500}, order.Items[0])
	assert.Equal(t, "juan@example.com", order.CustomerEmail)
	assert.Nil(t, order.DeliveredAt)

	// persisted and announced
	assert.Contains(t, f.orders.orders, order.ID)
	require.Len(t, f.events.created, 1)
	assert.Equal(t, order.ID, f.events.created[0].OrderID)
}

func TestCreateOrderRecomputedTotalMustMatch(t *testing.T) {
	f := newOrderFixture(productA())

	req := domain.CreateOrderRequest{
		Items:           []domain.OrderItemInput{{ProductID: "prod-a", Quantity: 2, Price: 500}},
		ShippingAddress: validAddress(),
		PaymentMethod:   "cod",
		TotalAmount:     1, // claimed total is wrong
	}

	_, err := f.svc.Create(context.Background(), buyer, req, "req-1")
	assert.ErrorIs(t, err, ErrTotalMismatch)
	assert.Empty(t, f.orders.orders)
}

func TestCreateOrderEmptyItems(t *testing.T) {
	f := newOrderFixture()

	req := domain.CreateOrderRequest{
		ShippingAddress: validAddress(),
		PaymentMethod:   "cod",
	}
	_, err := f.svc.Create(context.Background(), buyer, req, "req-1")
	assert.ErrorIs(t, err, ErrEmptyItems)
}

func TestCreateOrderMissingCityReportsField(t *testing.T) {
	f := newOrderFixture(productA())

	addr := validAddress()
	addr.City = "  "
	req := domain.CreateOrderRequest{
		Items:           []domain.OrderItemInput{{ProductID: "prod-a", Quantity: 1, Price: 500}},
		ShippingAddress: addr,
		PaymentMethod:   "cod",
		TotalAmount:     500,
	}

	_, err := f.svc.Create(context.Background(), buyer, req, "req-1")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "city")
	assert.Empty(t, f.orders.orders)
}

func TestCreateOrderBadEmail(t *testing.T) {
	f := newOrderFixture(productA())

	req := domain.CreateOrderRequest{
		Items:           []domain.OrderItemInput{{ProductID: "prod-a", Quantity: 1, Price: 500}},
		ShippingAddress: validAddress(),
		PaymentMethod:   "cod",
		TotalAmount:     500,
		CustomerEmail:   "not-an-email",
	}

	_, err := f.svc.Create(context.Background(), buyer, req, "req-1")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "customerEmail")
}

func TestCheckoutSnapshotsPricesAndReconcilesCart(t *testing.T) {
	prodB := &domain.Product{ID: "prod-b", Name: "Walis", Price: 120}
	f := newOrderFixture(productA(), prodB)
	ctx := context.Background()

	require.NoError(t, f.carts.Put(ctx, &domain.Cart{
		UserID: "u1",
		Lines: []domain.CartLine{
			{ProductID: "prod-a", Quantity: 2},
			{ProductID: "prod-b", Quantity: 1},
		},
	}))

	req := domain.CheckoutRequest{
		SelectedProducts: []string{"prod-a"},
		ShippingAddress:  validAddress(),
		PaymentMethod:    "gcash",
	}

	order, err := f.svc.Checkout(ctx, buyer, req, "req-1")
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.Equal(t, domain.OrderItem{ProductID: "prod-a", Quantity: 2, Price: 500}, order.Items[0])
	assert.Equal(t, 1000.0, order.TotalAmount)
	assert.Equal(t, domain.OrderStatusPending, order.Status)

	// the selected line left the cart in the same commit
	cart := f.carts.carts["u1"]
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "prod-b", cart.Lines[0].ProductID)
}

func TestCheckoutWholeCartLeavesItEmpty(t *testing.T) {
	f := newOrderFixture(productA())
	ctx := context.Background()

	require.NoError(t, f.carts.Put(ctx, &domain.Cart{
		UserID: "u1",
		Lines:  []domain.CartLine{{ProductID: "prod-a", Quantity: 2}},
	}))

	req := domain.CheckoutRequest{
		SelectedProducts: []string{"prod-a"},
		ShippingAddress:  validAddress(),
		PaymentMethod:    "cod",
	}

	order, err := f.svc.Checkout(ctx, buyer, req, "req-1")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, order.TotalAmount)
	assert.Empty(t, f.carts.carts["u1"].Lines)
}

func TestCheckoutSelectionNotInCart(t *testing.T) {
	f := newOrderFixture(productA())
	ctx := context.Background()

	require.NoError(t, f.carts.Put(ctx, &domain.Cart{
		UserID: "u1",
		Lines:  []domain.CartLine{{ProductID: "prod-a", Quantity: 1}},
	}))

	req := domain.CheckoutRequest{
		SelectedProducts: []string{"prod-z"},
		ShippingAddress:  validAddress(),
		PaymentMethod:    "cod",
	}

	_, err := f.svc.Checkout(ctx, buyer, req, "req-1")
	assert.ErrorIs(t, err, ErrNotInCart)
	assert.Empty(t, f.orders.orders)
}

func TestCheckoutFailureLeavesCartIntact(t *testing.T) {
	f := newOrderFixture(productA())
	ctx := context.Background()

	require.NoError(t, f.carts.Put(ctx, &domain.Cart{
		UserID: "u1",
		Lines:  []domain.CartLine{{ProductID: "prod-a", Quantity: 2}},
	}))
	f.orders.createErr = errForced

	req := domain.CheckoutRequest{
		SelectedProducts: []string{"prod-a"},
		ShippingAddress:  validAddress(),
		PaymentMethod:    "cod",
	}

	_, err := f.svc.Checkout(ctx, buyer, req, "req-1")
	require.Error(t, err)
	require.Len(t, f.carts.carts["u1"].Lines, 1)
	assert.Empty(t, f.events.created)
}

func createTestOrder(t *testing.T, f *orderFixture) *domain.Order {
	t.Helper()
	req := domain.CreateOrderRequest{
		Items:           []domain.OrderItemInput{{ProductID: "prod-a", Quantity: 2, Price: 500}},
		ShippingAddress: validAddress(),
		PaymentMethod:   "cod",
		TotalAmount:     1000,
	}
	order, err := f.svc.Create(context.Background(), buyer, req, "req-1")
	require.NoError(t, err)
	return order
}

func TestSetStatusDeliveredStampsTimestamp(t *testing.T) {
	f := newOrderFixture(productA())
	order := createTestOrder(t, f)
	ctx := context.Background()

	for _, status := range []string{"processing", "shipped"} {
		updated, err := f.svc.SetStatus(ctx, order.ID, status, "req-2")
		require.NoError(t, err)
		assert.Nil(t, updated.DeliveredAt)
	}

	updated, err := f.svc.SetStatus(ctx, order.ID, "delivered", "req-2")
	require.NoError(t, err)
	require.NotNil(t, updated.DeliveredAt)
	assert.WithinDuration(t, time.Now(), *updated.DeliveredAt, time.Minute)
}

func TestSetStatusRejectsUnknownValue(t *testing.T) {
	f := newOrderFixture(productA())
	order := createTestOrder(t, f)

	_, err := f.svc.SetStatus(context.Background(), order.ID, "teleported", "req-2")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestSetStatusRejectsIllegalTransition(t *testing.T) {
	f := newOrderFixture(productA())
	order := createTestOrder(t, f)
	ctx := context.Background()

	// pending cannot jump straight to delivered
	_, err := f.svc.SetStatus(ctx, order.ID, "delivered", "req-2")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// delivered is terminal
	for _, status := range []string{"processing", "shipped", "delivered"} {
		_, err = f.svc.SetStatus(ctx, order.ID, status, "req-2")
		require.NoError(t, err)
	}
	_, err = f.svc.SetStatus(ctx, order.ID, "cancelled", "req-2")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSetStatusUnknownOrder(t *testing.T) {
	f := newOrderFixture()

	_, err := f.svc.SetStatus(context.Background(), "missing", "processing", "req-2")
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}

func TestGetByIDEnforcesOwnership(t *testing.T) {
	f := newOrderFixture(productA())
	order := createTestOrder(t, f)
	ctx := context.Background()

	_, err := f.svc.GetByID(ctx, buyer, order.ID)
	assert.NoError(t, err)

	_, err = f.svc.GetByID(ctx, admin, order.ID)
	assert.NoError(t, err)

	stranger := domain.User{ID: "u2", Role: "customer"}
	_, err = f.svc.GetByID(ctx, stranger, order.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGetByIDResolvesUserAndProducts(t *testing.T) {
	f := newOrderFixture(productA())
	order := createTestOrder(t, f)

	view, err := f.svc.GetByID(context.Background(), buyer, order.ID)
	require.NoError(t, err)

	require.NotNil(t, view.User)
	assert.Equal(t, "Juan", view.User.Name)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "Tsinelas", view.Items[0].Product.Name)
}

func TestStoredTotalMatchesRecomputedLines(t *testing.T) {
	f := newOrderFixture(productA())
	order := createTestOrder(t, f)

	var sum float64
	for _, item := range order.Items {
		sum += float64(item.Quantity) * item.Price
	}
	assert.Equal(t, order.TotalAmount, sum)
}

func TestDeleteOrder(t *testing.T) {
	f := newOrderFixture(productA())
	order := createTestOrder(t, f)
	ctx := context.Background()

	require.NoError(t, f.svc.Delete(ctx, order.ID))
	assert.ErrorIs(t, f.svc.Delete(ctx, order.ID), repository.ErrOrderNotFound)
}
