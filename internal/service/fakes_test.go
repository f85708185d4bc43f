package service

import (
	"context"
	"errors"

	"github.com/rnzluv/ecom/internal/domain"
	"github.com/rnzluv/ecom/internal/events"
	"github.com/rnzluv/ecom/internal/repository"
)

// In-memory stores backing the service tests.

type memCarts struct {
	carts map[string]*domain.Cart
	puts  int
}

func newMemCarts() *memCarts {
	return &memCarts{carts: map[string]*domain.Cart{}}
}

func (m *memCarts) Get(_ context.Context, userID string) (*domain.Cart, error) {
	c, ok := m.carts[userID]
	if !ok {
		return nil, repository.ErrCartNotFound
	}
	cp := *c
	cp.Lines = append([]domain.CartLine(nil), c.Lines...)
	return &cp, nil
}

func (m *memCarts) Put(_ context.Context, cart *domain.Cart) error {
	cp := *cart
	cp.Lines = append([]domain.CartLine(nil), cart.Lines...)
	m.carts[cart.UserID] = &cp
	m.puts++
	return nil
}

type memWishlists struct {
	lists map[string]*domain.Wishlist
}

func newMemWishlists() *memWishlists {
	return &memWishlists{lists: map[string]*domain.Wishlist{}}
}

func (m *memWishlists) Get(_ context.Context, userID string) (*domain.Wishlist, error) {
	w, ok := m.lists[userID]
	if !ok {
		return nil, repository.ErrCartNotFound
	}
	cp := *w
	cp.Lines = append([]domain.WishlistLine(nil), w.Lines...)
	return &cp, nil
}

func (m *memWishlists) Put(_ context.Context, wl *domain.Wishlist) error {
	cp := *wl
	cp.Lines = append([]domain.WishlistLine(nil), wl.Lines...)
	m.lists[wl.UserID] = &cp
	return nil
}

type memProducts struct {
	products map[string]*domain.Product
}

func newMemProducts(products ...*domain.Product) *memProducts {
	m := &memProducts{products: map[string]*domain.Product{}}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *memProducts) Get(_ context.Context, id string) (*domain.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return p, nil
}

func (m *memProducts) List(_ context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out, nil
}

func (m *memProducts) Put(_ context.Context, p *domain.Product) error {
	m.products[p.ID] = p
	return nil
}

func (m *memProducts) Delete(_ context.Context, id string) error {
	if _, ok := m.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

type memUsers struct {
	users map[string]*domain.User
}

func newMemUsers(users ...*domain.User) *memUsers {
	m := &memUsers{users: map[string]*domain.User{}}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *memUsers) Get(_ context.Context, id string) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

type memOrders struct {
	orders    map[string]*domain.Order
	carts     *memCarts
	createErr error
}

func newMemOrders(carts *memCarts) *memOrders {
	return &memOrders{orders: map[string]*domain.Order{}, carts: carts}
}

func (m *memOrders) Create(_ context.Context, order *domain.Order) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.orders[order.ID] = order
	return nil
}

func (m *memOrders) CreateWithCart(ctx context.Context, order *domain.Order, cart *domain.Cart) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.orders[order.ID] = order
	return m.carts.Put(ctx, cart)
}

func (m *memOrders) Get(_ context.Context, id string) (*domain.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *memOrders) Update(_ context.Context, order *domain.Order) error {
	if _, ok := m.orders[order.ID]; !ok {
		return repository.ErrOrderNotFound
	}
	m.orders[order.ID] = order
	return nil
}

func (m *memOrders) Delete(_ context.Context, id string) error {
	if _, ok := m.orders[id]; !ok {
		return repository.ErrOrderNotFound
	}
	delete(m.orders, id)
	return nil
}

func (m *memOrders) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	out := []domain.Order{}
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *memOrders) ListAll(_ context.Context) ([]domain.Order, error) {
	out := []domain.Order{}
	for _, o := range m.orders {
		out = append(out, *o)
	}
	return out, nil
}

type capturedEvents struct {
	created []events.OrderCreatedEvent
	status  []events.OrderStatusChangedEvent
	err     error
}

func (c *capturedEvents) PublishOrderCreated(event events.OrderCreatedEvent) error {
	if c.err != nil {
		return c.err
	}
	c.created = append(c.created, event)
	return nil
}

func (c *capturedEvents) PublishOrderStatusChanged(event events.OrderStatusChangedEvent) error {
	if c.err != nil {
		return c.err
	}
	c.status = append(c.status, event)
	return nil
}

var errForced = errors.New("forced failure")
