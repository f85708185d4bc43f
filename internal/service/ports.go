package service

import (
	"context"

	"github.com/rnzluv/ecom/internal/domain"
	"github.com/rnzluv/ecom/internal/events"
)

// Store ports implemented by the DynamoDB repositories. Services depend on
// these so tests can run against in-memory fakes.

type OrderStore interface {
	Create(ctx context.Context, order *domain.Order) error
	CreateWithCart(ctx context.Context, order *domain.Order, cart *domain.Cart) error
	Get(ctx context.Context, id string) (*domain.Order, error)
	Update(ctx context.Context, order *domain.Order) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
}

type CartStore interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	Put(ctx context.Context, cart *domain.Cart) error
}

type WishlistStore interface {
	Get(ctx context.Context, userID string) (*domain.Wishlist, error)
	Put(ctx context.Context, wl *domain.Wishlist) error
}

type ProductStore interface {
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Put(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
}

type UserStore interface {
	Get(ctx context.Context, id string) (*domain.User, error)
}

// EventPublisher is nil-able at the call sites: with no brokers configured
// order flows run without eventing.
type EventPublisher interface {
	PublishOrderCreated(event events.OrderCreatedEvent) error
	PublishOrderStatusChanged(event events.OrderStatusChangedEvent) error
}
