package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/rnzluv/ecom/internal/domain"
	"github.com/rnzluv/ecom/internal/repository"
)

type CartService struct {
	carts    CartStore
	products ProductStore
	logger   *zap.Logger
}

func NewCartService(carts CartStore, products ProductStore, logger *zap.Logger) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		logger:   logger,
	}
}

// load returns the user's cart, or an empty one when none has been written
// yet. The empty cart is not persisted until the first mutation.
func (s *CartService) load(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.carts.Get(ctx, userID)
	if errors.Is(err, repository.ErrCartNotFound) {
		return &domain.Cart{UserID: userID, Lines: []domain.CartLine{}}, nil
	}
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) Get(ctx context.Context, userID string) (*domain.CartView, error) {
	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, cart), nil
}

// AddLine merges the quantity into an existing line for the same product,
// so a cart never holds two lines for one product.
func (s *CartService) AddLine(ctx context.Context, userID, productID string, quantity int) (*domain.CartView, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if _, err := s.products.Get(ctx, productID); err != nil {
		return nil, err
	}

	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if i := cart.Line(productID); i >= 0 {
		cart.Lines[i].Quantity += quantity
	} else {
		cart.Lines = append(cart.Lines, domain.CartLine{ProductID: productID, Quantity: quantity})
	}
	cart.UpdatedAt = time.Now()

	if err := s.carts.Put(ctx, cart); err != nil {
		return nil, err
	}

	s.logger.Info("Cart line added",
		zap.String("user_id", userID),
		zap.String("product_id", productID),
		zap.Int("quantity", quantity))

	return s.resolve(ctx, cart), nil
}

// UpdateQuantity sets an existing line's quantity. Quantities below 1 are
// rejected; callers remove the line instead.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*domain.CartView, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	i := cart.Line(productID)
	if i < 0 {
		return nil, ErrLineNotFound
	}
	cart.Lines[i].Quantity = quantity
	cart.UpdatedAt = time.Now()

	if err := s.carts.Put(ctx, cart); err != nil {
		return nil, err
	}
	return s.resolve(ctx, cart), nil
}

// RemoveLine is lenient: removing a product that is not in the cart
// succeeds without a write. Post-checkout cleanup relies on this.
func (s *CartService) RemoveLine(ctx context.Context, userID, productID string) (*domain.CartView, error) {
	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	i := cart.Line(productID)
	if i < 0 {
		return s.resolve(ctx, cart), nil
	}
	cart.Lines = append(cart.Lines[:i], cart.Lines[i+1:]...)
	cart.UpdatedAt = time.Now()

	if err := s.carts.Put(ctx, cart); err != nil {
		return nil, err
	}
	return s.resolve(ctx, cart), nil
}

// RemoveLines drops every listed product from the cart in one write. Used
// by the post-order reconciliation worker.
func (s *CartService) RemoveLines(ctx context.Context, userID string, productIDs []string) error {
	cart, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	drop := make(map[string]bool, len(productIDs))
	for _, id := range productIDs {
		drop[id] = true
	}

	kept := cart.Lines[:0]
	removed := 0
	for _, l := range cart.Lines {
		if drop[l.ProductID] {
			removed++
			continue
		}
		kept = append(kept, l)
	}
	if removed == 0 {
		return nil
	}
	cart.Lines = kept
	cart.UpdatedAt = time.Now()

	if err := s.carts.Put(ctx, cart); err != nil {
		return err
	}

	s.logger.Info("Cart lines reconciled",
		zap.String("user_id", userID),
		zap.Int("removed", removed))
	return nil
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	cart := &domain.Cart{UserID: userID, Lines: []domain.CartLine{}, UpdatedAt: time.Now()}
	return s.carts.Put(ctx, cart)
}

func (s *CartService) resolve(ctx context.Context, cart *domain.Cart) *domain.CartView {
	view := &domain.CartView{
		UserID:    cart.UserID,
		Items:     make([]domain.CartLineView, 0, len(cart.Lines)),
		UpdatedAt: cart.UpdatedAt,
	}
	for _, l := range cart.Lines {
		lv := domain.CartLineView{Quantity: l.Quantity}
		if p, err := s.products.Get(ctx, l.ProductID); err == nil {
			lv.Product = p.Ref()
		} else {
			// dangling reference: product was deleted after being carted
			lv.Product = &domain.ProductRef{ID: l.ProductID}
		}
		view.Items = append(view.Items, lv)
	}
	return view
}
