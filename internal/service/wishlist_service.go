package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/rnzluv/ecom/internal/domain"
	"github.com/rnzluv/ecom/internal/repository"
)

type WishlistService struct {
	wishlists WishlistStore
	products  ProductStore
	logger    *zap.Logger
}

func NewWishlistService(wishlists WishlistStore, products ProductStore, logger *zap.Logger) *WishlistService {
	return &WishlistService{
		wishlists: wishlists,
		products:  products,
		logger:    logger,
	}
}

func (s *WishlistService) load(ctx context.Context, userID string) (*domain.Wishlist, error) {
	wl, err := s.wishlists.Get(ctx, userID)
	if errors.Is(err, repository.ErrCartNotFound) {
		return &domain.Wishlist{UserID: userID, Lines: []domain.WishlistLine{}}, nil
	}
	if err != nil {
		return nil, err
	}
	return wl, nil
}

func (s *WishlistService) Get(ctx context.Context, userID string) (*domain.WishlistView, error) {
	wl, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, wl), nil
}

// Add saves a product; adding one already saved is a no-op.
func (s *WishlistService) Add(ctx context.Context, userID, productID string) (*domain.WishlistView, error) {
	if _, err := s.products.Get(ctx, productID); err != nil {
		return nil, err
	}

	wl, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if wl.Contains(productID) {
		return s.resolve(ctx, wl), nil
	}

	wl.Lines = append(wl.Lines, domain.WishlistLine{ProductID: productID})
	wl.UpdatedAt = time.Now()

	if err := s.wishlists.Put(ctx, wl); err != nil {
		return nil, err
	}
	return s.resolve(ctx, wl), nil
}

func (s *WishlistService) Remove(ctx context.Context, userID, productID string) (*domain.WishlistView, error) {
	wl, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := wl.Lines[:0]
	for _, l := range wl.Lines {
		if l.ProductID != productID {
			kept = append(kept, l)
		}
	}
	if len(kept) == len(wl.Lines) {
		return s.resolve(ctx, wl), nil
	}
	wl.Lines = kept
	wl.UpdatedAt = time.Now()

	if err := s.wishlists.Put(ctx, wl); err != nil {
		return nil, err
	}
	return s.resolve(ctx, wl), nil
}

func (s *WishlistService) Clear(ctx context.Context, userID string) error {
	wl := &domain.Wishlist{UserID: userID, Lines: []domain.WishlistLine{}, UpdatedAt: time.Now()}
	return s.wishlists.Put(ctx, wl)
}

func (s *WishlistService) resolve(ctx context.Context, wl *domain.Wishlist) *domain.WishlistView {
	view := &domain.WishlistView{
		UserID:    wl.UserID,
		Items:     make([]domain.WishlistLineView, 0, len(wl.Lines)),
		UpdatedAt: wl.UpdatedAt,
	}
	for _, l := range wl.Lines {
		lv := domain.WishlistLineView{}
		if p, err := s.products.Get(ctx, l.ProductID); err == nil {
			lv.Product = p.Ref()
		} else {
			lv.Product = &domain.ProductRef{ID: l.ProductID}
		}
		view.Items = append(view.Items, lv)
	}
	return view
}
