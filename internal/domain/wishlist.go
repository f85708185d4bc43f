package domain

import (
	"time"
)

// Wishlist is a cart without quantities: a set of saved product ids.
// Adding a product already present is a no-op.
type Wishlist struct {
	UserID    string         `json:"user"`
	Lines     []WishlistLine `json:"items"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type WishlistLine struct {
	ProductID string `json:"product"`
}

func (w *Wishlist) Contains(productID string) bool {
	for _, l := range w.Lines {
		if l.ProductID == productID {
			return true
		}
	}
	return false
}

type WishlistLineRequest struct {
	ProductID string `json:"product" binding:"required"`
}

type WishlistView struct {
	UserID    string             `json:"user"`
	Items     []WishlistLineView `json:"items"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

type WishlistLineView struct {
	Product *ProductRef `json:"product"`
}
