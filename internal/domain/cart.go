package domain

import (
	"time"
)

// Cart is the per-user working set of product selections. Lines are unique
// by product id; adding an existing product increments its quantity.
type Cart struct {
	UserID    string     `json:"user"`
	Lines     []CartLine `json:"items"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type CartLine struct {
	ProductID string `json:"product"`
	Quantity  int    `json:"quantity"`
}

// Line returns the index of the line for productID, or -1.
func (c *Cart) Line(productID string) int {
	for i, l := range c.Lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

type AddCartLineRequest struct {
	ProductID string `json:"product" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type UpdateCartLineRequest struct {
	ProductID string `json:"product" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

type RemoveCartLineRequest struct {
	ProductID string `json:"product" binding:"required"`
}

type CartView struct {
	UserID    string         `json:"user"`
	Items     []CartLineView `json:"items"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type CartLineView struct {
	Product  *ProductRef `json:"product"`
	Quantity int         `json:"quantity"`
}
