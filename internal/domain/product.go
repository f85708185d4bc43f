package domain

import (
	"time"
)

type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	Category  string    `json:"category"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProductRef is the resolved shape embedded in cart/wishlist/order reads.
type ProductRef struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

func (p *Product) Ref() *ProductRef {
	return &ProductRef{ID: p.ID, Name: p.Name, Price: p.Price, Image: p.Image}
}

type ProductRequest struct {
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"min=0"`
	Stock    int     `json:"stock" binding:"min=0"`
	Category string  `json:"category"`
	Image    string  `json:"image"`
}
