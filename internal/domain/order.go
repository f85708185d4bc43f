package domain

import (
	"time"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return OrderStatus(s), true
	}
	return "", false
}

// CanTransitionTo reports whether the fulfillment status may advance from s
// to next. delivered is terminal; cancelled is reachable from any state
// before delivery.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case OrderStatusPending:
		return next == OrderStatusProcessing || next == OrderStatusCancelled
	case OrderStatusProcessing:
		return next == OrderStatusShipped || next == OrderStatusCancelled
	case OrderStatusShipped:
		return next == OrderStatusDelivered || next == OrderStatusCancelled
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodCOD   PaymentMethod = "cod"
	PaymentMethodGcash PaymentMethod = "gcash"
	PaymentMethodCard  PaymentMethod = "card"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user"`
	Items           []OrderItem     `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus"`
	Status          OrderStatus     `json:"status"`
	TotalAmount     float64         `json:"totalAmount"`
	CustomerEmail   string          `json:"customerEmail"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// OrderItem snapshots one purchased line. Price is the unit price captured
// at order creation and is never re-read from the catalog afterward.
type OrderItem struct {
	ProductID string  `json:"product"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type ShippingAddress struct {
	FullName   string `json:"fullName" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
	Address    string `json:"address" binding:"required"`
	City       string `json:"city" binding:"required"`
	PostalCode string `json:"postalCode" binding:"required"`
}

type OrderItemInput struct {
	ProductID string  `json:"product" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	Price     float64 `json:"price" binding:"min=0"`
}

type CreateOrderRequest struct {
	Items           []OrderItemInput `json:"items" binding:"required,min=1,dive"`
	ShippingAddress ShippingAddress  `json:"shippingAddress" binding:"required"`
	PaymentMethod   string           `json:"paymentMethod" binding:"required,oneof=cod gcash card"`
	TotalAmount     float64          `json:"totalAmount" binding:"min=0"`
	CustomerEmail   string           `json:"customerEmail"`
}

// CheckoutRequest drives the server-side checkout: the selection is an
// explicit list of product ids already present in the caller's cart.
type CheckoutRequest struct {
	SelectedProducts []string        `json:"selectedProducts" binding:"required,min=1"`
	ShippingAddress  ShippingAddress `json:"shippingAddress" binding:"required"`
	PaymentMethod    string          `json:"paymentMethod" binding:"required,oneof=cod gcash card"`
	CustomerEmail    string          `json:"customerEmail"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderView is an Order with its user and products resolved, mirroring the
// populated documents the API serves on reads.
type OrderView struct {
	ID              string          `json:"id"`
	User            *UserRef        `json:"user"`
	Items           []OrderItemView `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus"`
	Status          OrderStatus     `json:"status"`
	TotalAmount     float64         `json:"totalAmount"`
	CustomerEmail   string          `json:"customerEmail"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type OrderItemView struct {
	Product  *ProductRef `json:"product"`
	Quantity int         `json:"quantity"`
	Price    float64     `json:"price"`
}
