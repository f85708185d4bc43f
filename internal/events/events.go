package events

import (
	"time"

	"github.com/rnzluv/ecom/internal/domain"
)

const (
	OrderEventsTopic        = "order-events"
	CompensationEventsTopic = "compensation-events"
)

type OrderCreatedEvent struct {
	EventID     string             `json:"event_id"`
	OrderID     string             `json:"order_id"`
	UserID      string             `json:"user_id"`
	TotalAmount float64            `json:"total_amount"`
	Items       []domain.OrderItem `json:"items"`
	Status      string             `json:"status"`
	Timestamp   time.Time          `json:"timestamp"`
	RequestID   string             `json:"request_id"`
}

type OrderStatusChangedEvent struct {
	EventID   string    `json:"event_id"`
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id"`
}

// CompensationEvent is published when post-order cart cleanup fails and a
// placed order may coexist with its stale cart lines.
type CompensationEvent struct {
	EventID   string    `json:"event_id"`
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}
