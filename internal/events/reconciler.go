package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// CartReconciler removes a set of product lines from a user's cart.
// Implemented by the cart service.
type CartReconciler interface {
	RemoveLines(ctx context.Context, userID string, productIDs []string) error
}

// MessageSource is the slice of kafka.Reader the reconciler consumes.
type MessageSource interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Reconciler closes the checkout inconsistency window of the wire-compat
// order path: order creation and cart cleanup are separate writes, so it
// consumes order-created events and deletes any cart lines that survived
// order placement. Line removal is idempotent, replays are harmless.
type Reconciler struct {
	source       MessageSource
	carts        CartReconciler
	compensation *CompensationProducer
	logger       *zap.Logger
}

func NewReconciler(brokers string, carts CartReconciler, compensation *CompensationProducer, logger *zap.Logger) *Reconciler {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{brokers},
		GroupID: "cart-reconciler",
		Topic:   OrderEventsTopic,
	})
	return &Reconciler{
		source:       reader,
		carts:        carts,
		compensation: compensation,
		logger:       logger,
	}
}

// Run consumes until ctx is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	for {
		msg, err := r.source.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			r.logger.Error("Failed to fetch message", zap.Error(err))
			continue
		}

		r.handle(ctx, msg)

		if err := r.source.CommitMessages(ctx, msg); err != nil {
			r.logger.Error("Failed to commit message", zap.Error(err))
		}
	}
}

func (r *Reconciler) handle(ctx context.Context, msg kafka.Message) {
	var event OrderCreatedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		r.logger.Error("Failed to decode order event", zap.Error(err))
		return
	}
	// status-changed events share the topic and carry no items
	if len(event.Items) == 0 || event.OrderID == "" {
		return
	}

	productIDs := make([]string, 0, len(event.Items))
	for _, item := range event.Items {
		productIDs = append(productIDs, item.ProductID)
	}

	if err := r.carts.RemoveLines(ctx, event.UserID, productIDs); err != nil {
		r.logger.Error("Cart reconciliation failed",
			zap.String("order_id", event.OrderID),
			zap.String("user_id", event.UserID),
			zap.Error(err))

		if r.compensation != nil {
			_ = r.compensation.PublishCompensation(CompensationEvent{
				EventID:   uuid.New().String(),
				OrderID:   event.OrderID,
				UserID:    event.UserID,
				Reason:    err.Error(),
				Timestamp: time.Now(),
			})
		}
	}
}

func (r *Reconciler) Close() error {
	return r.source.Close()
}
