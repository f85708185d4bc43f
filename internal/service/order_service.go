package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rnzluv/ecom/internal/domain"
	"github.com/rnzluv/ecom/internal/events"
	"github.com/rnzluv/ecom/internal/repository"
)

// Stored totals are currency values; recomputed sums are compared within a
// centavo to absorb float encoding noise.
const totalTolerance = 0.01

type OrderService struct {
	orders    OrderStore
	carts     CartStore
	products  ProductStore
	users     UserStore
	publisher EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewOrderService(orders OrderStore, carts CartStore, products ProductStore, users UserStore, publisher EventPublisher, logger *zap.Logger) *OrderService {
	return &OrderService{
		orders:    orders,
		carts:     carts,
		products:  products,
		users:     users,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Create persists an order from client-held line snapshots. The submitted
// unit prices are kept as-is, but the claimed total must equal their sum.
// Cart cleanup is the caller's job; the reconciliation worker sweeps any
// lines the client fails to remove.
func (s *OrderService) Create(ctx context.Context, user domain.User, req domain.CreateOrderRequest, requestID string) (*domain.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyItems
	}

	email := req.CustomerEmail
	if email == "" {
		email = user.Email
	}
	if verr := ValidateShipping(req.ShippingAddress, email); verr != nil {
		return nil, verr
	}

	// Items 처리 및 총액 계산
	var totalAmount float64
	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		items = append(items, domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
		totalAmount += float64(item.Quantity) * item.Price
	}

	// 클라이언트가 보낸 totalAmount 검증
	if math.Abs(totalAmount-req.TotalAmount) > totalTolerance {
		return nil, ErrTotalMismatch
	}

	order := s.newOrder(user.ID, items, req.ShippingAddress, domain.PaymentMethod(req.PaymentMethod), totalAmount, email)

	// DynamoDB에 저장
	if err := s.orders.Create(ctx, order); err != nil {
		s.logger.Error("Failed to save order",
			zap.String("order_id", order.ID),
			zap.Error(err))
		return nil, err
	}

	s.publishCreated(order, requestID)

	s.logger.Info("Order created",
		zap.String("order_id", order.ID),
		zap.String("user_id", order.UserID),
		zap.Float64("total_amount", order.TotalAmount))

	return order, nil
}

// Checkout is the server-side orchestrator: it re-reads the caller's cart,
// snapshots current catalog prices for the selected lines, and commits the
// order together with the reconciled cart in one store transaction.
func (s *OrderService) Checkout(ctx context.Context, user domain.User, req domain.CheckoutRequest, requestID string) (*domain.Order, error) {
	if len(req.SelectedProducts) == 0 {
		return nil, ErrEmptyItems
	}

	email := req.CustomerEmail
	if email == "" {
		email = user.Email
	}
	if verr := ValidateShipping(req.ShippingAddress, email); verr != nil {
		return nil, verr
	}

	cart, err := s.carts.Get(ctx, user.ID)
	if errors.Is(err, repository.ErrCartNotFound) {
		return nil, ErrNotInCart
	}
	if err != nil {
		return nil, err
	}

	selected := make(map[string]bool, len(req.SelectedProducts))
	for _, id := range req.SelectedProducts {
		selected[id] = true
	}

	var totalAmount float64
	items := make([]domain.OrderItem, 0, len(req.SelectedProducts))
	remaining := make([]domain.CartLine, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		if !selected[line.ProductID] {
			remaining = append(remaining, line)
			continue
		}
		delete(selected, line.ProductID)

		product, err := s.products.Get(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		items = append(items, domain.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     product.Price,
		})
		totalAmount += float64(line.Quantity) * product.Price
	}
	if len(selected) > 0 {
		return nil, ErrNotInCart
	}

	order := s.newOrder(user.ID, items, req.ShippingAddress, domain.PaymentMethod(req.PaymentMethod), totalAmount, email)
	newCart := &domain.Cart{UserID: user.ID, Lines: remaining, UpdatedAt: s.now()}

	// 주문 생성과 카트 정리를 한 트랜잭션으로 커밋
	if err := s.orders.CreateWithCart(ctx, order, newCart); err != nil {
		s.logger.Error("Checkout transaction failed",
			zap.String("user_id", user.ID),
			zap.Error(err))
		return nil, err
	}

	s.publishCreated(order, requestID)

	s.logger.Info("Checkout completed",
		zap.String("order_id", order.ID),
		zap.String("user_id", order.UserID),
		zap.Int("lines", len(items)),
		zap.Float64("total_amount", order.TotalAmount))

	return order, nil
}

func (s *OrderService) newOrder(userID string, items []domain.OrderItem, addr domain.ShippingAddress, method domain.PaymentMethod, total float64, email string) *domain.Order {
	now := s.now()
	return &domain.Order{
		ID:              uuid.New().String(),
		UserID:          userID,
		Items:           items,
		ShippingAddress: addr,
		PaymentMethod:   method,
		PaymentStatus:   domain.PaymentStatusPending,
		Status:          domain.OrderStatusPending,
		TotalAmount:     total,
		CustomerEmail:   email,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (s *OrderService) publishCreated(order *domain.Order, requestID string) {
	if s.publisher == nil {
		return
	}
	event := events.OrderCreatedEvent{
		EventID:     uuid.New().String(),
		OrderID:     order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		Items:       order.Items,
		Status:      string(order.Status),
		Timestamp:   s.now(),
		RequestID:   requestID,
	}
	if err := s.publisher.PublishOrderCreated(event); err != nil {
		// 이벤트 발행 실패 시 로그만 (eventual consistency)
		s.logger.Error("Failed to publish order created event",
			zap.String("order_id", order.ID),
			zap.Error(err))
	}
}

// GetByID enforces the read rule: only the order's owner or an admin may
// fetch it.
func (s *OrderService) GetByID(ctx context.Context, requester domain.User, id string) (*domain.OrderView, error) {
	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != requester.ID && !requester.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.resolve(ctx, order), nil
}

func (s *OrderService) ListMine(ctx context.Context, userID string) ([]domain.OrderView, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.resolveAll(ctx, orders), nil
}

func (s *OrderService) ListAll(ctx context.Context) ([]domain.OrderView, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.resolveAll(ctx, orders), nil
}

// SetStatus advances the fulfillment status along
// pending -> processing -> shipped -> delivered, with cancelled reachable
// from any pre-delivered state. delivered stamps DeliveredAt.
func (s *OrderService) SetStatus(ctx context.Context, id, status string, requestID string) (*domain.Order, error) {
	next, ok := domain.ParseOrderStatus(status)
	if !ok {
		return nil, ErrInvalidStatus
	}

	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}

	prev := order.Status
	order.Status = next
	order.UpdatedAt = s.now()
	if next == domain.OrderStatusDelivered && order.DeliveredAt == nil {
		t := s.now()
		order.DeliveredAt = &t
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		event := events.OrderStatusChangedEvent{
			EventID:   uuid.New().String(),
			OrderID:   order.ID,
			UserID:    order.UserID,
			From:      string(prev),
			To:        string(next),
			Timestamp: s.now(),
			RequestID: requestID,
		}
		if err := s.publisher.PublishOrderStatusChanged(event); err != nil {
			s.logger.Error("Failed to publish status changed event",
				zap.String("order_id", order.ID),
				zap.Error(err))
		}
	}

	s.logger.Info("Order status updated",
		zap.String("order_id", order.ID),
		zap.String("from", string(prev)),
		zap.String("to", string(next)))

	return order, nil
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	return s.orders.Delete(ctx, id)
}

func (s *OrderService) resolveAll(ctx context.Context, orders []domain.Order) []domain.OrderView {
	views := make([]domain.OrderView, 0, len(orders))
	for i := range orders {
		views = append(views, *s.resolve(ctx, &orders[i]))
	}
	return views
}

func (s *OrderService) resolve(ctx context.Context, order *domain.Order) *domain.OrderView {
	view := &domain.OrderView{
		ID:              order.ID,
		Items:           make([]domain.OrderItemView, 0, len(order.Items)),
		ShippingAddress: order.ShippingAddress,
		PaymentMethod:   order.PaymentMethod,
		PaymentStatus:   order.PaymentStatus,
		Status:          order.Status,
		TotalAmount:     order.TotalAmount,
		CustomerEmail:   order.CustomerEmail,
		DeliveredAt:     order.DeliveredAt,
		PaidAt:          order.PaidAt,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}

	if u, err := s.users.Get(ctx, order.UserID); err == nil {
		view.User = &domain.UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
	} else {
		view.User = &domain.UserRef{ID: order.UserID, Email: order.CustomerEmail}
	}

	for _, item := range order.Items {
		iv := domain.OrderItemView{Quantity: item.Quantity, Price: item.Price}
		if p, err := s.products.Get(ctx, item.ProductID); err == nil {
			iv.Product = p.Ref()
		} else {
			iv.Product = &domain.ProductRef{ID: item.ProductID, Price: item.Price}
		}
		view.Items = append(view.Items, iv)
	}
	return view
}
