package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rnzluv/ecom/internal/domain"
	"github.com/rnzluv/ecom/internal/service"
	"github.com/rnzluv/ecom/pkg/middleware"
)

type OrderHandler struct {
	orderService *service.OrderService
	logger       *zap.Logger
}

func NewOrderHandler(orderService *service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// CreateOrder handles POST /api/orders/create: the wire-compatible path
// where the client submits line snapshots and removes its own cart lines
// afterwards.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req domain.CreateOrderRequest

	// Request binding
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	requestID := c.GetString("request_id")
	user := middleware.CurrentUser(c)

	order, err := h.orderService.Create(c.Request.Context(), user, req, requestID)
	if err != nil {
		h.logger.Error("Failed to create order",
			zap.String("request_id", requestID),
			zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order created successfully",
		"order":   order,
	})
}

// Checkout handles POST /api/orders/checkout: the transactional path that
// builds the order from the server-held cart and removes the selected
// lines atomically.
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req domain.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	requestID := c.GetString("request_id")
	user := middleware.CurrentUser(c)

	order, err := h.orderService.Checkout(c.Request.Context(), user, req, requestID)
	if err != nil {
		h.logger.Error("Checkout failed",
			zap.String("request_id", requestID),
			zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order created successfully",
		"order":   order,
	})
}

func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	user := middleware.CurrentUser(c)

	orders, err := h.orderService.ListMine(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	user := middleware.CurrentUser(c)

	order, err := h.orderService.GetByID(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) GetAllOrders(c *gin.Context) {
	orders, err := h.orderService.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req domain.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	order, err := h.orderService.SetStatus(c.Request.Context(), c.Param("id"), req.Status, c.GetString("request_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated",
		"order":   order,
	})
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.orderService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
}
