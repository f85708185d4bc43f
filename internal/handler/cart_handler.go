package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rnzluv/ecom/internal/domain"
	"github.com/rnzluv/ecom/internal/service"
	"github.com/rnzluv/ecom/pkg/middleware"
)

type CartHandler struct {
	cartService *service.CartService
	logger      *zap.Logger
}

func NewCartHandler(cartService *service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		logger:      logger,
	}
}

// GetMyCart never 404s: a user without a cart document gets an empty cart.
func (h *CartHandler) GetMyCart(c *gin.Context) {
	user := middleware.CurrentUser(c)

	cart, err := h.cartService.Get(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req domain.AddCartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	user := middleware.CurrentUser(c)
	cart, err := h.cartService.AddLine(c.Request.Context(), user.ID, req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req domain.UpdateCartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	user := middleware.CurrentUser(c)
	cart, err := h.cartService.UpdateQuantity(c.Request.Context(), user.ID, req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	var req domain.RemoveCartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	user := middleware.CurrentUser(c)
	cart, err := h.cartService.RemoveLine(c.Request.Context(), user.ID, req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if err := h.cartService.Clear(c.Request.Context(), user.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
