package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rnzluv/ecom/internal/domain"
	"github.com/rnzluv/ecom/internal/service"
	"github.com/rnzluv/ecom/pkg/middleware"
)

type WishlistHandler struct {
	wishlistService *service.WishlistService
	logger          *zap.Logger
}

func NewWishlistHandler(wishlistService *service.WishlistService, logger *zap.Logger) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlistService,
		logger:          logger,
	}
}

func (h *WishlistHandler) GetMyWishlist(c *gin.Context) {
	user := middleware.CurrentUser(c)

	wl, err := h.wishlistService.Get(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wl)
}

func (h *WishlistHandler) AddItem(c *gin.Context) {
	var req domain.WishlistLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	user := middleware.CurrentUser(c)
	wl, err := h.wishlistService.Add(c.Request.Context(), user.ID, req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wl)
}

func (h *WishlistHandler) RemoveItem(c *gin.Context) {
	var req domain.WishlistLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	user := middleware.CurrentUser(c)
	wl, err := h.wishlistService.Remove(c.Request.Context(), user.ID, req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wl)
}

func (h *WishlistHandler) ClearWishlist(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if err := h.wishlistService.Clear(c.Request.Context(), user.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Wishlist cleared"})
}
