package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pawmart/pawmart-backend/internal/http/response"
	"github.com/pawmart/pawmart-backend/internal/pkg/logger"
	"github.com/pawmart/pawmart-backend/internal/services"
)

type CartHandler struct {
	log             *logger.Logger
	behaviorService services.BehaviorService
}

func NewCartHandler(log *logger.Logger, behaviorService services.BehaviorService) *CartHandler {
	handlerLog := log.With("handler", "CartHandler")
	return &CartHandler{log: handlerLog, behaviorService: behaviorService}
}

type cartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity"`
}

// Get handles GET /api/cart/:userId.
func (h *CartHandler) Get(c *gin.Context) {
	userID, ok := authorizedUser(c)
	if !ok {
		return
	}
	items, err := h.behaviorService.GetCart(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("Failed to load cart", "user_id", userID.String(), "error", err)
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"items": items, "total": len(items)})
}

// Add handles POST /api/cart/:userId.
func (h *CartHandler) Add(c *gin.Context) {
	userID, ok := authorizedUser(c)
	if !ok {
		return
	}
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	item, err := h.behaviorService.AddToCart(c.Request.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, item)
}

// Remove handles DELETE /api/cart/:userId/:productId.
func (h *CartHandler) Remove(c *gin.Context) {
	userID, ok := authorizedUser(c)
	if !ok {
		return
	}
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_product_id", errors.New("invalid product id"))
		return
	}
	item, err := h.behaviorService.RemoveFromCart(c.Request.Context(), userID, productID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, item)
}
