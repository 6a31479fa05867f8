package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pawmart/pawmart-backend/internal/http/response"
	"github.com/pawmart/pawmart-backend/internal/pkg/logger"
	"github.com/pawmart/pawmart-backend/internal/requestdata"
	"github.com/pawmart/pawmart-backend/internal/services"
)

type WishlistHandler struct {
	log             *logger.Logger
	behaviorService services.BehaviorService
}

func NewWishlistHandler(log *logger.Logger, behaviorService services.BehaviorService) *WishlistHandler {
	handlerLog := log.With("handler", "WishlistHandler")
	return &WishlistHandler{log: handlerLog, behaviorService: behaviorService}
}

// authorizedUser resolves the :userId path param and checks it against the
// authenticated subject. Admins may act on any user.
func authorizedUser(c *gin.Context) (uuid.UUID, bool) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_user_id", errors.New("invalid user id"))
		return uuid.Nil, false
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("authentication required"))
		return uuid.Nil, false
	}
	if rd.UserID != userID && rd.Role != "admin" {
		response.RespondError(c, http.StatusForbidden, "forbidden", errors.New("cannot act on another user"))
		return uuid.Nil, false
	}
	return userID, true
}

type wishlistItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
}

// Get handles GET /api/wishlist/:userId.
func (h *WishlistHandler) Get(c *gin.Context) {
	userID, ok := authorizedUser(c)
	if !ok {
		return
	}
	items, err := h.behaviorService.GetWishlist(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("Failed to load wishlist", "user_id", userID.String(), "error", err)
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"items": items, "total": len(items)})
}

// Add handles POST /api/wishlist/:userId.
func (h *WishlistHandler) Add(c *gin.Context) {
	userID, ok := authorizedUser(c)
	if !ok {
		return
	}
	var req wishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	item, err := h.behaviorService.AddToWishlist(c.Request.Context(), userID, req.ProductID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, item)
}

// Remove handles DELETE /api/wishlist/:userId/:productId.
func (h *WishlistHandler) Remove(c *gin.Context) {
	userID, ok := authorizedUser(c)
	if !ok {
		return
	}
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_product_id", errors.New("invalid product id"))
		return
	}
	item, err := h.behaviorService.RemoveFromWishlist(c.Request.Context(), userID, productID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, item)
}
