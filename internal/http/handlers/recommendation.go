package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pawmart/pawmart-backend/internal/http/response"
	pkgerrors "github.com/pawmart/pawmart-backend/internal/pkg/errors"
	"github.com/pawmart/pawmart-backend/internal/pkg/logger"
	"github.com/pawmart/pawmart-backend/internal/services"
)

type RecommendationHandler struct {
	log                   *logger.Logger
	recommendationService services.RecommendationService
	behaviorService       services.BehaviorService
}

func NewRecommendationHandler(
	log *logger.Logger,
	recommendationService services.RecommendationService,
	behaviorService services.BehaviorService,
) *RecommendationHandler {
	handlerLog := log.With("handler", "RecommendationHandler")
	return &RecommendationHandler{
		log:                   handlerLog,
		recommendationService: recommendationService,
		behaviorService:       behaviorService,
	}
}

// GetRecommendations handles GET /api/recommendations/:userId?limit=N.
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_user_id", errors.New("invalid user id"))
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, convErr := strconv.Atoi(raw)
		if convErr != nil || parsed < 1 {
			response.RespondError(c, http.StatusBadRequest, "invalid_limit", errors.New("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	result, err := h.recommendationService.GetRecommendations(c.Request.Context(), userID, limit)
	if err != nil {
		h.log.Error("Failed to compute recommendations", "user_id", userID.String(), "error", err)
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, result)
}

type trackViewRequest struct {
	UserID    uuid.UUID `json:"user_id" binding:"required"`
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	SessionID string    `json:"session_id"`
}

// TrackView handles POST /api/recommendations/track-view.
func (h *RecommendationHandler) TrackView(c *gin.Context) {
	var req trackViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	if err := h.behaviorService.TrackView(c.Request.Context(), req.UserID, req.ProductID, req.SessionID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"tracked": true})
}

func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pkgerrors.ErrInvalidInput):
		response.RespondError(c, http.StatusBadRequest, "invalid_input", err)
	case errors.Is(err, pkgerrors.ErrNotFound):
		response.RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, pkgerrors.ErrUnauthorized):
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", err)
	default:
		response.RespondError(c, http.StatusInternalServerError, "internal_error", err)
	}
}
