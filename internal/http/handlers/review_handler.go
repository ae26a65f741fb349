package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecoconnect/ecoconnect-backend/internal/dto"
	"github.com/ecoconnect/ecoconnect-backend/internal/http/handlers/common"
	"github.com/ecoconnect/ecoconnect-backend/internal/service"
)

type ReviewHandler struct {
	reviews *service.ReviewService
}

func NewReviewHandler(reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// Create POST /events/:id/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	eventID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.CreateReviewRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, "рейтинг обязателен")
		return
	}

	review, err := h.reviews.Create(c.Request.Context(), eventID, userID, req.Rating, req.Comment)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

// ListByEvent GET /events/:id/reviews
func (h *ReviewHandler) ListByEvent(c *gin.Context) {
	eventID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	reviews, err := h.reviews.ListByEvent(c.Request.Context(), eventID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	avg, count, _ := h.reviews.EventRating(c.Request.Context(), eventID)

	c.JSON(http.StatusOK, gin.H{
		"reviews": reviews,
		"rating":  dto.EventRatingResponse{Average: avg, Count: count},
	})
}
