package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecoconnect/ecoconnect-backend/internal/dto"
	"github.com/ecoconnect/ecoconnect-backend/internal/http/handlers/common"
	"github.com/ecoconnect/ecoconnect-backend/internal/service"
)

type UserHandler struct {
	users  *service.UserService
	events *service.EventService
}

func NewUserHandler(users *service.UserService, events *service.EventService) *UserHandler {
	return &UserHandler{users: users, events: events}
}

// UpdateProfile PUT /users/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req dto.UpdateProfileRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, "некорректное тело запроса")
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), userID, service.ProfileUpdateInput{
		Skills:    req.Skills,
		Interests: req.Interests,
		Location:  req.Location,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// PublicProfile GET /users/:id
func (h *UserHandler) PublicProfile(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	profile, err := h.users.PublicProfile(c.Request.Context(), id)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// MyBadges GET /users/me/badges
func (h *UserHandler) MyBadges(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	badges, err := h.users.ListBadges(c.Request.Context(), userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"badges": badges})
}

// History GET /users/me/history
func (h *UserHandler) History(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	created, joined, err := h.events.History(c.Request.Context(), userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.HistoryResponse{Created: created, Joined: joined})
}
