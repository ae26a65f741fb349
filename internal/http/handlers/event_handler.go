package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecoconnect/ecoconnect-backend/internal/dto"
	"github.com/ecoconnect/ecoconnect-backend/internal/http/handlers/common"
	"github.com/ecoconnect/ecoconnect-backend/internal/models"
	"github.com/ecoconnect/ecoconnect-backend/internal/service"
)

type EventHandler struct {
	events *service.EventService
}

func NewEventHandler(events *service.EventService) *EventHandler {
	return &EventHandler{events: events}
}

// Create POST /events
func (h *EventHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req dto.CreateEventRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, "некорректное тело запроса")
		return
	}

	maxVolunteers := 10
	if req.MaxVolunteers != nil {
		maxVolunteers = *req.MaxVolunteers
	}

	event := &models.Event{
		Title:         req.Title,
		Description:   req.Description,
		Image:         req.Image,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Location:      req.Location,
		MaxVolunteers: maxVolunteers,
	}

	created, err := h.events.Create(c.Request.Context(), userID, event)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// List GET /events
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.events.ListPublic(c.Request.Context(), c.Query("location"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

// Get GET /events/:id
func (h *EventHandler) Get(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	details, err := h.events.Get(c.Request.Context(), id)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.EventResponse{
		Event:        details.Event,
		Creator:      details.Creator,
		Participants: details.Participants,
	})
}

// Update PUT /events/:id
func (h *EventHandler) Update(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.UpdateEventRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, "некорректное тело запроса")
		return
	}

	event, err := h.events.Update(c.Request.Context(), id, userID, service.EventUpdateInput{
		Title:         req.Title,
		Description:   req.Description,
		Image:         req.Image,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Location:      req.Location,
		MaxVolunteers: req.MaxVolunteers,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// Delete DELETE /events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.events.Delete(c.Request.Context(), id, userID); err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "событие удалено", nil)
}

// Join POST /events/:id/join
func (h *EventHandler) Join(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.events.Join(c.Request.Context(), id, userID); err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "вы записаны на событие", nil)
}

// Leave POST /events/:id/leave
func (h *EventHandler) Leave(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.events.Leave(c.Request.Context(), id, userID); err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "вы покинули событие", nil)
}

// Complete POST /events/:id/complete
func (h *EventHandler) Complete(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	event, err := h.events.Complete(c.Request.Context(), id, userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// MyEvents GET /events/my
func (h *EventHandler) MyEvents(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	events, err := h.events.ListCreated(c.Request.Context(), userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}
