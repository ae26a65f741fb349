package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecoconnect/ecoconnect-backend/internal/dto"
	"github.com/ecoconnect/ecoconnect-backend/internal/http/handlers/common"
	"github.com/ecoconnect/ecoconnect-backend/internal/service"
)

// AdminHandler объединяет операции модерации: решения по событиям и жалобам.
type AdminHandler struct {
	events  *service.EventService
	reports *service.ReportService
}

func NewAdminHandler(events *service.EventService, reports *service.ReportService) *AdminHandler {
	return &AdminHandler{events: events, reports: reports}
}

// ListEvents GET /admin/events
func (h *AdminHandler) ListEvents(c *gin.Context) {
	events, err := h.events.ListForAdmin(c.Request.Context(), c.Query("status"), c.Query("location"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

// ApproveEvent POST /admin/events/:id/approve
func (h *AdminHandler) ApproveEvent(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	event, err := h.events.Approve(c.Request.Context(), id)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// RejectEvent POST /admin/events/:id/reject
func (h *AdminHandler) RejectEvent(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	event, err := h.events.Reject(c.Request.Context(), id)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// ListTickets GET /admin/reports
func (h *AdminHandler) ListTickets(c *gin.Context) {
	tickets, err := h.reports.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tickets": tickets})
}

// GetTicket GET /admin/reports/:id
func (h *AdminHandler) GetTicket(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	ticket, err := h.reports.Get(c.Request.Context(), id)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// UpdateTicketStatus PUT /admin/reports/:id
func (h *AdminHandler) UpdateTicketStatus(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.UpdateTicketStatusRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, "статус обязателен")
		return
	}

	ticket, err := h.reports.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}
