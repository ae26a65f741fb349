package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecoconnect/ecoconnect-backend/internal/dto"
	"github.com/ecoconnect/ecoconnect-backend/internal/http/handlers/common"
	"github.com/ecoconnect/ecoconnect-backend/internal/service"
)

type ReportHandler struct {
	reports *service.ReportService
}

func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Create POST /reports
func (h *ReportHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req dto.CreateReportRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, "тип и причина жалобы обязательны")
		return
	}

	ticket, err := h.reports.Create(c.Request.Context(), userID, service.ReportInput{
		ReportType:    req.ReportType,
		ReportedEvent: req.ReportedEvent,
		ReportedUser:  req.ReportedUser,
		Reason:        req.Reason,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ticket)
}
