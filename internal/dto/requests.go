package dto

import (
	"time"

	"github.com/google/uuid"
)

// ZaloLoginRequest — вход через Zalo мини-приложение.
type ZaloLoginRequest struct {
	AccessToken string `json:"access_token" binding:"required"`
}

// AdminLoginRequest — вход администратора.
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest — редактируемые поля профиля. Отсутствующие поля
// не меняются.
type UpdateProfileRequest struct {
	Skills    []string `json:"skills"`
	Interests []string `json:"interests"`
	Location  *string  `json:"location"`
}

// CreateEventRequest — создание события.
type CreateEventRequest struct {
	Title         string     `json:"title" binding:"required"`
	Description   string     `json:"description" binding:"required"`
	Image         string     `json:"image"`
	StartTime     time.Time  `json:"start_time" binding:"required"`
	EndTime       *time.Time `json:"end_time"`
	Location      string     `json:"location" binding:"required"`
	MaxVolunteers *int       `json:"max_volunteers"`
}

// UpdateEventRequest — частичное редактирование события.
type UpdateEventRequest struct {
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	Image         *string    `json:"image"`
	StartTime     *time.Time `json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	Location      *string    `json:"location"`
	MaxVolunteers *int       `json:"max_volunteers"`
}

// CreateReviewRequest — отзыв на завершённое событие.
type CreateReviewRequest struct {
	Rating  int     `json:"rating" binding:"required"`
	Comment *string `json:"comment"`
}

// CreateReportRequest — жалоба на событие или пользователя.
type CreateReportRequest struct {
	ReportType    string     `json:"report_type" binding:"required"`
	ReportedEvent *uuid.UUID `json:"reported_event_id"`
	ReportedUser  *uuid.UUID `json:"reported_user_id"`
	Reason        string     `json:"reason" binding:"required"`
}

// UpdateTicketStatusRequest — решение модератора по жалобе.
type UpdateTicketStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
