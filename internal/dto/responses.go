package dto

import (
	"time"

	"github.com/ecoconnect/ecoconnect-backend/internal/models"
)

// ErrorResponse — единый формат ошибки.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse — единый формат успешного ответа с сообщением.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// AuthResponse — итог авторизации.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

// EventResponse — событие с организатором и участниками.
type EventResponse struct {
	Event        *models.Event            `json:"event"`
	Creator      *models.CreatorInfo      `json:"creator,omitempty"`
	Participants []models.ParticipantInfo `json:"participants,omitempty"`
}

// HistoryResponse — история активности пользователя.
type HistoryResponse struct {
	Created []models.Event `json:"created"`
	Joined  []models.Event `json:"joined"`
}

// UploadResponse — итог загрузки изображения.
type UploadResponse struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// EventRatingResponse — агрегированный рейтинг события.
type EventRatingResponse struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}
