package models

import (
	"time"

	"github.com/google/uuid"
)

// Event описывает волонтёрское событие.
// MaxVolunteers = 0 означает отсутствие лимита участников.
type Event struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	Title         string     `db:"title" json:"title"`
	Description   string     `db:"description" json:"description"`
	Image         string     `db:"image" json:"image"`
	StartTime     time.Time  `db:"start_time" json:"start_time"`
	EndTime       *time.Time `db:"end_time" json:"end_time,omitempty"`
	Location      string     `db:"location" json:"location"`
	MaxVolunteers int        `db:"max_volunteers" json:"max_volunteers"`
	Status        string     `db:"status" json:"status"`
	CreatedBy     uuid.UUID  `db:"created_by" json:"created_by"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// ParticipantInfo — публичные данные участника в карточке события.
type ParticipantInfo struct {
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	DisplayName string    `db:"display_name" json:"display_name"`
	Avatar      string    `db:"avatar" json:"avatar"`
	JoinedAt    time.Time `db:"joined_at" json:"joined_at"`
}

// CreatorInfo — публичные данные организатора события.
type CreatorInfo struct {
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	DisplayName string    `db:"display_name" json:"display_name"`
	Avatar      string    `db:"avatar" json:"avatar"`
}
