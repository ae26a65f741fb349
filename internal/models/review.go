package models

import (
	"time"

	"github.com/google/uuid"
)

// Review описывает отзыв участника о завершённом событии.
// Один пользователь может оставить не более одного отзыва на событие.
type Review struct {
	ID         uuid.UUID `db:"id" json:"id"`
	EventID    uuid.UUID `db:"event_id" json:"event_id"`
	ReviewerID uuid.UUID `db:"reviewer_id" json:"reviewer_id"`
	Rating     int       `db:"rating" json:"rating"`
	Comment    *string   `db:"comment" json:"comment,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// ReviewWithReviewer — отзыв вместе с публичными данными автора.
type ReviewWithReviewer struct {
	Review
	ReviewerName   string `db:"reviewer_name" json:"reviewer_name"`
	ReviewerAvatar string `db:"reviewer_avatar" json:"reviewer_avatar"`
}
