package models

import (
	"time"

	"github.com/google/uuid"
)

// User описывает участника платформы. Создаётся при первом входе через Zalo;
// администраторы заводятся локально (email + пароль) и через Zalo не входят.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	ZaloID       *string   `db:"zalo_id" json:"-"`
	DisplayName  string    `db:"display_name" json:"display_name"`
	Avatar       string    `db:"avatar" json:"avatar"`
	Role         string    `db:"role" json:"role"`
	Email        *string   `db:"email" json:"-"`
	PasswordHash *string   `db:"password_hash" json:"-"`
	Skills       []string  `db:"skills" json:"skills"`
	Interests    []string  `db:"interests" json:"interests"`
	Location     string    `db:"location" json:"location"`
	Points       int       `db:"points" json:"points"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// UserBadgeDetailed — полученный бейдж вместе с данными каталога.
type UserBadgeDetailed struct {
	BadgeID      string    `db:"badge_id" json:"badge_id"`
	Name         string    `db:"name" json:"name"`
	Description  string    `db:"description" json:"description"`
	IconURL      string    `db:"icon_url" json:"icon_url"`
	DateAchieved time.Time `db:"date_achieved" json:"date_achieved"`
}

// PublicProfile — публичная часть профиля: без zalo id и контактных данных.
type PublicProfile struct {
	ID          uuid.UUID           `json:"id"`
	DisplayName string              `json:"display_name"`
	Avatar      string              `json:"avatar"`
	Skills      []string            `json:"skills"`
	Interests   []string            `json:"interests"`
	Location    string              `json:"location"`
	Points      int                 `json:"points"`
	Badges      []UserBadgeDetailed `json:"badges"`
	CreatedAt   time.Time           `json:"created_at"`
}
