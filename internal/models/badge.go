package models

import (
	"time"
)

// Badge — запись каталога бейджей. Справочные данные: создаются сидом,
// рантайм-потоки их не изменяют.
type Badge struct {
	BadgeID     string    `db:"badge_id" json:"badge_id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	IconURL     string    `db:"icon_url" json:"icon_url"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
