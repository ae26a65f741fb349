package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ecoconnect/ecoconnect-backend/internal/models"
)

// ErrBadgeNotFound возвращается, когда значок не найден в каталоге.
var ErrBadgeNotFound = errors.New("badge not found")

// BadgeRepository отвечает за каталог значков и их выдачу пользователям.
type BadgeRepository struct {
	db *sqlx.DB
}

// NewBadgeRepository создаёт экземпляр репозитория.
func NewBadgeRepository(db *sqlx.DB) *BadgeRepository {
	return &BadgeRepository{db: db}
}

// GetByBadgeID возвращает значок из каталога.
func (r *BadgeRepository) GetByBadgeID(ctx context.Context, badgeID string) (*models.Badge, error) {
	var badge models.Badge
	err := r.db.GetContext(ctx, &badge, `SELECT * FROM badges WHERE badge_id = $1`, badgeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBadgeNotFound
		}
		return nil, fmt.Errorf("badge repository: get by badge id %w", err)
	}
	return &badge, nil
}

// List возвращает весь каталог значков.
func (r *BadgeRepository) List(ctx context.Context) ([]models.Badge, error) {
	var badges []models.Badge
	err := r.db.SelectContext(ctx, &badges, `SELECT * FROM badges ORDER BY badge_id`)
	if err != nil {
		return nil, fmt.Errorf("badge repository: list %w", err)
	}
	return badges, nil
}

// Upsert добавляет значок в каталог или обновляет его описание. Используется
// при посеве каталога на старте.
func (r *BadgeRepository) Upsert(ctx context.Context, badge *models.Badge) error {
	query := `
		INSERT INTO badges (badge_id, name, description, icon_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (badge_id) DO UPDATE
		SET name = EXCLUDED.name, description = EXCLUDED.description, icon_url = EXCLUDED.icon_url
	`
	if _, err := r.db.ExecContext(ctx, query,
		badge.BadgeID, badge.Name, badge.Description, badge.IconURL); err != nil {
		return fmt.Errorf("badge repository: upsert %w", err)
	}
	return nil
}

// Award выдаёт пользователю значок. Повторная выдача безвредна: возвращает
// awarded=false, строка не создаётся.
func (r *BadgeRepository) Award(ctx context.Context, userID uuid.UUID, badgeID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO user_badges (user_id, badge_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, badge_id) DO NOTHING
	`, userID, badgeID)
	if err != nil {
		return false, fmt.Errorf("badge repository: award %w", err)
	}
	affected, _ := res.RowsAffected()
	return affected > 0, nil
}
