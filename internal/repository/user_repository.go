package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ecoconnect/ecoconnect-backend/internal/models"
)

// ErrUserNotFound возвращается, когда запись пользователя не найдена.
var ErrUserNotFound = errors.New("user not found")

// UserRepository отвечает за работу с таблицами users и user_badges.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository создаёт экземпляр репозитория.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create создаёт нового пользователя, пришедшего через Zalo.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (zalo_id, display_name, avatar, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, points, created_at, updated_at
	`
	if err := r.db.QueryRowxContext(
		ctx, query,
		user.ZaloID, user.DisplayName, user.Avatar, user.Role,
	).Scan(&user.ID, &user.Points, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return fmt.Errorf("user repository: create %w", err)
	}
	return nil
}

// CreateAdmin создаёт локальную учётную запись администратора.
func (r *UserRepository) CreateAdmin(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (display_name, role, email, password_hash)
		VALUES ($1, 'ADMIN', $2, $3)
		ON CONFLICT (email) DO NOTHING
		RETURNING id, points, created_at, updated_at
	`
	err := r.db.QueryRowxContext(
		ctx, query,
		user.DisplayName, user.Email, user.PasswordHash,
	).Scan(&user.ID, &user.Points, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		// Администратор с таким email уже существует.
		return nil
	}
	if err != nil {
		return fmt.Errorf("user repository: create admin %w", err)
	}
	return nil
}

// GetByID возвращает пользователя по идентификатору.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.getBy(ctx, `WHERE id = $1`, id)
}

// GetByZaloID возвращает пользователя по идентификатору Zalo.
func (r *UserRepository) GetByZaloID(ctx context.Context, zaloID string) (*models.User, error) {
	return r.getBy(ctx, `WHERE zalo_id = $1`, zaloID)
}

// GetByEmail возвращает пользователя по email (только локальные админы).
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getBy(ctx, `WHERE email = $1`, email)
}

func (r *UserRepository) getBy(ctx context.Context, where string, arg interface{}) (*models.User, error) {
	query := `
		SELECT id, zalo_id, display_name, avatar, role, email, password_hash,
		       skills, interests, location, points, created_at, updated_at
		FROM users ` + where

	var user models.User
	var skills, interests pq.StringArray
	err := r.db.QueryRowxContext(ctx, query, arg).Scan(
		&user.ID, &user.ZaloID, &user.DisplayName, &user.Avatar, &user.Role,
		&user.Email, &user.PasswordHash, &skills, &interests,
		&user.Location, &user.Points, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user repository: get %w", err)
	}

	user.Skills = []string(skills)
	user.Interests = []string(interests)
	return &user, nil
}

// UpdateIdentity обновляет отображаемое имя и аватар при входе через Zalo.
func (r *UserRepository) UpdateIdentity(ctx context.Context, id uuid.UUID, displayName, avatar string) error {
	query := `
		UPDATE users
		SET display_name = COALESCE(NULLIF($2, ''), display_name),
		    avatar = COALESCE(NULLIF($3, ''), avatar),
		    updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id, displayName, avatar)
	if err != nil {
		return fmt.Errorf("user repository: update identity %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdateProfile перезаписывает профильные поля пользователя.
func (r *UserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, skills, interests []string, location string) (*models.User, error) {
	query := `
		UPDATE users
		SET skills = $2, interests = $3, location = $4, updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id, pq.Array(skills), pq.Array(interests), location)
	if err != nil {
		return nil, fmt.Errorf("user repository: update profile %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, ErrUserNotFound
	}
	return r.GetByID(ctx, id)
}

// IncrementPoints атомарно увеличивает счётчик очков пользователя.
func (r *UserRepository) IncrementPoints(ctx context.Context, id uuid.UUID, delta int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET points = points + $2, updated_at = NOW() WHERE id = $1`, id, delta)
	if err != nil {
		return fmt.Errorf("user repository: increment points %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// BulkIncrementPoints атомарно увеличивает очки всем перечисленным пользователям
// одним запросом, без чтения-изменения-записи.
func (r *UserRepository) BulkIncrementPoints(ctx context.Context, ids []uuid.UUID, delta int) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET points = points + $1, updated_at = NOW() WHERE id = ANY($2)`,
		delta, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("user repository: bulk increment points %w", err)
	}
	return nil
}

// ListBadges возвращает бейджи пользователя вместе с данными каталога.
func (r *UserRepository) ListBadges(ctx context.Context, userID uuid.UUID) ([]models.UserBadgeDetailed, error) {
	var badges []models.UserBadgeDetailed
	err := r.db.SelectContext(ctx, &badges, `
		SELECT ub.badge_id, b.name, b.description, b.icon_url, ub.date_achieved
		FROM user_badges ub
		JOIN badges b ON b.badge_id = ub.badge_id
		WHERE ub.user_id = $1
		ORDER BY ub.date_achieved
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("user repository: list badges %w", err)
	}
	return badges, nil
}
