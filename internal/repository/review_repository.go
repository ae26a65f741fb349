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

// ErrDuplicateReview возвращается при повторном отзыве того же автора на то же событие.
var ErrDuplicateReview = errors.New("duplicate review")

// ReviewRepository отвечает за таблицу reviews.
type ReviewRepository struct {
	db *sqlx.DB
}

// NewReviewRepository создаёт экземпляр репозитория.
func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create сохраняет отзыв. Уникальность пары (событие, автор) обеспечивается
// ограничением БД, поэтому гонка двух одинаковых отзывов невозможна.
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	query := `
		INSERT INTO reviews (event_id, reviewer_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		review.EventID, review.ReviewerID, review.Rating, review.Comment,
	).Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateReview
		}
		return fmt.Errorf("review repository: create %w", err)
	}
	return nil
}

// Exists сообщает, оставлял ли пользователь отзыв на событие.
func (r *ReviewRepository) Exists(ctx context.Context, eventID, reviewerID uuid.UUID) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM reviews WHERE event_id = $1 AND reviewer_id = $2`, eventID, reviewerID)
	if err != nil {
		return false, fmt.Errorf("review repository: exists %w", err)
	}
	return count > 0, nil
}

// ListByEvent возвращает отзывы на событие с данными авторов, новые первыми.
func (r *ReviewRepository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]models.ReviewWithReviewer, error) {
	var reviews []models.ReviewWithReviewer
	err := r.db.SelectContext(ctx, &reviews, `
		SELECT rv.*, u.display_name AS reviewer_name, u.avatar AS reviewer_avatar
		FROM reviews rv
		JOIN users u ON u.id = rv.reviewer_id
		WHERE rv.event_id = $1
		ORDER BY rv.created_at DESC
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("review repository: list by event %w", err)
	}
	return reviews, nil
}

// AverageRating возвращает среднюю оценку события и число отзывов.
func (r *ReviewRepository) AverageRating(ctx context.Context, eventID uuid.UUID) (float64, int, error) {
	var row struct {
		Avg   sql.NullFloat64 `db:"avg"`
		Count int             `db:"count"`
	}
	err := r.db.GetContext(ctx, &row,
		`SELECT AVG(rating) AS avg, COUNT(*) AS count FROM reviews WHERE event_id = $1`, eventID)
	if err != nil {
		return 0, 0, fmt.Errorf("review repository: average rating %w", err)
	}
	return row.Avg.Float64, row.Count, nil
}
