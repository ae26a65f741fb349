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

// ErrTicketNotFound возвращается, когда тикет модерации не найден.
var ErrTicketNotFound = errors.New("report ticket not found")

// ReportRepository отвечает за таблицу report_tickets.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository создаёт экземпляр репозитория.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create сохраняет тикет модерации.
func (r *ReportRepository) Create(ctx context.Context, ticket *models.ReportTicket) error {
	query := `
		INSERT INTO report_tickets (reporter_id, report_type, reported_event_id, reported_user_id, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		ticket.ReporterID, ticket.ReportType, ticket.ReportedEvent, ticket.ReportedUser,
		ticket.Reason, ticket.Status,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
	if err != nil {
		return fmt.Errorf("report repository: create %w", err)
	}
	return nil
}

// GetByID возвращает тикет по идентификатору.
func (r *ReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ReportTicket, error) {
	var ticket models.ReportTicket
	err := r.db.GetContext(ctx, &ticket, `SELECT * FROM report_tickets WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("report repository: get by id %w", err)
	}
	return &ticket, nil
}

// List возвращает тикеты, новые первыми, с необязательным фильтром по статусу.
func (r *ReportRepository) List(ctx context.Context, status string) ([]models.ReportTicket, error) {
	var (
		tickets []models.ReportTicket
		err     error
	)
	if status != "" {
		err = r.db.SelectContext(ctx, &tickets,
			`SELECT * FROM report_tickets WHERE status = $1 ORDER BY created_at DESC`, status)
	} else {
		err = r.db.SelectContext(ctx, &tickets,
			`SELECT * FROM report_tickets ORDER BY created_at DESC`)
	}
	if err != nil {
		return nil, fmt.Errorf("report repository: list %w", err)
	}
	return tickets, nil
}

// UpdateStatus перезаписывает статус тикета.
func (r *ReportRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.ReportTicket, error) {
	var ticket models.ReportTicket
	err := r.db.GetContext(ctx, &ticket, `
		UPDATE report_tickets SET status = $2, updated_at = NOW() WHERE id = $1 RETURNING *
	`, id, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("report repository: update status %w", err)
	}
	return &ticket, nil
}
