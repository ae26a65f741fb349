package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ecoconnect/ecoconnect-backend/internal/models"
)

var (
	// ErrEventNotFound возвращается, когда событие не найдено.
	ErrEventNotFound = errors.New("event not found")
	// ErrEventFull возвращается атомарной вставкой участника при исчерпанном лимите.
	ErrEventFull = errors.New("event is full")
	// ErrAlreadyParticipant возвращается при повторной попытке вступить.
	ErrAlreadyParticipant = errors.New("already a participant")
	// ErrNotParticipant возвращается при выходе пользователя, которого нет в событии.
	ErrNotParticipant = errors.New("not a participant")
	// ErrStatusConflict возвращается условным обновлением статуса, если ожидаемый
	// статус уже изменился (проигранная гонка).
	ErrStatusConflict = errors.New("event status changed concurrently")
)

// EventFilter описывает фильтры списочных запросов.
type EventFilter struct {
	Status   string // точное совпадение
	Location string // подстрока, без учёта регистра
}

// EventRepository отвечает за работу с таблицами events и event_participants.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository создаёт экземпляр репозитория.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create сохраняет новое событие.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (title, description, image, start_time, end_time, location, max_volunteers, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`
	if err := r.db.QueryRowxContext(ctx, query,
		event.Title, event.Description, event.Image, event.StartTime, event.EndTime,
		event.Location, event.MaxVolunteers, event.Status, event.CreatedBy,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt); err != nil {
		return fmt.Errorf("event repository: create %w", err)
	}
	return nil
}

// GetByID возвращает событие по идентификатору.
func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var event models.Event
	err := r.db.GetContext(ctx, &event, `SELECT * FROM events WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("event repository: get by id %w", err)
	}
	return &event, nil
}

// List возвращает события по фильтру. Статусы передаются явно, чтобы публичный
// список и админский использовали один и тот же запрос.
func (r *EventRepository) List(ctx context.Context, statuses []string, filter EventFilter, orderBy string) ([]models.Event, error) {
	var (
		conds []string
		args  []interface{}
	)

	if len(statuses) > 0 {
		placeholders := make([]string, 0, len(statuses))
		for _, s := range statuses {
			args = append(args, s)
			placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
		}
		conds = append(conds, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ", ")))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Location != "" {
		args = append(args, "%"+filter.Location+"%")
		conds = append(conds, fmt.Sprintf("location ILIKE $%d", len(args)))
	}

	query := `SELECT * FROM events`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	if orderBy == "" {
		orderBy = "created_at DESC"
	}
	query += " ORDER BY " + orderBy

	var events []models.Event
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, fmt.Errorf("event repository: list %w", err)
	}
	return events, nil
}

// ListByCreator возвращает события, созданные пользователем.
func (r *EventRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]models.Event, error) {
	var events []models.Event
	err := r.db.SelectContext(ctx, &events,
		`SELECT * FROM events WHERE created_by = $1 ORDER BY created_at DESC`, creatorID)
	if err != nil {
		return nil, fmt.Errorf("event repository: list by creator %w", err)
	}
	return events, nil
}

// ListJoined возвращает события из указанных статусов, в которых пользователь участвует.
func (r *EventRepository) ListJoined(ctx context.Context, userID uuid.UUID, statuses []string) ([]models.Event, error) {
	var events []models.Event
	err := r.db.SelectContext(ctx, &events, `
		SELECT e.* FROM events e
		JOIN event_participants p ON p.event_id = e.id
		WHERE p.user_id = $1 AND e.status = ANY($2)
		ORDER BY e.start_time DESC
	`, userID, pq.Array(statuses))
	if err != nil {
		return nil, fmt.Errorf("event repository: list joined %w", err)
	}
	return events, nil
}

// Update перезаписывает редактируемые поля события.
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	query := `
		UPDATE events
		SET title = $2, description = $3, image = $4, start_time = $5,
		    end_time = $6, location = $7, max_volunteers = $8, updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		event.ID, event.Title, event.Description, event.Image,
		event.StartTime, event.EndTime, event.Location, event.MaxVolunteers)
	if err != nil {
		return fmt.Errorf("event repository: update %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrEventNotFound
	}
	return nil
}

// Delete удаляет событие.
func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("event repository: delete %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrEventNotFound
	}
	return nil
}

// UpdateStatus безусловно переводит событие в указанный статус (approve/reject).
func (r *EventRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Event, error) {
	var event models.Event
	err := r.db.GetContext(ctx, &event, `
		UPDATE events SET status = $2, updated_at = NOW() WHERE id = $1 RETURNING *
	`, id, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("event repository: update status %w", err)
	}
	return &event, nil
}

// UpdateStatusIf переводит событие из ожидаемого статуса в новый одним условным
// обновлением. Две конкурирующие операции complete не пройдут обе: проигравшая
// получает ErrStatusConflict.
func (r *EventRepository) UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to string) (*models.Event, error) {
	var event models.Event
	err := r.db.GetContext(ctx, &event, `
		UPDATE events SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING *
	`, id, from, to)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStatusConflict
		}
		return nil, fmt.Errorf("event repository: conditional update status %w", err)
	}
	return &event, nil
}

// AddParticipant атомарно добавляет участника, если он ещё не состоит в событии
// и лимит не исчерпан. Проверка вместимости и вставка выполняются одним
// запросом, поэтому две конкурирующие попытки не превысят лимит.
func (r *EventRepository) AddParticipant(ctx context.Context, eventID, userID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO event_participants (event_id, user_id)
		SELECT e.id, $2
		FROM events e
		WHERE e.id = $1
		  AND (e.max_volunteers = 0
		       OR (SELECT COUNT(*) FROM event_participants p WHERE p.event_id = e.id) < e.max_volunteers)
		ON CONFLICT (event_id, user_id) DO NOTHING
	`, eventID, userID)
	if err != nil {
		return fmt.Errorf("event repository: add participant %w", err)
	}

	affected, _ := res.RowsAffected()
	if affected > 0 {
		return nil
	}

	// Вставка не прошла: различаем причину. Сначала вместимость, затем членство,
	// чтобы порядок ошибок совпадал с контрактом join.
	full, err := r.isFull(ctx, eventID)
	if err != nil {
		return err
	}
	if full {
		return ErrEventFull
	}
	return ErrAlreadyParticipant
}

// RemoveParticipant атомарно удаляет участника из события.
func (r *EventRepository) RemoveParticipant(ctx context.Context, eventID, userID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM event_participants WHERE event_id = $1 AND user_id = $2`, eventID, userID)
	if err != nil {
		return fmt.Errorf("event repository: remove participant %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotParticipant
	}
	return nil
}

// IsParticipant сообщает, состоит ли пользователь в событии.
func (r *EventRepository) IsParticipant(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM event_participants WHERE event_id = $1 AND user_id = $2`, eventID, userID)
	if err != nil {
		return false, fmt.Errorf("event repository: is participant %w", err)
	}
	return count > 0, nil
}

// ListParticipantIDs возвращает идентификаторы участников в порядке вступления.
func (r *EventRepository) ListParticipantIDs(ctx context.Context, eventID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.SelectContext(ctx, &ids,
		`SELECT user_id FROM event_participants WHERE event_id = $1 ORDER BY joined_at`, eventID)
	if err != nil {
		return nil, fmt.Errorf("event repository: list participant ids %w", err)
	}
	return ids, nil
}

// ListParticipants возвращает участников с публичными данными, в порядке вступления.
func (r *EventRepository) ListParticipants(ctx context.Context, eventID uuid.UUID) ([]models.ParticipantInfo, error) {
	var participants []models.ParticipantInfo
	err := r.db.SelectContext(ctx, &participants, `
		SELECT p.user_id, u.display_name, u.avatar, p.joined_at
		FROM event_participants p
		JOIN users u ON u.id = p.user_id
		WHERE p.event_id = $1
		ORDER BY p.joined_at
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("event repository: list participants %w", err)
	}
	return participants, nil
}

// GetCreatorInfo возвращает публичные данные организатора.
func (r *EventRepository) GetCreatorInfo(ctx context.Context, eventID uuid.UUID) (*models.CreatorInfo, error) {
	var info models.CreatorInfo
	err := r.db.GetContext(ctx, &info, `
		SELECT u.id AS user_id, u.display_name, u.avatar
		FROM events e
		JOIN users u ON u.id = e.created_by
		WHERE e.id = $1
	`, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("event repository: get creator info %w", err)
	}
	return &info, nil
}

// CountCompletedParticipations возвращает число завершённых событий,
// в которых пользователь участвовал. Полный пересчёт агрегацией: источником
// истины остаются сами события, а не инкрементные счётчики.
func (r *EventRepository) CountCompletedParticipations(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*)
		FROM events e
		JOIN event_participants p ON p.event_id = e.id
		WHERE p.user_id = $1 AND e.status = 'COMPLETED'
	`, userID)
	if err != nil {
		return 0, fmt.Errorf("event repository: count completed participations %w", err)
	}
	return count, nil
}

// CountCompletedCreated возвращает число завершённых событий, созданных пользователем.
func (r *EventRepository) CountCompletedCreated(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM events WHERE created_by = $1 AND status = 'COMPLETED'`, userID)
	if err != nil {
		return 0, fmt.Errorf("event repository: count completed created %w", err)
	}
	return count, nil
}

func (r *EventRepository) isFull(ctx context.Context, eventID uuid.UUID) (bool, error) {
	var full bool
	err := r.db.GetContext(ctx, &full, `
		SELECT e.max_volunteers > 0
		       AND (SELECT COUNT(*) FROM event_participants p WHERE p.event_id = e.id) >= e.max_volunteers
		FROM events e
		WHERE e.id = $1
	`, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrEventNotFound
		}
		return false, fmt.Errorf("event repository: is full %w", err)
	}
	return full, nil
}
