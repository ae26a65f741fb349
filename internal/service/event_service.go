package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ecoconnect/ecoconnect-backend/internal/logger"
	"github.com/ecoconnect/ecoconnect-backend/internal/models"
	"github.com/ecoconnect/ecoconnect-backend/internal/pkg/apperror"
	"github.com/ecoconnect/ecoconnect-backend/internal/repository"
	"github.com/ecoconnect/ecoconnect-backend/internal/validation"
)

// EventRepo описывает операции хранилища событий, которые использует сервис.
type EventRepo interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	List(ctx context.Context, statuses []string, filter repository.EventFilter, orderBy string) ([]models.Event, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]models.Event, error)
	ListJoined(ctx context.Context, userID uuid.UUID, statuses []string) ([]models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Event, error)
	UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to string) (*models.Event, error)
	AddParticipant(ctx context.Context, eventID, userID uuid.UUID) error
	RemoveParticipant(ctx context.Context, eventID, userID uuid.UUID) error
	ListParticipantIDs(ctx context.Context, eventID uuid.UUID) ([]uuid.UUID, error)
	ListParticipants(ctx context.Context, eventID uuid.UUID) ([]models.ParticipantInfo, error)
	GetCreatorInfo(ctx context.Context, eventID uuid.UUID) (*models.CreatorInfo, error)
}

// EventNotifier доставляет организатору уведомления о решениях модерации.
type EventNotifier interface {
	NotifyEventDecision(ctx context.Context, userID uuid.UUID, eventID uuid.UUID, approved bool)
}

// EventUpdateInput содержит редактируемые поля события. Nil означает
// "не менять".
type EventUpdateInput struct {
	Title         *string
	Description   *string
	Image         *string
	StartTime     *time.Time
	EndTime       *time.Time
	Location      *string
	MaxVolunteers *int
}

// EventService реализует жизненный цикл события: от создания через модерацию
// к участию и завершению с начислением наград.
type EventService struct {
	repo         EventRepo
	policy       *Policy
	gamification *GamificationService
	notifier     EventNotifier
	log          *logrus.Entry
}

// NewEventService создаёт сервис событий. notifier может быть nil.
func NewEventService(repo EventRepo, policy *Policy, gamification *GamificationService, notifier EventNotifier) *EventService {
	return &EventService{
		repo:         repo,
		policy:       policy,
		gamification: gamification,
		notifier:     notifier,
		log:          logger.WithComponent("events"),
	}
}

// Create сохраняет новое событие в статусе ожидания модерации.
func (s *EventService) Create(ctx context.Context, creatorID uuid.UUID, event *models.Event) (*models.Event, error) {
	if err := validation.ValidateEventInput(event.Title, event.Description, event.Location, event.MaxVolunteers); err != nil {
		return nil, err
	}
	if event.StartTime.IsZero() {
		return nil, apperror.New(apperror.ErrCodeValidation, "дата начала обязательна")
	}
	if event.EndTime != nil && event.EndTime.Before(event.StartTime) {
		return nil, apperror.New(apperror.ErrCodeValidation, "дата окончания раньше даты начала")
	}

	event.CreatedBy = creatorID
	event.Status = models.EventStatusPendingApproval
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось создать событие")
	}
	return event, nil
}

// ListPublic возвращает одобренные события, ближайшие по дате начала первыми.
func (s *EventService) ListPublic(ctx context.Context, location string) ([]models.Event, error) {
	events, err := s.repo.List(ctx,
		[]string{models.EventStatusApproved},
		repository.EventFilter{Location: location},
		"start_time ASC")
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось получить список событий")
	}
	return events, nil
}

// ListForAdmin возвращает события всех статусов с фильтрами модератора.
func (s *EventService) ListForAdmin(ctx context.Context, status, location string) ([]models.Event, error) {
	if status != "" && !models.ValidEventStatuses[status] {
		return nil, apperror.New(apperror.ErrCodeValidation, "неизвестный статус события")
	}
	events, err := s.repo.List(ctx, nil,
		repository.EventFilter{Status: status, Location: location},
		"created_at DESC")
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось получить список событий")
	}
	return events, nil
}

// EventDetails — карточка события: организатор и список участников.
type EventDetails struct {
	Event        *models.Event
	Creator      *models.CreatorInfo
	Participants []models.ParticipantInfo
}

// Get возвращает карточку события. Непубличные статусы наружу не отдаются:
// до одобрения и после отмены событие выглядит несуществующим.
func (s *EventService) Get(ctx context.Context, id uuid.UUID) (*EventDetails, error) {
	event, err := s.getEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.Status != models.EventStatusApproved && event.Status != models.EventStatusCompleted {
		return nil, apperror.ErrEventNotFound
	}
	creator, err := s.repo.GetCreatorInfo(ctx, id)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось получить организатора")
	}
	participants, err := s.repo.ListParticipants(ctx, id)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось получить участников")
	}
	return &EventDetails{Event: event, Creator: creator, Participants: participants}, nil
}

// Update редактирует событие. Доступно только организатору и только до
// решения модерации.
func (s *EventService) Update(ctx context.Context, eventID, userID uuid.UUID, input EventUpdateInput) (*models.Event, error) {
	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.RequireOwner(event, userID); err != nil {
		return nil, err
	}
	if event.Status != models.EventStatusPendingApproval {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "событие можно редактировать только до одобрения")
	}

	applyEventUpdate(event, input)

	if err := validation.ValidateEventInput(event.Title, event.Description, event.Location, event.MaxVolunteers); err != nil {
		return nil, err
	}
	if event.EndTime != nil && event.EndTime.Before(event.StartTime) {
		return nil, apperror.New(apperror.ErrCodeValidation, "дата окончания раньше даты начала")
	}

	if err := s.repo.Update(ctx, event); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, apperror.ErrEventNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось обновить событие")
	}
	return event, nil
}

// Delete удаляет событие. Доступно только организатору; одобренные и
// завершённые события удалять нельзя.
func (s *EventService) Delete(ctx context.Context, eventID, userID uuid.UUID) error {
	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if err := s.policy.RequireOwner(event, userID); err != nil {
		return err
	}
	if event.Status == models.EventStatusApproved || event.Status == models.EventStatusCompleted {
		return apperror.New(apperror.ErrCodeInvalidState, "одобренное или завершённое событие удалить нельзя")
	}

	if err := s.repo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return apperror.ErrEventNotFound
		}
		return apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось удалить событие")
	}
	return nil
}

// Join записывает пользователя участником события. Порядок проверок
// фиксирован: существование, статус, вместимость, повторное участие.
func (s *EventService) Join(ctx context.Context, eventID, userID uuid.UUID) error {
	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if event.Status != models.EventStatusApproved {
		return apperror.New(apperror.ErrCodeInvalidState, "событие недоступно для участия")
	}

	err = s.repo.AddParticipant(ctx, eventID, userID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrEventFull):
		return apperror.New(apperror.ErrCodeCapacityExceeded, "свободных мест больше нет")
	case errors.Is(err, repository.ErrAlreadyParticipant):
		return apperror.New(apperror.ErrCodeAlreadyJoined, "вы уже участвуете в этом событии")
	case errors.Is(err, repository.ErrEventNotFound):
		return apperror.ErrEventNotFound
	default:
		return apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось присоединиться к событию")
	}
}

// Leave убирает пользователя из участников.
func (s *EventService) Leave(ctx context.Context, eventID, userID uuid.UUID) error {
	if _, err := s.getEvent(ctx, eventID); err != nil {
		return err
	}

	err := s.repo.RemoveParticipant(ctx, eventID, userID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotParticipant):
		return apperror.New(apperror.ErrCodeNotParticipant, "вы не участвуете в этом событии")
	default:
		return apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось покинуть событие")
	}
}

// Complete завершает событие. Переход из APPROVED выполняется условным
// обновлением, поэтому награды за одно событие начисляются ровно один раз.
func (s *EventService) Complete(ctx context.Context, eventID, userID uuid.UUID) (*models.Event, error) {
	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.RequireOwner(event, userID); err != nil {
		return nil, err
	}
	if event.Status != models.EventStatusApproved {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "завершить можно только одобренное событие")
	}

	// Снимок участников берём до перевода статуса: состав фиксируется
	// на момент завершения.
	participantIDs, err := s.repo.ListParticipantIDs(ctx, eventID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось получить участников")
	}

	completed, err := s.repo.UpdateStatusIf(ctx, eventID, models.EventStatusApproved, models.EventStatusCompleted)
	if err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, apperror.New(apperror.ErrCodeInvalidState, "завершить можно только одобренное событие")
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось завершить событие")
	}

	if err := s.gamification.AwardCompletionPoints(ctx, completed.CreatedBy, participantIDs); err != nil {
		s.log.WithError(err).WithField("event_id", eventID).Error("начисление очков не удалось")
		return nil, err
	}

	s.gamification.EvaluateBadgesAsync(append(participantIDs, completed.CreatedBy)...)

	return completed, nil
}

// Approve одобряет событие, делая его видимым в публичном списке.
func (s *EventService) Approve(ctx context.Context, eventID uuid.UUID) (*models.Event, error) {
	return s.decide(ctx, eventID, models.EventStatusApproved, true)
}

// Reject отклоняет событие.
func (s *EventService) Reject(ctx context.Context, eventID uuid.UUID) (*models.Event, error) {
	return s.decide(ctx, eventID, models.EventStatusCancelled, false)
}

// ListCreated возвращает события пользователя-организатора.
func (s *EventService) ListCreated(ctx context.Context, userID uuid.UUID) ([]models.Event, error) {
	events, err := s.repo.ListByCreator(ctx, userID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось получить события")
	}
	return events, nil
}

// History возвращает историю активности: созданные события и те, в которых
// пользователь участвует, из одобренных и завершённых.
func (s *EventService) History(ctx context.Context, userID uuid.UUID) (created, joined []models.Event, err error) {
	created, err = s.repo.ListByCreator(ctx, userID)
	if err != nil {
		return nil, nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось получить историю")
	}
	joined, err = s.repo.ListJoined(ctx, userID,
		[]string{models.EventStatusApproved, models.EventStatusCompleted})
	if err != nil {
		return nil, nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось получить историю")
	}
	return created, joined, nil
}

func (s *EventService) decide(ctx context.Context, eventID uuid.UUID, status string, approved bool) (*models.Event, error) {
	event, err := s.repo.UpdateStatus(ctx, eventID, status)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, apperror.ErrEventNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось изменить статус события")
	}

	if s.notifier != nil {
		s.notifier.NotifyEventDecision(ctx, event.CreatedBy, event.ID, approved)
	}
	return event, nil
}

func (s *EventService) getEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, apperror.ErrEventNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось получить событие")
	}
	return event, nil
}

func applyEventUpdate(event *models.Event, input EventUpdateInput) {
	if input.Title != nil {
		event.Title = *input.Title
	}
	if input.Description != nil {
		event.Description = *input.Description
	}
	if input.Image != nil {
		event.Image = *input.Image
	}
	if input.StartTime != nil {
		event.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		event.EndTime = input.EndTime
	}
	if input.Location != nil {
		event.Location = *input.Location
	}
	if input.MaxVolunteers != nil {
		event.MaxVolunteers = *input.MaxVolunteers
	}
}
