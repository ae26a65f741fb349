package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ecoconnect/ecoconnect-backend/internal/models"
	"github.com/ecoconnect/ecoconnect-backend/internal/pkg/apperror"
	"github.com/ecoconnect/ecoconnect-backend/internal/repository"
	"github.com/ecoconnect/ecoconnect-backend/internal/validation"
)

// ReportRepo описывает хранилище тикетов модерации.
type ReportRepo interface {
	Create(ctx context.Context, ticket *models.ReportTicket) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ReportTicket, error)
	List(ctx context.Context, status string) ([]models.ReportTicket, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.ReportTicket, error)
}

// EventRepoForReport проверяет существование события-цели жалобы.
type EventRepoForReport interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
}

// UserRepoForReport проверяет существование пользователя-цели жалобы.
type UserRepoForReport interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// ReportInput содержит данные новой жалобы.
type ReportInput struct {
	ReportType    string
	ReportedEvent *uuid.UUID
	ReportedUser  *uuid.UUID
	Reason        string
}

// ReportService отвечает за жалобы и их разбор модераторами.
type ReportService struct {
	repo   ReportRepo
	events EventRepoForReport
	users  UserRepoForReport
}

// NewReportService создаёт сервис модерации.
func NewReportService(repo ReportRepo, events EventRepoForReport, users UserRepoForReport) *ReportService {
	return &ReportService{repo: repo, events: events, users: users}
}

// Create регистрирует жалобу. Тип определяет, какая цель обязательна;
// жаловаться на самого себя нельзя.
func (s *ReportService) Create(ctx context.Context, reporterID uuid.UUID, input ReportInput) (*models.ReportTicket, error) {
	if !models.ValidReportTypes[input.ReportType] {
		return nil, apperror.New(apperror.ErrCodeValidation, "неизвестный тип жалобы")
	}
	if err := validation.ValidateReason(input.Reason); err != nil {
		return nil, err
	}

	switch input.ReportType {
	case models.ReportTypeEvent:
		if input.ReportedEvent == nil {
			return nil, apperror.New(apperror.ErrCodeValidation, "не указано событие")
		}
		input.ReportedUser = nil
		if _, err := s.events.GetByID(ctx, *input.ReportedEvent); err != nil {
			if errors.Is(err, repository.ErrEventNotFound) {
				return nil, apperror.ErrEventNotFound
			}
			return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось проверить событие")
		}
	case models.ReportTypeUser:
		if input.ReportedUser == nil {
			return nil, apperror.New(apperror.ErrCodeValidation, "не указан пользователь")
		}
		input.ReportedEvent = nil
		if *input.ReportedUser == reporterID {
			return nil, apperror.New(apperror.ErrCodeValidation, "нельзя пожаловаться на самого себя")
		}
		if _, err := s.users.GetByID(ctx, *input.ReportedUser); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return nil, apperror.ErrUserNotFound
			}
			return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось проверить пользователя")
		}
	}

	ticket := &models.ReportTicket{
		ReporterID:    reporterID,
		ReportType:    input.ReportType,
		ReportedEvent: input.ReportedEvent,
		ReportedUser:  input.ReportedUser,
		Reason:        input.Reason,
		Status:        models.TicketStatusPending,
	}
	if err := s.repo.Create(ctx, ticket); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось создать жалобу")
	}
	return ticket, nil
}

// Get возвращает тикет по идентификатору.
func (s *ReportService) Get(ctx context.Context, id uuid.UUID) (*models.ReportTicket, error) {
	ticket, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return nil, apperror.ErrTicketNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось получить жалобу")
	}
	return ticket, nil
}

// List возвращает тикеты модерации с необязательным фильтром по статусу.
func (s *ReportService) List(ctx context.Context, status string) ([]models.ReportTicket, error) {
	if status != "" && !models.ValidTicketStatuses[status] {
		return nil, apperror.New(apperror.ErrCodeValidation, "неизвестный статус жалобы")
	}
	tickets, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось получить жалобы")
	}
	return tickets, nil
}

// UpdateStatus переводит тикет в новый статус. Любой переход разрешён:
// модератор может вернуть тикет в работу или переоткрыть решённый.
func (s *ReportService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.ReportTicket, error) {
	if !models.ValidTicketStatuses[status] {
		return nil, apperror.New(apperror.ErrCodeValidation, "неизвестный статус жалобы")
	}
	ticket, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return nil, apperror.ErrTicketNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось обновить жалобу")
	}
	return ticket, nil
}
