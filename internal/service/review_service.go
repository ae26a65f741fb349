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

// ReviewRepo описывает хранилище отзывов.
type ReviewRepo interface {
	Create(ctx context.Context, review *models.Review) error
	Exists(ctx context.Context, eventID, reviewerID uuid.UUID) (bool, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]models.ReviewWithReviewer, error)
	AverageRating(ctx context.Context, eventID uuid.UUID) (float64, int, error)
}

// EventRepoForReview описывает операции над событиями, нужные отзывам.
type EventRepoForReview interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	IsParticipant(ctx context.Context, eventID, userID uuid.UUID) (bool, error)
}

// ReviewService отвечает за отзывы на завершённые события.
type ReviewService struct {
	repo   ReviewRepo
	events EventRepoForReview
}

// NewReviewService создаёт сервис отзывов.
func NewReviewService(repo ReviewRepo, events EventRepoForReview) *ReviewService {
	return &ReviewService{repo: repo, events: events}
}

// Create сохраняет отзыв. Отзыв доступен только участнику завершённого
// события, по одному на событие.
func (s *ReviewService) Create(ctx context.Context, eventID, reviewerID uuid.UUID, rating int, comment *string) (*models.Review, error) {
	if err := validation.ValidateRating(rating); err != nil {
		return nil, err
	}
	if err := validation.ValidateComment(comment); err != nil {
		return nil, err
	}

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, apperror.ErrEventNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось получить событие")
	}
	if event.Status != models.EventStatusCompleted {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "отзыв можно оставить только на завершённое событие")
	}

	isParticipant, err := s.events.IsParticipant(ctx, eventID, reviewerID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось проверить участие")
	}
	if !isParticipant {
		return nil, apperror.New(apperror.ErrCodeForbidden, "отзыв доступен только участникам события")
	}

	exists, err := s.repo.Exists(ctx, eventID, reviewerID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось проверить отзыв")
	}
	if exists {
		return nil, apperror.New(apperror.ErrCodeConflict, "вы уже оставили отзыв на это событие")
	}

	review := &models.Review{
		EventID:    eventID,
		ReviewerID: reviewerID,
		Rating:     rating,
		Comment:    comment,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		// Гонка двух одинаковых отзывов разрешается ограничением БД.
		if errors.Is(err, repository.ErrDuplicateReview) {
			return nil, apperror.New(apperror.ErrCodeConflict, "вы уже оставили отзыв на это событие")
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось сохранить отзыв")
	}
	return review, nil
}

// ListByEvent возвращает отзывы на событие, новые первыми.
func (s *ReviewService) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]models.ReviewWithReviewer, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, apperror.ErrEventNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось получить событие")
	}

	reviews, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось получить отзывы")
	}
	return reviews, nil
}

// EventRating возвращает среднюю оценку события и число отзывов.
func (s *ReviewService) EventRating(ctx context.Context, eventID uuid.UUID) (float64, int, error) {
	avg, count, err := s.repo.AverageRating(ctx, eventID)
	if err != nil {
		return 0, 0, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось получить рейтинг")
	}
	return avg, count, nil
}
