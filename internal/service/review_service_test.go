package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ecoconnect/ecoconnect-backend/internal/models"
	"github.com/ecoconnect/ecoconnect-backend/internal/pkg/apperror"
	"github.com/ecoconnect/ecoconnect-backend/internal/repository"
)

type mockReviewRepo struct {
	mock.Mock
}

func (m *mockReviewRepo) Create(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	if args.Error(0) == nil {
		review.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockReviewRepo) Exists(ctx context.Context, eventID, reviewerID uuid.UUID) (bool, error) {
	args := m.Called(ctx, eventID, reviewerID)
	return args.Bool(0), args.Error(1)
}

func (m *mockReviewRepo) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]models.ReviewWithReviewer, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).([]models.ReviewWithReviewer), args.Error(1)
}

func (m *mockReviewRepo) AverageRating(ctx context.Context, eventID uuid.UUID) (float64, int, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).(float64), args.Int(1), args.Error(2)
}

type mockEventRepoForReview struct {
	mock.Mock
}

func (m *mockEventRepoForReview) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *mockEventRepoForReview) IsParticipant(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, eventID, userID)
	return args.Bool(0), args.Error(1)
}

func TestReviewService_Create_Success(t *testing.T) {
	reviewRepo := new(mockReviewRepo)
	eventRepo := new(mockEventRepoForReview)
	svc := NewReviewService(reviewRepo, eventRepo)
	ctx := context.Background()

	eventID := uuid.New()
	reviewerID := uuid.New()

	event := &models.Event{
		ID:     eventID,
		Status: models.EventStatusCompleted,
	}

	eventRepo.On("GetByID", ctx, eventID).Return(event, nil)
	eventRepo.On("IsParticipant", ctx, eventID, reviewerID).Return(true, nil)
	reviewRepo.On("Exists", ctx, eventID, reviewerID).Return(false, nil)
	reviewRepo.On("Create", ctx, mock.AnythingOfType("*models.Review")).Return(nil)

	comment := "Отличная уборка парка!"
	review, err := svc.Create(ctx, eventID, reviewerID, 5, &comment)

	assert.NoError(t, err)
	assert.NotNil(t, review)
	assert.Equal(t, eventID, review.EventID)
	assert.Equal(t, reviewerID, review.ReviewerID)
	assert.Equal(t, 5, review.Rating)
}

func TestReviewService_Create_InvalidRating(t *testing.T) {
	svc := NewReviewService(new(mockReviewRepo), new(mockEventRepoForReview))
	ctx := context.Background()

	_, err := svc.Create(ctx, uuid.New(), uuid.New(), 0, nil)
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.Create(ctx, uuid.New(), uuid.New(), 6, nil)
	assert.True(t, apperror.IsValidation(err))
}

func TestReviewService_Create_EventNotFound(t *testing.T) {
	reviewRepo := new(mockReviewRepo)
	eventRepo := new(mockEventRepoForReview)
	svc := NewReviewService(reviewRepo, eventRepo)
	ctx := context.Background()

	eventID := uuid.New()
	eventRepo.On("GetByID", ctx, eventID).Return(nil, repository.ErrEventNotFound)

	_, err := svc.Create(ctx, eventID, uuid.New(), 4, nil)
	assert.True(t, apperror.IsNotFound(err))
}

func TestReviewService_Create_EventNotCompleted(t *testing.T) {
	reviewRepo := new(mockReviewRepo)
	eventRepo := new(mockEventRepoForReview)
	svc := NewReviewService(reviewRepo, eventRepo)
	ctx := context.Background()

	eventID := uuid.New()
	event := &models.Event{ID: eventID, Status: models.EventStatusApproved}
	eventRepo.On("GetByID", ctx, eventID).Return(event, nil)

	_, err := svc.Create(ctx, eventID, uuid.New(), 4, nil)
	assert.True(t, apperror.IsInvalidState(err))
}

func TestReviewService_Create_NotParticipant(t *testing.T) {
	reviewRepo := new(mockReviewRepo)
	eventRepo := new(mockEventRepoForReview)
	svc := NewReviewService(reviewRepo, eventRepo)
	ctx := context.Background()

	eventID := uuid.New()
	reviewerID := uuid.New()
	event := &models.Event{ID: eventID, Status: models.EventStatusCompleted}

	eventRepo.On("GetByID", ctx, eventID).Return(event, nil)
	eventRepo.On("IsParticipant", ctx, eventID, reviewerID).Return(false, nil)

	_, err := svc.Create(ctx, eventID, reviewerID, 4, nil)
	assert.True(t, apperror.IsForbidden(err))
	reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewService_Create_Duplicate(t *testing.T) {
	reviewRepo := new(mockReviewRepo)
	eventRepo := new(mockEventRepoForReview)
	svc := NewReviewService(reviewRepo, eventRepo)
	ctx := context.Background()

	eventID := uuid.New()
	reviewerID := uuid.New()
	event := &models.Event{ID: eventID, Status: models.EventStatusCompleted}

	eventRepo.On("GetByID", ctx, eventID).Return(event, nil)
	eventRepo.On("IsParticipant", ctx, eventID, reviewerID).Return(true, nil)
	reviewRepo.On("Exists", ctx, eventID, reviewerID).Return(true, nil)

	_, err := svc.Create(ctx, eventID, reviewerID, 4, nil)
	assert.True(t, apperror.IsConflict(err))
}

func TestReviewService_Create_DuplicateRace(t *testing.T) {
	reviewRepo := new(mockReviewRepo)
	eventRepo := new(mockEventRepoForReview)
	svc := NewReviewService(reviewRepo, eventRepo)
	ctx := context.Background()

	eventID := uuid.New()
	reviewerID := uuid.New()
	event := &models.Event{ID: eventID, Status: models.EventStatusCompleted}

	// Предварительная проверка прошла, но вставка упёрлась в ограничение БД.
	eventRepo.On("GetByID", ctx, eventID).Return(event, nil)
	eventRepo.On("IsParticipant", ctx, eventID, reviewerID).Return(true, nil)
	reviewRepo.On("Exists", ctx, eventID, reviewerID).Return(false, nil)
	reviewRepo.On("Create", ctx, mock.AnythingOfType("*models.Review")).Return(repository.ErrDuplicateReview)

	_, err := svc.Create(ctx, eventID, reviewerID, 4, nil)
	assert.True(t, apperror.IsConflict(err))
}
