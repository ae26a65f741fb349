package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ecoconnect/ecoconnect-backend/internal/models"
	"github.com/ecoconnect/ecoconnect-backend/internal/pkg/apperror"
	"github.com/ecoconnect/ecoconnect-backend/internal/repository"
)

type mockEventRepo struct {
	mock.Mock
}

func (m *mockEventRepo) Create(ctx context.Context, event *models.Event) error {
	args := m.Called(ctx, event)
	if args.Error(0) == nil {
		event.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockEventRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *mockEventRepo) List(ctx context.Context, statuses []string, filter repository.EventFilter, orderBy string) ([]models.Event, error) {
	args := m.Called(ctx, statuses, filter, orderBy)
	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *mockEventRepo) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]models.Event, error) {
	args := m.Called(ctx, creatorID)
	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *mockEventRepo) ListJoined(ctx context.Context, userID uuid.UUID, statuses []string) ([]models.Event, error) {
	args := m.Called(ctx, userID, statuses)
	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *mockEventRepo) Update(ctx context.Context, event *models.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *mockEventRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockEventRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Event, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *mockEventRepo) UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to string) (*models.Event, error) {
	args := m.Called(ctx, id, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *mockEventRepo) AddParticipant(ctx context.Context, eventID, userID uuid.UUID) error {
	args := m.Called(ctx, eventID, userID)
	return args.Error(0)
}

func (m *mockEventRepo) RemoveParticipant(ctx context.Context, eventID, userID uuid.UUID) error {
	args := m.Called(ctx, eventID, userID)
	return args.Error(0)
}

func (m *mockEventRepo) ListParticipantIDs(ctx context.Context, eventID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *mockEventRepo) ListParticipants(ctx context.Context, eventID uuid.UUID) ([]models.ParticipantInfo, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).([]models.ParticipantInfo), args.Error(1)
}

func (m *mockEventRepo) GetCreatorInfo(ctx context.Context, eventID uuid.UUID) (*models.CreatorInfo, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CreatorInfo), args.Error(1)
}

func newTestEventService(repo *mockEventRepo, points *fakePointsStore, counts *fakeCompletionCounts, badges *fakeBadgeStore) *EventService {
	gamification := NewGamificationService(DefaultGamificationConfig(), points, counts, badges, nil)
	return NewEventService(repo, NewPolicy(), gamification, nil)
}

func newSimpleEventService(repo *mockEventRepo) *EventService {
	return newTestEventService(repo, newFakePointsStore(), newFakeCompletionCounts(), newFakeBadgeStore())
}

func validEvent(creatorID uuid.UUID, status string) *models.Event {
	return &models.Event{
		ID:            uuid.New(),
		Title:         "Уборка набережной",
		Description:   "Собираем мусор вдоль набережной, инвентарь выдаём на месте",
		StartTime:     time.Now().Add(48 * time.Hour),
		Location:      "Ханой",
		MaxVolunteers: 10,
		Status:        status,
		CreatedBy:     creatorID,
	}
}

func TestEventService_Create_StartsPendingApproval(t *testing.T) {
	repo := new(mockEventRepo)
	svc := newSimpleEventService(repo)
	ctx := context.Background()

	creatorID := uuid.New()
	repo.On("Create", ctx, mock.AnythingOfType("*models.Event")).Return(nil)

	event := validEvent(uuid.Nil, "")
	created, err := svc.Create(ctx, creatorID, event)

	require.NoError(t, err)
	assert.Equal(t, models.EventStatusPendingApproval, created.Status)
	assert.Equal(t, creatorID, created.CreatedBy)
}

func TestEventService_Create_Validation(t *testing.T) {
	svc := newSimpleEventService(new(mockEventRepo))
	ctx := context.Background()

	event := validEvent(uuid.Nil, "")
	event.Title = "ab"
	_, err := svc.Create(ctx, uuid.New(), event)
	assert.True(t, apperror.IsValidation(err))

	event = validEvent(uuid.Nil, "")
	event.StartTime = time.Time{}
	_, err = svc.Create(ctx, uuid.New(), event)
	assert.True(t, apperror.IsValidation(err))

	event = validEvent(uuid.Nil, "")
	end := event.StartTime.Add(-time.Hour)
	event.EndTime = &end
	_, err = svc.Create(ctx, uuid.New(), event)
	assert.True(t, apperror.IsValidation(err))
}

func TestEventService_Join_Success(t *testing.T) {
	repo := new(mockEventRepo)
	svc := newSimpleEventService(repo)
	ctx := context.Background()

	userID := uuid.New()
	event := validEvent(uuid.New(), models.EventStatusApproved)

	repo.On("GetByID", ctx, event.ID).Return(event, nil)
	repo.On("AddParticipant", ctx, event.ID, userID).Return(nil)

	assert.NoError(t, svc.Join(ctx, event.ID, userID))
}

func TestEventService_Join_NotFound(t *testing.T) {
	repo := new(mockEventRepo)
	svc := newSimpleEventService(repo)
	ctx := context.Background()

	eventID := uuid.New()
	repo.On("GetByID", ctx, eventID).Return(nil, repository.ErrEventNotFound)

	err := svc.Join(ctx, eventID, uuid.New())
	assert.True(t, apperror.IsNotFound(err))
}

func TestEventService_Join_NotApproved(t *testing.T) {
	repo := new(mockEventRepo)
	svc := newSimpleEventService(repo)
	ctx := context.Background()

	event := validEvent(uuid.New(), models.EventStatusPendingApproval)
	repo.On("GetByID", ctx, event.ID).Return(event, nil)

	err := svc.Join(ctx, event.ID, uuid.New())
	assert.True(t, apperror.IsInvalidState(err))
	repo.AssertNotCalled(t, "AddParticipant", mock.Anything, mock.Anything, mock.Anything)
}

func TestEventService_Join_Full(t *testing.T) {
	repo := new(mockEventRepo)
	svc := newSimpleEventService(repo)
	ctx := context.Background()

	userID := uuid.New()
	event := validEvent(uuid.New(), models.EventStatusApproved)

	repo.On("GetByID", ctx, event.ID).Return(event, nil)
	repo.On("AddParticipant", ctx, event.ID, userID).Return(repository.ErrEventFull)

	err := svc.Join(ctx, event.ID, userID)
	assert.True(t, apperror.Is(err, apperror.ErrCodeCapacityExceeded))
}

func TestEventService_Join_AlreadyJoined(t *testing.T) {
	repo := new(mockEventRepo)
	svc := newSimpleEventService(repo)
	ctx := context.Background()

	userID := uuid.New()
	event := validEvent(uuid.New(), models.EventStatusApproved)

	repo.On("GetByID", ctx, event.ID).Return(event, nil)
	repo.On("AddParticipant", ctx, event.ID, userID).Return(repository.ErrAlreadyParticipant)

	err := svc.Join(ctx, event.ID, userID)
	assert.True(t, apperror.Is(err, apperror.ErrCodeAlreadyJoined))
}

func TestEventService_Leave_NotParticipant(t *testing.T) {
	repo := new(mockEventRepo)
	svc := newSimpleEventService(repo)
	ctx := context.Background()

	userID := uuid.New()
	event := validEvent(uuid.New(), models.EventStatusApproved)

	repo.On("GetByID", ctx, event.ID).Return(event, nil)
	repo.On("RemoveParticipant", ctx, event.ID, userID).Return(repository.ErrNotParticipant)

	err := svc.Leave(ctx, event.ID, userID)
	assert.True(t, apperror.Is(err, apperror.ErrCodeNotParticipant))
}

func TestEventService_Update_OnlyOwner(t *testing.T) {
	repo := new(mockEventRepo)
	svc := newSimpleEventService(repo)
	ctx := context.Background()

	event := validEvent(uuid.New(), models.EventStatusPendingApproval)
	repo.On("GetByID", ctx, event.ID).Return(event, nil)

	stranger := uuid.New()
	_, err := svc.Update(ctx, event.ID, stranger, EventUpdateInput{})
	assert.True(t, apperror.IsForbidden(err))
}

func TestEventService_Update_OnlyPendingApproval(t *testing.T) {
	repo := new(mockEventRepo)
	svc := newSimpleEventService(repo)
	ctx := context.Background()

	ownerID := uuid.New()
	event := validEvent(ownerID, models.EventStatusApproved)
	repo.On("GetByID", ctx, event.ID).Return(event, nil)

	_, err := svc.Update(ctx, event.ID, ownerID, EventUpdateInput{})
	assert.True(t, apperror.IsInvalidState(err))
}

func TestEventService_Delete_BlockedForApproved(t *testing.T) {
	repo := new(mockEventRepo)
	svc := newSimpleEventService(repo)
	ctx := context.Background()

	ownerID := uuid.New()
	for _, status := range []string{models.EventStatusApproved, models.EventStatusCompleted} {
		event := validEvent(ownerID, status)
		repo.On("GetByID", ctx, event.ID).Return(event, nil)

		err := svc.Delete(ctx, event.ID, ownerID)
		assert.True(t, apperror.IsInvalidState(err), "статус %s", status)
	}
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestEventService_Complete_AwardsPoints(t *testing.T) {
	repo := new(mockEventRepo)
	points := newFakePointsStore()
	svc := newTestEventService(repo, points, newFakeCompletionCounts(), newFakeBadgeStore())
	ctx := context.Background()

	ownerID := uuid.New()
	p1, p2 := uuid.New(), uuid.New()
	event := validEvent(ownerID, models.EventStatusApproved)
	completed := *event
	completed.Status = models.EventStatusCompleted

	repo.On("GetByID", ctx, event.ID).Return(event, nil)
	repo.On("ListParticipantIDs", ctx, event.ID).Return([]uuid.UUID{p1, p2}, nil)
	repo.On("UpdateStatusIf", ctx, event.ID, models.EventStatusApproved, models.EventStatusCompleted).
		Return(&completed, nil)

	result, err := svc.Complete(ctx, event.ID, ownerID)
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusCompleted, result.Status)

	assert.Equal(t, 50, points.points[ownerID])
	assert.Equal(t, 10, points.points[p1])
	assert.Equal(t, 10, points.points[p2])
}

func TestEventService_Complete_OnlyOwner(t *testing.T) {
	repo := new(mockEventRepo)
	svc := newSimpleEventService(repo)
	ctx := context.Background()

	event := validEvent(uuid.New(), models.EventStatusApproved)
	repo.On("GetByID", ctx, event.ID).Return(event, nil)

	_, err := svc.Complete(ctx, event.ID, uuid.New())
	assert.True(t, apperror.IsForbidden(err))
}

func TestEventService_Complete_OnlyApproved(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	for _, status := range []string{
		models.EventStatusPendingApproval,
		models.EventStatusCompleted,
		models.EventStatusCancelled,
	} {
		repo := new(mockEventRepo)
		svc := newSimpleEventService(repo)
		event := validEvent(ownerID, status)
		repo.On("GetByID", ctx, event.ID).Return(event, nil)

		_, err := svc.Complete(ctx, event.ID, ownerID)
		assert.True(t, apperror.IsInvalidState(err), "статус %s", status)
		repo.AssertNotCalled(t, "UpdateStatusIf", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestEventService_Complete_LostRace(t *testing.T) {
	repo := new(mockEventRepo)
	points := newFakePointsStore()
	svc := newTestEventService(repo, points, newFakeCompletionCounts(), newFakeBadgeStore())
	ctx := context.Background()

	ownerID := uuid.New()
	event := validEvent(ownerID, models.EventStatusApproved)

	repo.On("GetByID", ctx, event.ID).Return(event, nil)
	repo.On("ListParticipantIDs", ctx, event.ID).Return([]uuid.UUID{}, nil)
	repo.On("UpdateStatusIf", ctx, event.ID, models.EventStatusApproved, models.EventStatusCompleted).
		Return(nil, repository.ErrStatusConflict)

	_, err := svc.Complete(ctx, event.ID, ownerID)
	assert.True(t, apperror.IsInvalidState(err))
	// Проигравший гонку вызов ничего не начисляет.
	assert.Empty(t, points.points)
}

func TestEventService_ApproveAndReject(t *testing.T) {
	repo := new(mockEventRepo)
	svc := newSimpleEventService(repo)
	ctx := context.Background()

	event := validEvent(uuid.New(), models.EventStatusPendingApproval)

	approved := *event
	approved.Status = models.EventStatusApproved
	repo.On("UpdateStatus", ctx, event.ID, models.EventStatusApproved).Return(&approved, nil)

	result, err := svc.Approve(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusApproved, result.Status)

	rejected := *event
	rejected.Status = models.EventStatusCancelled
	repo.On("UpdateStatus", ctx, event.ID, models.EventStatusCancelled).Return(&rejected, nil)

	result, err = svc.Reject(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusCancelled, result.Status)
}

func TestEventService_ListForAdmin_UnknownStatus(t *testing.T) {
	svc := newSimpleEventService(new(mockEventRepo))

	_, err := svc.ListForAdmin(context.Background(), "UNKNOWN", "")
	assert.True(t, apperror.IsValidation(err))
}

// Событие на одно место: второй участник получает отказ, пока первый
// не освободит место.
func TestEventService_Join_SingleSlotTurnover(t *testing.T) {
	repo := new(mockEventRepo)
	svc := newSimpleEventService(repo)
	ctx := context.Background()

	event := validEvent(uuid.New(), models.EventStatusApproved)
	event.MaxVolunteers = 1
	userA := uuid.New()
	userB := uuid.New()

	repo.On("GetByID", ctx, event.ID).Return(event, nil)
	repo.On("AddParticipant", ctx, event.ID, userA).Return(nil).Once()
	repo.On("AddParticipant", ctx, event.ID, userB).Return(repository.ErrEventFull).Once()
	repo.On("RemoveParticipant", ctx, event.ID, userA).Return(nil).Once()
	repo.On("AddParticipant", ctx, event.ID, userB).Return(nil).Once()

	require.NoError(t, svc.Join(ctx, event.ID, userA))

	err := svc.Join(ctx, event.ID, userB)
	assert.True(t, apperror.Is(err, apperror.ErrCodeCapacityExceeded))

	require.NoError(t, svc.Leave(ctx, event.ID, userA))
	require.NoError(t, svc.Join(ctx, event.ID, userB))

	repo.AssertExpectations(t)
}

func TestEventService_Get_HidesUnmoderated(t *testing.T) {
	ctx := context.Background()

	for _, status := range []string{
		models.EventStatusPendingApproval,
		models.EventStatusCancelled,
	} {
		repo := new(mockEventRepo)
		svc := newSimpleEventService(repo)
		event := validEvent(uuid.New(), status)
		repo.On("GetByID", ctx, event.ID).Return(event, nil)

		_, err := svc.Get(ctx, event.ID)
		assert.True(t, apperror.IsNotFound(err), "статус %s", status)
		repo.AssertNotCalled(t, "GetCreatorInfo", mock.Anything, mock.Anything)
	}
}

func TestEventService_Get_ReturnsCard(t *testing.T) {
	repo := new(mockEventRepo)
	svc := newSimpleEventService(repo)
	ctx := context.Background()

	event := validEvent(uuid.New(), models.EventStatusApproved)
	creator := &models.CreatorInfo{UserID: event.CreatedBy, DisplayName: "Нгуен Ван А"}
	participants := []models.ParticipantInfo{{UserID: uuid.New(), DisplayName: "Чан Тхи Б"}}

	repo.On("GetByID", ctx, event.ID).Return(event, nil)
	repo.On("GetCreatorInfo", ctx, event.ID).Return(creator, nil)
	repo.On("ListParticipants", ctx, event.ID).Return(participants, nil)

	details, err := svc.Get(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, event.ID, details.Event.ID)
	assert.Equal(t, creator, details.Creator)
	assert.Equal(t, participants, details.Participants)
}

func TestEventService_ListPublic_SoonestFirst(t *testing.T) {
	repo := new(mockEventRepo)
	svc := newSimpleEventService(repo)
	ctx := context.Background()

	repo.On("List", ctx,
		[]string{models.EventStatusApproved},
		repository.EventFilter{Location: "Ханой"},
		"start_time ASC").Return([]models.Event{}, nil)

	_, err := svc.ListPublic(ctx, "Ханой")
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
