package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecoconnect/ecoconnect-backend/internal/models"
	"github.com/ecoconnect/ecoconnect-backend/internal/pkg/apperror"
	"github.com/ecoconnect/ecoconnect-backend/internal/repository"
)

// fakeUserRepo хранит пользователей в памяти.
type fakeUserRepo struct {
	users  map[uuid.UUID]*models.User
	badges map[uuid.UUID][]models.UserBadgeDetailed
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  make(map[uuid.UUID]*models.User),
		badges: make(map[uuid.UUID][]models.UserBadgeDetailed),
	}
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, skills, interests []string, location string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	user.Skills = skills
	user.Interests = interests
	user.Location = location
	return user, nil
}

func (f *fakeUserRepo) ListBadges(ctx context.Context, userID uuid.UUID) ([]models.UserBadgeDetailed, error) {
	return f.badges[userID], nil
}

func TestUserService_UpdateProfile_PartialUpdate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	userID := uuid.New()
	repo.users[userID] = &models.User{
		ID:        userID,
		Skills:    []string{"экология"},
		Interests: []string{"переработка"},
		Location:  "Ханой",
	}

	// Меняем только локацию, навыки и интересы остаются прежними.
	location := "Дананг"
	user, err := svc.UpdateProfile(ctx, userID, ProfileUpdateInput{Location: &location})
	require.NoError(t, err)

	assert.Equal(t, "Дананг", user.Location)
	assert.Equal(t, []string{"экология"}, user.Skills)
	assert.Equal(t, []string{"переработка"}, user.Interests)
}

func TestUserService_UpdateProfile_Validation(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	userID := uuid.New()
	repo.users[userID] = &models.User{ID: userID}

	_, err := svc.UpdateProfile(ctx, userID, ProfileUpdateInput{Skills: []string{""}})
	assert.True(t, apperror.IsValidation(err))
}

func TestUserService_UpdateProfile_NotFound(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.UpdateProfile(context.Background(), uuid.New(), ProfileUpdateInput{})
	assert.True(t, apperror.IsNotFound(err))
}

func TestUserService_PublicProfile(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	userID := uuid.New()
	repo.users[userID] = &models.User{
		ID:          userID,
		DisplayName: "Нгуен Ван А",
		Points:      120,
	}
	repo.badges[userID] = []models.UserBadgeDetailed{
		{BadgeID: models.BadgeJoin10, Name: "Активный волонтёр"},
	}

	profile, err := svc.PublicProfile(ctx, userID)
	require.NoError(t, err)

	assert.Equal(t, "Нгуен Ван А", profile.DisplayName)
	assert.Equal(t, 120, profile.Points)
	require.Len(t, profile.Badges, 1)
	assert.Equal(t, models.BadgeJoin10, profile.Badges[0].BadgeID)
}
