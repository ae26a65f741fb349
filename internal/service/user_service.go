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

// UserRepo описывает операции хранилища пользователей для сервиса профилей.
type UserRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, skills, interests []string, location string) (*models.User, error)
	ListBadges(ctx context.Context, userID uuid.UUID) ([]models.UserBadgeDetailed, error)
}

// ProfileUpdateInput содержит редактируемые поля профиля. Nil означает
// "не менять".
type ProfileUpdateInput struct {
	Skills    []string
	Interests []string
	Location  *string
}

// UserService отвечает за профили пользователей и их значки.
type UserService struct {
	repo UserRepo
}

// NewUserService создаёт сервис профилей.
func NewUserService(repo UserRepo) *UserService {
	return &UserService{repo: repo}
}

// Get возвращает пользователя по идентификатору.
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.ErrUserNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось получить пользователя")
	}
	return user, nil
}

// UpdateProfile обновляет навыки, интересы и локацию пользователя.
func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, input ProfileUpdateInput) (*models.User, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	skills := current.Skills
	if input.Skills != nil {
		skills = input.Skills
	}
	interests := current.Interests
	if input.Interests != nil {
		interests = input.Interests
	}
	location := current.Location
	if input.Location != nil {
		location = *input.Location
	}

	if err := validation.ValidateSkills("навыки", skills); err != nil {
		return nil, err
	}
	if err := validation.ValidateSkills("интересы", interests); err != nil {
		return nil, err
	}
	if err := validation.ValidateLength("локация", location, 0, validation.MaxLocationLength); err != nil {
		return nil, err
	}

	user, err := s.repo.UpdateProfile(ctx, id, skills, interests, location)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.ErrUserNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось обновить профиль")
	}
	return user, nil
}

// PublicProfile возвращает публичный профиль пользователя со значками.
func (s *UserService) PublicProfile(ctx context.Context, id uuid.UUID) (*models.PublicProfile, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	badges, err := s.repo.ListBadges(ctx, id)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось получить значки")
	}
	return &models.PublicProfile{
		ID:          user.ID,
		DisplayName: user.DisplayName,
		Avatar:      user.Avatar,
		Skills:      user.Skills,
		Interests:   user.Interests,
		Location:    user.Location,
		Points:      user.Points,
		Badges:      badges,
		CreatedAt:   user.CreatedAt,
	}, nil
}

// ListBadges возвращает значки пользователя.
func (s *UserService) ListBadges(ctx context.Context, id uuid.UUID) ([]models.UserBadgeDetailed, error) {
	badges, err := s.repo.ListBadges(ctx, id)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось получить значки")
	}
	return badges, nil
}
