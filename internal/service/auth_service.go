package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ecoconnect/ecoconnect-backend/internal/models"
	"github.com/ecoconnect/ecoconnect-backend/internal/pkg/apperror"
	"github.com/ecoconnect/ecoconnect-backend/internal/repository"
	"github.com/ecoconnect/ecoconnect-backend/internal/validation"
	"github.com/ecoconnect/ecoconnect-backend/internal/zalo"
)

// AuthRepository описывает зависимости AuthService от слоя хранилища.
type AuthRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByZaloID(ctx context.Context, zaloID string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateIdentity(ctx context.Context, id uuid.UUID, displayName, avatar string) error
}

// ZaloProvider запрашивает профиль пользователя по access токену мини-приложения.
type ZaloProvider interface {
	GetProfile(ctx context.Context, accessToken string) (*zalo.Profile, error)
}

// AuthResult возвращает итог авторизации.
type AuthResult struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

// AuthService инкапсулирует вход через Zalo и вход администратора.
type AuthService struct {
	repo         AuthRepository
	zalo         ZaloProvider
	tokenManager *TokenManager
}

// NewAuthService создаёт сервис аутентификации.
func NewAuthService(repo AuthRepository, zaloClient ZaloProvider, tokenManager *TokenManager) *AuthService {
	return &AuthService{
		repo:         repo,
		zalo:         zaloClient,
		tokenManager: tokenManager,
	}
}

// LoginWithZalo находит пользователя по Zalo ID или создаёт нового. Имя и
// аватар обновляются из профиля Zalo при каждом входе.
func (s *AuthService) LoginWithZalo(ctx context.Context, accessToken string) (*AuthResult, error) {
	if accessToken == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "access токен обязателен")
	}

	profile, err := s.zalo.GetProfile(ctx, accessToken)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeUnauthorized, "не удалось подтвердить токен Zalo")
	}

	user, err := s.repo.GetByZaloID(ctx, profile.ZaloID)
	switch {
	case err == nil:
		if err := s.repo.UpdateIdentity(ctx, user.ID, profile.DisplayName, profile.Avatar); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось обновить профиль")
		}
		if profile.DisplayName != "" {
			user.DisplayName = profile.DisplayName
		}
		if profile.Avatar != "" {
			user.Avatar = profile.Avatar
		}
	case errors.Is(err, repository.ErrUserNotFound):
		zaloID := profile.ZaloID
		user = &models.User{
			ZaloID:      &zaloID,
			DisplayName: profile.DisplayName,
			Avatar:      profile.Avatar,
			Role:        models.RoleVolunteer,
		}
		if err := s.repo.Create(ctx, user); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось создать пользователя")
		}
	default:
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось выполнить вход")
	}

	return s.issueToken(user)
}

// LoginAdmin проверяет email и пароль администратора.
func (s *AuthService) LoginAdmin(ctx context.Context, email, password string) (*AuthResult, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "email и пароль обязательны")
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.New(apperror.ErrCodeUnauthorized, "неверный email или пароль")
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось выполнить вход")
	}

	if user.PasswordHash == nil || user.Role != models.RoleAdmin {
		return nil, apperror.New(apperror.ErrCodeUnauthorized, "неверный email или пароль")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.New(apperror.ErrCodeUnauthorized, "неверный email или пароль")
	}

	return s.issueToken(user)
}

// GetUser возвращает пользователя по идентификатору из токена.
func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.ErrUserNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось получить пользователя")
	}
	return user, nil
}

func (s *AuthService) issueToken(user *models.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokenManager.Generate(user)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось выпустить токен")
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}
