package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/ecoconnect/ecoconnect-backend/internal/models"
)

// BadgeRepoForSeed описывает операции посева каталога значков.
type BadgeRepoForSeed interface {
	Upsert(ctx context.Context, badge *models.Badge) error
	List(ctx context.Context) ([]models.Badge, error)
}

// UserRepoForSeed описывает создание начального администратора.
type UserRepoForSeed interface {
	CreateAdmin(ctx context.Context, user *models.User) error
}

// SeedService наполняет справочные данные при старте приложения.
type SeedService struct {
	badges BadgeRepoForSeed
	users  UserRepoForSeed
}

// NewSeedService создаёт сервис посева.
func NewSeedService(badges BadgeRepoForSeed, users UserRepoForSeed) *SeedService {
	return &SeedService{badges: badges, users: users}
}

// SeedBadges записывает каталог значков. Повторный запуск безопасен.
func (s *SeedService) SeedBadges(ctx context.Context) error {
	catalog := []models.Badge{
		{
			BadgeID:     models.BadgeJoin10,
			Name:        "Активный волонтёр",
			Description: "Участие в 10 завершённых событиях",
			IconURL:     "/static/badges/join_10.png",
		},
		{
			BadgeID:     models.BadgeCreate3,
			Name:        "Организатор",
			Description: "3 завершённых события в роли организатора",
			IconURL:     "/static/badges/create_3.png",
		},
	}

	for i := range catalog {
		if err := s.badges.Upsert(ctx, &catalog[i]); err != nil {
			return fmt.Errorf("seed: badge %s %w", catalog[i].BadgeID, err)
		}
	}
	return nil
}

// Catalog возвращает текущий каталог значков.
func (s *SeedService) Catalog(ctx context.Context) ([]models.Badge, error) {
	return s.badges.List(ctx)
}

// SeedAdmin создаёт администратора, если его ещё нет. Пустые учётные данные
// пропускают посев.
func (s *SeedService) SeedAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed: hash admin password %w", err)
	}

	hashStr := string(hash)
	admin := &models.User{
		DisplayName:  "Администратор",
		Role:         models.RoleAdmin,
		Email:        &email,
		PasswordHash: &hashStr,
	}
	if err := s.users.CreateAdmin(ctx, admin); err != nil {
		return fmt.Errorf("seed: create admin %w", err)
	}
	return nil
}
