package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ecoconnect/ecoconnect-backend/internal/goroutine"
	"github.com/ecoconnect/ecoconnect-backend/internal/logger"
	"github.com/ecoconnect/ecoconnect-backend/internal/models"
	"github.com/ecoconnect/ecoconnect-backend/internal/pkg/apperror"
)

// GamificationConfig задаёт правила начисления очков и порогов значков.
type GamificationConfig struct {
	PointsForCreating      int
	PointsForParticipating int
	JoinBadgeThreshold     int
	CreateBadgeThreshold   int
}

// DefaultGamificationConfig возвращает правила по умолчанию.
func DefaultGamificationConfig() GamificationConfig {
	return GamificationConfig{
		PointsForCreating:      50,
		PointsForParticipating: 10,
		JoinBadgeThreshold:     10,
		CreateBadgeThreshold:   3,
	}
}

// UserRepoForGamification описывает операции над пользователями, которые нужны
// начислению очков.
type UserRepoForGamification interface {
	IncrementPoints(ctx context.Context, userID uuid.UUID, delta int) error
	BulkIncrementPoints(ctx context.Context, userIDs []uuid.UUID, delta int) error
}

// EventRepoForGamification описывает агрегаты, по которым пересчитывается
// право на значки.
type EventRepoForGamification interface {
	CountCompletedParticipations(ctx context.Context, userID uuid.UUID) (int, error)
	CountCompletedCreated(ctx context.Context, userID uuid.UUID) (int, error)
}

// BadgeAwarder выдаёт значки идемпотентно.
type BadgeAwarder interface {
	Award(ctx context.Context, userID uuid.UUID, badgeID string) (bool, error)
}

// BadgeNotifier доставляет пользователю уведомление о новом значке.
type BadgeNotifier interface {
	NotifyBadgeEarned(ctx context.Context, userID uuid.UUID, badgeID string)
}

// GamificationService начисляет очки и значки по итогам завершённых событий.
type GamificationService struct {
	cfg      GamificationConfig
	users    UserRepoForGamification
	events   EventRepoForGamification
	badges   BadgeAwarder
	notifier BadgeNotifier
	log      *logrus.Entry
}

// NewGamificationService создаёт сервис геймификации. notifier может быть nil.
func NewGamificationService(
	cfg GamificationConfig,
	users UserRepoForGamification,
	events EventRepoForGamification,
	badges BadgeAwarder,
	notifier BadgeNotifier,
) *GamificationService {
	return &GamificationService{
		cfg:      cfg,
		users:    users,
		events:   events,
		badges:   badges,
		notifier: notifier,
		log:      logger.WithComponent("gamification"),
	}
}

// AwardCompletionPoints начисляет очки по итогам завершения события:
// организатору за создание, каждому участнику за участие. Вызывается
// синхронно внутри операции завершения, ошибка означает откат начисления.
func (s *GamificationService) AwardCompletionPoints(ctx context.Context, creatorID uuid.UUID, participantIDs []uuid.UUID) error {
	if err := s.users.IncrementPoints(ctx, creatorID, s.cfg.PointsForCreating); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось начислить очки организатору")
	}

	if len(participantIDs) > 0 {
		if err := s.users.BulkIncrementPoints(ctx, participantIDs, s.cfg.PointsForParticipating); err != nil {
			return apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось начислить очки участникам")
		}
	}
	return nil
}

// EvaluateBadges пересчитывает право пользователя на значки по текущему
// состоянию событий и выдаёт недостающие. Идемпотентна: повторный вызов
// ничего не меняет.
func (s *GamificationService) EvaluateBadges(ctx context.Context, userID uuid.UUID) error {
	joined, err := s.events.CountCompletedParticipations(ctx, userID)
	if err != nil {
		return fmt.Errorf("gamification: count participations %w", err)
	}
	if joined >= s.cfg.JoinBadgeThreshold {
		if err := s.awardIfMissing(ctx, userID, models.BadgeJoin10); err != nil {
			return err
		}
	}

	created, err := s.events.CountCompletedCreated(ctx, userID)
	if err != nil {
		return fmt.Errorf("gamification: count created %w", err)
	}
	if created >= s.cfg.CreateBadgeThreshold {
		if err := s.awardIfMissing(ctx, userID, models.BadgeCreate3); err != nil {
			return err
		}
	}
	return nil
}

// EvaluateBadgesAsync запускает пересчёт значков в фоне для каждого
// пользователя. Сбой пересчёта одного пользователя логируется и не влияет
// ни на остальных, ни на вызвавшую операцию.
func (s *GamificationService) EvaluateBadgesAsync(userIDs ...uuid.UUID) {
	for _, userID := range userIDs {
		id := userID
		goroutine.SafeGo(func() {
			ctx := context.Background()
			if err := s.EvaluateBadges(ctx, id); err != nil {
				s.log.WithError(err).WithField("user_id", id).Warn("пересчёт значков не удался")
			}
		})
	}
}

func (s *GamificationService) awardIfMissing(ctx context.Context, userID uuid.UUID, badgeID string) error {
	awarded, err := s.badges.Award(ctx, userID, badgeID)
	if err != nil {
		return fmt.Errorf("gamification: award badge %w", err)
	}
	if awarded && s.notifier != nil {
		s.notifier.NotifyBadgeEarned(ctx, userID, badgeID)
	}
	return nil
}
