package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ecoconnect/ecoconnect-backend/internal/logger"
	"github.com/ecoconnect/ecoconnect-backend/internal/models"
	"github.com/ecoconnect/ecoconnect-backend/internal/pkg/apperror"
)

// Имена событий уведомлений.
const (
	NotificationBadgeEarned   = "badge_earned"
	NotificationEventApproved = "event_approved"
	NotificationEventRejected = "event_rejected"
)

// NotificationRepo описывает хранилище уведомлений.
type NotificationRepo interface {
	Create(ctx context.Context, n *models.Notification) error
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
}

// Pusher доставляет событие подключённым клиентам пользователя.
type Pusher interface {
	Push(userID uuid.UUID, event string, data any) error
}

// BadgeCatalog отдаёт описание значка для текста уведомления.
type BadgeCatalog interface {
	GetByBadgeID(ctx context.Context, badgeID string) (*models.Badge, error)
}

// NotificationService сохраняет уведомления и доставляет их через WebSocket.
// Сбой доставки не влияет на вызвавшую операцию.
type NotificationService struct {
	repo   NotificationRepo
	pusher Pusher
	badges BadgeCatalog
	log    *logrus.Entry
}

// NewNotificationService создаёт сервис уведомлений. pusher и badges могут
// быть nil.
func NewNotificationService(repo NotificationRepo, pusher Pusher, badges BadgeCatalog) *NotificationService {
	return &NotificationService{
		repo:   repo,
		pusher: pusher,
		badges: badges,
		log:    logger.WithComponent("notifications"),
	}
}

// NotifyBadgeEarned уведомляет пользователя о новом значке.
func (s *NotificationService) NotifyBadgeEarned(ctx context.Context, userID uuid.UUID, badgeID string) {
	data := map[string]string{"badge_id": badgeID}
	if s.badges != nil {
		badge, err := s.badges.GetByBadgeID(ctx, badgeID)
		if err != nil {
			s.log.WithError(err).WithField("badge_id", badgeID).Warn("значок не найден в каталоге")
		} else {
			data["name"] = badge.Name
			data["icon_url"] = badge.IconURL
		}
	}
	s.notify(ctx, userID, NotificationBadgeEarned, data)
}

// NotifyEventDecision уведомляет организатора о решении модерации.
func (s *NotificationService) NotifyEventDecision(ctx context.Context, userID uuid.UUID, eventID uuid.UUID, approved bool) {
	event := NotificationEventRejected
	if approved {
		event = NotificationEventApproved
	}
	s.notify(ctx, userID, event, map[string]string{
		"event_id": eventID.String(),
	})
}

// List возвращает уведомления пользователя, новые первыми.
func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Notification, error) {
	notifications, err := s.repo.List(ctx, userID, limit, offset)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось получить уведомления")
	}
	return notifications, nil
}

// MarkAsRead помечает уведомление прочитанным.
func (s *NotificationService) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.repo.MarkAsRead(ctx, id, userID); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось обновить уведомление")
	}
	return nil
}

// MarkAllAsRead помечает все уведомления пользователя прочитанными.
func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.MarkAllAsRead(ctx, userID); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось обновить уведомления")
	}
	return nil
}

// CountUnread возвращает число непрочитанных уведомлений.
func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось получить счётчик")
	}
	return count, nil
}

func (s *NotificationService) notify(ctx context.Context, userID uuid.UUID, event string, data map[string]string) {
	body := map[string]any{"type": event}
	for k, v := range data {
		body[k] = v
	}
	payload, err := json.Marshal(body)
	if err != nil {
		s.log.WithError(err).Error("сериализация уведомления не удалась")
		return
	}

	n := &models.Notification{UserID: userID, Payload: payload}
	if err := s.repo.Create(ctx, n); err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("уведомление не сохранено")
	}

	if s.pusher != nil {
		if err := s.pusher.Push(userID, event, data); err != nil {
			s.log.WithError(err).WithField("user_id", userID).Warn("уведомление не доставлено")
		}
	}
}
