package service

import (
	"github.com/google/uuid"

	"github.com/ecoconnect/ecoconnect-backend/internal/models"
	"github.com/ecoconnect/ecoconnect-backend/internal/pkg/apperror"
)

// Policy собирает проверки прав в одном месте, чтобы сервисы не дублировали
// условия владения и ролей.
type Policy struct{}

// NewPolicy создаёт набор проверок прав.
func NewPolicy() *Policy {
	return &Policy{}
}

// IsAdmin сообщает, является ли роль административной.
func (p *Policy) IsAdmin(role string) bool {
	return role == models.RoleAdmin
}

// IsOwner сообщает, принадлежит ли событие пользователю.
func (p *Policy) IsOwner(event *models.Event, userID uuid.UUID) bool {
	return event.CreatedBy == userID
}

// RequireOwner возвращает ошибку, если пользователь не организатор события.
func (p *Policy) RequireOwner(event *models.Event, userID uuid.UUID) error {
	if !p.IsOwner(event, userID) {
		return apperror.New(apperror.ErrCodeForbidden, "вы не организатор этого события")
	}
	return nil
}

// RequireAdmin возвращает ошибку, если роль не административная.
func (p *Policy) RequireAdmin(role string) error {
	if !p.IsAdmin(role) {
		return apperror.New(apperror.ErrCodeForbidden, "требуются права администратора")
	}
	return nil
}
