package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeNotFound         ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden        ErrorCode = "FORBIDDEN"
	ErrCodeValidation       ErrorCode = "VALIDATION_ERROR"
	ErrCodeInvalidState     ErrorCode = "INVALID_STATE"
	ErrCodeCapacityExceeded ErrorCode = "CAPACITY_EXCEEDED"
	ErrCodeAlreadyJoined    ErrorCode = "ALREADY_JOINED"
	ErrCodeNotParticipant   ErrorCode = "NOT_PARTICIPANT"
	ErrCodeConflict         ErrorCode = "CONFLICT"
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
)

// AppError несёт код бизнес-ошибки и HTTP статус для транспортного слоя.
// Message безопасно показывать клиенту, детали хранилища остаются в Cause.
type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeValidation, ErrCodeInvalidState, ErrCodeCapacityExceeded,
		ErrCodeAlreadyJoined, ErrCodeNotParticipant:
		return http.StatusBadRequest
	case ErrCodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Is сравнивает код ошибки независимо от глубины оборачивания.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

func IsNotFound(err error) bool     { return Is(err, ErrCodeNotFound) }
func IsForbidden(err error) bool    { return Is(err, ErrCodeForbidden) }
func IsValidation(err error) bool   { return Is(err, ErrCodeValidation) }
func IsInvalidState(err error) bool { return Is(err, ErrCodeInvalidState) }
func IsConflict(err error) bool     { return Is(err, ErrCodeConflict) }

var (
	ErrEventNotFound  = New(ErrCodeNotFound, "событие не найдено")
	ErrUserNotFound   = New(ErrCodeNotFound, "пользователь не найден")
	ErrTicketNotFound = New(ErrCodeNotFound, "тикет не найден")
	ErrBadgeNotFound  = New(ErrCodeNotFound, "бейдж не найден")
	ErrUnauthorized   = New(ErrCodeUnauthorized, "требуется авторизация")
	ErrForbidden      = New(ErrCodeForbidden, "недостаточно прав")
)
