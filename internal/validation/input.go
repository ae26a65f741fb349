package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ecoconnect/ecoconnect-backend/internal/pkg/apperror"
)

// Константы валидации
const (
	MinEventTitleLength       = 3
	MaxEventTitleLength       = 200
	MinEventDescriptionLength = 10
	MaxEventDescriptionLength = 5000
	MaxLocationLength         = 200
	MaxSkillLength            = 50
	MaxSkillsCount            = 50
	MinReasonLength           = 3
	MaxReasonLength           = 2000
	MaxCommentLength          = 2000
	MaxVolunteersLimit        = 10000
	MinRating                 = 1
	MaxRating                 = 5
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateLength проверяет длину строки в рунах.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return apperror.New(apperror.ErrCodeValidation,
			fmt.Sprintf("%s должен быть не менее %d символов", fieldName, min))
	}
	if max > 0 && length > max {
		return apperror.New(apperror.ErrCodeValidation,
			fmt.Sprintf("%s должен быть не более %d символов", fieldName, max))
	}
	return nil
}

// ValidateEventInput проверяет редактируемые поля события.
func ValidateEventInput(title, description, location string, maxVolunteers int) error {
	if err := ValidateLength("заголовок", strings.TrimSpace(title), MinEventTitleLength, MaxEventTitleLength); err != nil {
		return err
	}
	if err := ValidateLength("описание", strings.TrimSpace(description), MinEventDescriptionLength, MaxEventDescriptionLength); err != nil {
		return err
	}
	if err := ValidateLength("место проведения", strings.TrimSpace(location), 1, MaxLocationLength); err != nil {
		return err
	}
	if maxVolunteers < 0 || maxVolunteers > MaxVolunteersLimit {
		return apperror.New(apperror.ErrCodeValidation, "недопустимый лимит участников")
	}
	return nil
}

// ValidateRating проверяет оценку отзыва.
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return apperror.New(apperror.ErrCodeValidation,
			fmt.Sprintf("рейтинг должен быть от %d до %d", MinRating, MaxRating))
	}
	return nil
}

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return apperror.New(apperror.ErrCodeValidation, "email обязателен")
	}
	if !emailRegex.MatchString(email) {
		return apperror.New(apperror.ErrCodeValidation, "некорректный email")
	}
	return nil
}

// ValidateReason проверяет текст причины жалобы.
func ValidateReason(reason string) error {
	return ValidateLength("причина", strings.TrimSpace(reason), MinReasonLength, MaxReasonLength)
}

// ValidateComment проверяет необязательный комментарий.
func ValidateComment(comment *string) error {
	if comment == nil {
		return nil
	}
	return ValidateLength("комментарий", *comment, 0, MaxCommentLength)
}

// ValidateSkills проверяет список навыков или интересов.
func ValidateSkills(fieldName string, skills []string) error {
	if len(skills) > MaxSkillsCount {
		return apperror.New(apperror.ErrCodeValidation,
			fmt.Sprintf("%s: не более %d элементов", fieldName, MaxSkillsCount))
	}
	for _, s := range skills {
		if err := ValidateLength(fieldName, strings.TrimSpace(s), 1, MaxSkillLength); err != nil {
			return err
		}
	}
	return nil
}
