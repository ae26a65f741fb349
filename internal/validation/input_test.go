package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEventInput(t *testing.T) {
	err := ValidateEventInput("Уборка парка", "Собираем мусор в центральном парке", "Ханой", 10)
	assert.NoError(t, err)

	// Слишком короткий заголовок
	err = ValidateEventInput("аб", "Собираем мусор в центральном парке", "Ханой", 10)
	assert.Error(t, err)

	// Слишком короткое описание
	err = ValidateEventInput("Уборка парка", "мало", "Ханой", 10)
	assert.Error(t, err)

	// Пустая локация
	err = ValidateEventInput("Уборка парка", "Собираем мусор в центральном парке", "", 10)
	assert.Error(t, err)

	// Отрицательный лимит участников
	err = ValidateEventInput("Уборка парка", "Собираем мусор в центральном парке", "Ханой", -1)
	assert.Error(t, err)

	// Ноль означает отсутствие лимита
	err = ValidateEventInput("Уборка парка", "Собираем мусор в центральном парке", "Ханой", 0)
	assert.NoError(t, err)
}

func TestValidateRating(t *testing.T) {
	assert.Error(t, ValidateRating(0))
	assert.NoError(t, ValidateRating(1))
	assert.NoError(t, ValidateRating(5))
	assert.Error(t, ValidateRating(6))
}

func TestValidateLength_CountsRunes(t *testing.T) {
	// Кириллица считается посимвольно, а не по байтам.
	assert.NoError(t, ValidateLength("поле", "абв", 3, 3))
	assert.Error(t, ValidateLength("поле", "аб", 3, 0))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("admin@ecoconnect.vn"))
	assert.NoError(t, ValidateEmail("  Admin@EcoConnect.VN  "))
	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("a@b"))
}

func TestValidateSkills(t *testing.T) {
	assert.NoError(t, ValidateSkills("навыки", []string{"экология", "организация"}))
	assert.NoError(t, ValidateSkills("навыки", nil))

	tooMany := make([]string, MaxSkillsCount+1)
	for i := range tooMany {
		tooMany[i] = "навык"
	}
	assert.Error(t, ValidateSkills("навыки", tooMany))

	assert.Error(t, ValidateSkills("навыки", []string{strings.Repeat("а", MaxSkillLength+1)}))
	assert.Error(t, ValidateSkills("навыки", []string{""}))
}

func TestValidateReason(t *testing.T) {
	assert.NoError(t, ValidateReason("Спам и реклама"))
	assert.Error(t, ValidateReason("аб"))
	assert.Error(t, ValidateReason(strings.Repeat("а", MaxReasonLength+1)))
}
