package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ecoconnect/ecoconnect-backend/internal/models"
	"github.com/ecoconnect/ecoconnect-backend/internal/pkg/apperror"
)

func TestPolicy_RequireOwner(t *testing.T) {
	policy := NewPolicy()
	ownerID := uuid.New()
	event := &models.Event{CreatedBy: ownerID}

	assert.NoError(t, policy.RequireOwner(event, ownerID))

	err := policy.RequireOwner(event, uuid.New())
	assert.True(t, apperror.IsForbidden(err))
}

func TestPolicy_RequireAdmin(t *testing.T) {
	policy := NewPolicy()

	assert.NoError(t, policy.RequireAdmin(models.RoleAdmin))
	assert.True(t, apperror.IsForbidden(policy.RequireAdmin(models.RoleVolunteer)))
	assert.True(t, apperror.IsForbidden(policy.RequireAdmin("")))
}
