package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	apperrors "elearn/internal/errors"
	"elearn/internal/model"
)

func TestAuthorize(t *testing.T) {
	admin := NewSession(uuid.New(), "admin@example.com", model.RoleAdmin)
	student := NewSession(uuid.New(), "student@example.com", model.RoleStudent)

	tests := []struct {
		name          string
		session       Session
		roles         []model.Role
		expectedError error
	}{
		{
			name:          "admin allowed for admin",
			session:       admin,
			roles:         []model.Role{model.RoleAdmin},
			expectedError: nil,
		},
		{
			name:          "student denied for admin",
			session:       student,
			roles:         []model.Role{model.RoleAdmin},
			expectedError: apperrors.ErrWrongRole,
		},
		{
			name:          "student allowed when one of several roles matches",
			session:       student,
			roles:         []model.Role{model.RoleInstructor, model.RoleStudent},
			expectedError: nil,
		},
		{
			name:          "anonymous denied as not authenticated",
			session:       Anonymous(),
			roles:         []model.Role{model.RoleAdmin},
			expectedError: apperrors.ErrNotAuthenticated,
		},
		{
			name: "unauthenticated session with role set is still denied",
			session: Session{
				Authenticated: false,
				UserID:        uuid.New(),
				Role:          model.RoleAdmin,
			},
			roles:         []model.Role{model.RoleAdmin},
			expectedError: apperrors.ErrNotAuthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.session, tt.roles...)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSessionPredicates(t *testing.T) {
	assert.True(t, NewSession(uuid.New(), "a@b.c", model.RoleAdmin).IsAdmin())
	assert.True(t, NewSession(uuid.New(), "a@b.c", model.RoleInstructor).IsInstructor())
	assert.True(t, NewSession(uuid.New(), "a@b.c", model.RoleStudent).IsStudent())

	// Role alone is not enough: the session must also be authenticated
	unauthenticated := Session{Role: model.RoleAdmin}
	assert.False(t, unauthenticated.IsAdmin())
	assert.False(t, Anonymous().IsStudent())
}
