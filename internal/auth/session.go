package auth

import (
	"github.com/google/uuid"

	"elearn/internal/model"
)

// Session is the authenticated identity for one request. It is derived from
// the access token by the router middleware and passed explicitly down the
// call chain; there is no process-wide current user.
type Session struct {
	Authenticated bool
	UserID        uuid.UUID
	Email         string
	Role          model.Role
}

// Anonymous is the zero session used for unauthenticated requests.
func Anonymous() Session {
	return Session{}
}

// NewSession builds an authenticated session for the given user identity.
func NewSession(userID uuid.UUID, email string, role model.Role) Session {
	return Session{
		Authenticated: true,
		UserID:        userID,
		Email:         email,
		Role:          role,
	}
}

// IsAdmin reports whether the session belongs to an authenticated admin.
func (s Session) IsAdmin() bool {
	return s.Authenticated && s.Role == model.RoleAdmin
}

// IsInstructor reports whether the session belongs to an authenticated instructor.
func (s Session) IsInstructor() bool {
	return s.Authenticated && s.Role == model.RoleInstructor
}

// IsStudent reports whether the session belongs to an authenticated student.
func (s Session) IsStudent() bool {
	return s.Authenticated && s.Role == model.RoleStudent
}
