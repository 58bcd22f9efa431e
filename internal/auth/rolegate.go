package auth

import (
	"elearn/internal/errors"
	"elearn/internal/model"
)

// Authorize checks a session against a set of allowed roles. It is a pure
// check with no I/O: nil means allowed, otherwise errors.ErrNotAuthenticated
// or errors.ErrWrongRole so callers can render distinct messaging.
func Authorize(s Session, roles ...model.Role) error {
	if !s.Authenticated {
		return errors.ErrNotAuthenticated
	}
	for _, role := range roles {
		if s.Role == role {
			return nil
		}
	}
	return errors.ErrWrongRole
}
