package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"elearn/internal/auth"
	apperrors "elearn/internal/errors"
	"elearn/internal/model"
	"elearn/internal/repository"
)

// UserService handles account operations outside of authentication.
type UserService interface {
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	ListByRole(ctx context.Context, role model.Role) ([]model.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	userRepo       repository.UserRepository
	enrollmentRepo repository.EnrollmentRepository
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, enrollmentRepo repository.EnrollmentRepository) UserService {
	return &userService{
		userRepo:       userRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

// GetUser retrieves a user by ID.
func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// ListByRole lists users holding the given role.
func (s *userService) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	return s.userRepo.ListByRole(ctx, role)
}

// ChangePassword verifies the current password before storing a new hash.
func (s *userService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(currentPassword, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}
	if len(newPassword) < 6 {
		return apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = hash
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// DeleteUser removes an account. A user holding enrollments cannot be
// deleted until they unenroll; there is no implicit cascade.
func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}

	count, err := s.enrollmentRepo.CountByUser(ctx, id)
	if err != nil {
		return fmt.Errorf("count enrollments: %w", err)
	}
	if count > 0 {
		return apperrors.ErrHasEnrollments
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
