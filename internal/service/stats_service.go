package service

import (
	"context"
	"fmt"

	"elearn/internal/model"
	"elearn/internal/repository"
)

// PlatformStats are the totals shown on the admin dashboard.
type PlatformStats struct {
	Students    int64 `json:"students"`
	Instructors int64 `json:"instructors"`
	Courses     int64 `json:"courses"`
	Enrollments int64 `json:"enrollments"`
}

// StatsService aggregates platform-wide counts.
type StatsService interface {
	PlatformStats(ctx context.Context) (*PlatformStats, error)
}

type statsService struct {
	userRepo       repository.UserRepository
	courseRepo     repository.CourseRepository
	enrollmentRepo repository.EnrollmentRepository
}

// NewStatsService creates a new stats service.
func NewStatsService(
	userRepo repository.UserRepository,
	courseRepo repository.CourseRepository,
	enrollmentRepo repository.EnrollmentRepository,
) StatsService {
	return &statsService{
		userRepo:       userRepo,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

// PlatformStats gathers the dashboard totals.
func (s *statsService) PlatformStats(ctx context.Context) (*PlatformStats, error) {
	students, err := s.userRepo.CountByRole(ctx, model.RoleStudent)
	if err != nil {
		return nil, fmt.Errorf("count students: %w", err)
	}
	instructors, err := s.userRepo.CountByRole(ctx, model.RoleInstructor)
	if err != nil {
		return nil, fmt.Errorf("count instructors: %w", err)
	}
	courses, err := s.courseRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count courses: %w", err)
	}
	enrollments, err := s.enrollmentRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count enrollments: %w", err)
	}

	return &PlatformStats{
		Students:    students,
		Instructors: instructors,
		Courses:     courses,
		Enrollments: enrollments,
	}, nil
}
