package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"elearn/internal/cache"
	apperrors "elearn/internal/errors"
	"elearn/internal/model"
	"elearn/internal/repository"
)

const courseCacheTTL = 5 * time.Minute

func courseCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("course:%s", id.String())
}

// CourseService handles course catalog operations.
type CourseService interface {
	GetCourse(ctx context.Context, id uuid.UUID) (*model.Course, error)
	ListCourses(ctx context.Context) ([]model.Course, error)
	ListPopularCourses(ctx context.Context, limit int) ([]model.Course, error)
	CreateCourse(ctx context.Context, course *model.Course) error
	UpdateCourse(ctx context.Context, course *model.Course) error
	DeleteCourse(ctx context.Context, id uuid.UUID) error
}

type courseService struct {
	repo  repository.CourseRepository
	cache *cache.Client
}

// NewCourseService creates a new course service.
func NewCourseService(repo repository.CourseRepository, cache *cache.Client) CourseService {
	return &courseService{
		repo:  repo,
		cache: cache,
	}
}

// GetCourse retrieves a course by ID with caching.
func (s *courseService) GetCourse(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	if data, _ := s.cache.Get(ctx, courseCacheKey(id)); data != nil {
		var cached model.Course
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("find course: %w", err)
	}

	if payload, err := json.Marshal(course); err == nil {
		_ = s.cache.Set(ctx, courseCacheKey(id), payload, courseCacheTTL)
	}

	return course, nil
}

// ListCourses lists the full catalog, newest first.
func (s *courseService) ListCourses(ctx context.Context) ([]model.Course, error) {
	return s.repo.List(ctx)
}

// ListPopularCourses returns the top courses by enrollment count.
func (s *courseService) ListPopularCourses(ctx context.Context, limit int) ([]model.Course, error) {
	if limit <= 0 {
		limit = 6
	}
	return s.repo.ListPopular(ctx, limit)
}

// CreateCourse persists a new course with its lessons.
func (s *courseService) CreateCourse(ctx context.Context, course *model.Course) error {
	if course.Level == "" {
		course.Level = model.LevelBeginner
	}
	if err := s.repo.Create(ctx, course); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// UpdateCourse saves course changes and drops the stale cache entry.
func (s *courseService) UpdateCourse(ctx context.Context, course *model.Course) error {
	if err := s.repo.Update(ctx, course); err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	_ = s.cache.Delete(ctx, courseCacheKey(course.ID))
	return nil
}

// DeleteCourse removes a course along with its lessons and reviews.
func (s *courseService) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("find course: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	_ = s.cache.Delete(ctx, courseCacheKey(id))
	return nil
}
