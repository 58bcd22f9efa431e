package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"elearn/internal/cache"
	apperrors "elearn/internal/errors"
	"elearn/internal/model"
	"elearn/internal/repository"
)

// EnrolledCourseView is one row of a student's dashboard: course data joined
// with the enrollment's progress and status.
type EnrolledCourseView struct {
	CourseID       uuid.UUID       `json:"course_id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Thumbnail      string          `json:"thumbnail"`
	InstructorName string          `json:"instructor_name"`
	Price          decimal.Decimal `json:"price"`
	Level          string          `json:"level"`
	Progress       int             `json:"progress"`
	EnrolledAt     time.Time       `json:"enrolled_at"`
	Status         string          `json:"status"`
}

// EnrollmentResult is the display-ready outcome of an enroll attempt.
type EnrollmentResult struct {
	Success  bool      `json:"success"`
	Message  string    `json:"message"`
	CourseID uuid.UUID `json:"course_id"`
}

// EnrollmentService manages the link between students and courses and keeps
// the denormalized Course.StudentsEnrolled counter consistent with it.
type EnrollmentService interface {
	Enroll(ctx context.Context, userID, courseID uuid.UUID) (*model.Enrollment, error)
	Unenroll(ctx context.Context, userID, courseID uuid.UUID) (bool, error)
	IsEnrolled(ctx context.Context, userID, courseID uuid.UUID) bool
	ListEnrollments(ctx context.Context, userID uuid.UUID) ([]EnrolledCourseView, error)
	CountTotalEnrollments(ctx context.Context) (int64, error)
}

type enrollmentService struct {
	userRepo       repository.UserRepository
	courseRepo     repository.CourseRepository
	enrollmentRepo repository.EnrollmentRepository
	cache          *cache.Client
}

// NewEnrollmentService creates a new enrollment service.
func NewEnrollmentService(
	userRepo repository.UserRepository,
	courseRepo repository.CourseRepository,
	enrollmentRepo repository.EnrollmentRepository,
	cache *cache.Client,
) EnrollmentService {
	return &enrollmentService{
		userRepo:       userRepo,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		cache:          cache,
	}
}

// Enroll enrolls a student in a course. The enrollment insert and the counter
// increment run in one transaction; the composite unique index on
// (user_id, course_id) turns a concurrent duplicate into ErrAlreadyEnrolled,
// so the counter can never double-increment for the same pair.
func (s *enrollmentService) Enroll(ctx context.Context, userID, courseID uuid.UUID) (*model.Enrollment, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user.Role != model.RoleStudent {
		return nil, apperrors.ErrNotAStudent
	}

	if _, err := s.courseRepo.FindByID(ctx, courseID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("find course: %w", err)
	}

	enrollment := &model.Enrollment{
		UserID:           userID,
		CourseID:         courseID,
		EnrolledAt:       time.Now().UTC(),
		Progress:         0,
		CompletedLessons: []uuid.UUID{},
		Status:           model.EnrollmentActive,
	}

	err = s.enrollmentRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.EnrollmentRepository) error {
		if err := txRepo.Create(ctx, enrollment); err != nil {
			if err == gorm.ErrDuplicatedKey {
				return apperrors.ErrAlreadyEnrolled
			}
			return fmt.Errorf("create enrollment: %w", err)
		}
		if err := txRepo.IncrementStudentCount(ctx, courseID, 1); err != nil {
			return fmt.Errorf("increment student count: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, courseCacheKey(courseID))

	return enrollment, nil
}

// Unenroll removes the enrollment if present. The counter is decremented in
// the same transaction, and only when a record was actually removed. A
// missing enrollment reports removed=false without an error.
func (s *enrollmentService) Unenroll(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	var removed bool
	err := s.enrollmentRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.EnrollmentRepository) error {
		var err error
		removed, err = txRepo.DeleteByUserAndCourse(ctx, userID, courseID)
		if err != nil {
			return fmt.Errorf("delete enrollment: %w", err)
		}
		if !removed {
			return nil
		}
		if err := txRepo.IncrementStudentCount(ctx, courseID, -1); err != nil {
			return fmt.Errorf("decrement student count: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	if removed {
		_ = s.cache.Delete(ctx, courseCacheKey(courseID))
	}

	return removed, nil
}

// IsEnrolled reports whether the student holds an enrollment for the course.
// Missing user, missing enrollment, and store errors all read as false.
func (s *enrollmentService) IsEnrolled(ctx context.Context, userID, courseID uuid.UUID) bool {
	enrolled, err := s.enrollmentRepo.Exists(ctx, userID, courseID)
	if err != nil {
		return false
	}
	return enrolled
}

// ListEnrollments returns course data joined with progress for each of the
// user's enrollments. An enrollment whose course no longer exists is skipped.
func (s *enrollmentService) ListEnrollments(ctx context.Context, userID uuid.UUID) ([]EnrolledCourseView, error) {
	enrollments, err := s.enrollmentRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}

	views := make([]EnrolledCourseView, 0, len(enrollments))
	for _, e := range enrollments {
		if e.Course == nil {
			continue
		}
		views = append(views, EnrolledCourseView{
			CourseID:       e.CourseID,
			Title:          e.Course.Title,
			Description:    e.Course.Description,
			Thumbnail:      e.Course.Thumbnail,
			InstructorName: e.Course.Instructor.Name,
			Price:          e.Course.Price,
			Level:          e.Course.Level,
			Progress:       e.Progress,
			EnrolledAt:     e.EnrolledAt,
			Status:         e.Status,
		})
	}
	return views, nil
}

// CountTotalEnrollments counts enrollments across all students.
func (s *enrollmentService) CountTotalEnrollments(ctx context.Context) (int64, error) {
	return s.enrollmentRepo.CountAll(ctx)
}

// ReportEnrollment maps an enroll attempt's outcome to a single result for
// display. It never retries and never mutates state.
func ReportEnrollment(courseID uuid.UUID, err error) EnrollmentResult {
	if err == nil {
		return EnrollmentResult{
			Success:  true,
			Message:  "Enrollment successful! The course is now on your dashboard.",
			CourseID: courseID,
		}
	}

	message := "Enrollment failed, please try again."
	switch err {
	case apperrors.ErrAlreadyEnrolled:
		message = "You are already enrolled in this course."
	case apperrors.ErrNotAStudent:
		message = "Only students can enroll in courses."
	case apperrors.ErrCourseNotFound:
		message = "This course is no longer available."
	case apperrors.ErrUserNotFound:
		message = "Your account could not be found."
	}

	return EnrollmentResult{
		Success:  false,
		Message:  message,
		CourseID: courseID,
	}
}
