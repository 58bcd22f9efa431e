package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"elearn/internal/model"
)

// EnrollmentRepository defines enrollment persistence operations. It also
// owns the denormalized Course.StudentsEnrolled counter, so the record and
// the counter can move together inside one transaction.
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *model.Enrollment) error
	DeleteByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (removed bool, err error)
	Exists(ctx context.Context, userID, courseID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Enrollment, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	IncrementStudentCount(ctx context.Context, courseID uuid.UUID, delta int) error
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo EnrollmentRepository) error) error
}

type enrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository builds a GORM-backed repository.
func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

// Create inserts an enrollment. A concurrent duplicate for the same
// (user, course) pair fails with gorm.ErrDuplicatedKey on the composite
// unique index rather than producing a second record.
func (r *enrollmentRepository) Create(ctx context.Context, enrollment *model.Enrollment) error {
	return r.db.WithContext(ctx).Create(enrollment).Error
}

// DeleteByUserAndCourse removes the matching enrollment if present and
// reports whether a row was actually deleted.
func (r *enrollmentRepository) DeleteByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Delete(&model.Enrollment{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *enrollmentRepository) Exists(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByUser loads a user's enrollments with course data joined in.
func (r *enrollmentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	if err := r.db.WithContext(ctx).
		Preload("Course").
		Where("user_id = ?", userID).
		Order("enrolled_at").
		Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *enrollmentRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Enrollment{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountAll counts enrollments held by student users across the platform.
func (r *enrollmentRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Enrollment{}).
		Joins("JOIN users ON users.id = enrollments.user_id").
		Where("users.role = ?", model.RoleStudent).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// IncrementStudentCount adjusts the denormalized counter on the course row.
// The update is a single relative expression, never a read-modify-write.
func (r *enrollmentRepository) IncrementStudentCount(ctx context.Context, courseID uuid.UUID, delta int) error {
	return r.db.WithContext(ctx).Model(&model.Course{}).
		Where("id = ?", courseID).
		UpdateColumn("students_enrolled", gorm.Expr("students_enrolled + ?", delta)).Error
}

// WithTransaction executes a function within a database transaction.
func (r *enrollmentRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo EnrollmentRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &enrollmentRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
