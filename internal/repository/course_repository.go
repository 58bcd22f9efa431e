package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"elearn/internal/model"
)

// CourseRepository defines course persistence operations.
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	Update(ctx context.Context, course *model.Course) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Course, error)
	List(ctx context.Context) ([]model.Course, error)
	ListPopular(ctx context.Context, limit int) ([]model.Course, error)
	Count(ctx context.Context) (int64, error)
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository builds a GORM-backed repository.
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

// courseEditableColumns are the columns a catalog edit may write.
// students_enrolled is absent on purpose: the counter only moves inside
// enrollment transactions, and the caller may hold a cached copy of it.
var courseEditableColumns = []string{
	"title", "description", "thumbnail",
	"instructor_name", "instructor_email", "instructor_avatar_url", "instructor_bio",
	"price", "level", "category",
}

func (r *courseRepository) Update(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Model(course).Select(courseEditableColumns).Updates(course).Error
}

// Delete removes the course and its lessons and reviews.
func (r *courseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Lesson{}, "course_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Review{}, "course_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Course{}, "id = ?", id).Error
	})
}

// FindByID loads a course with its lessons and reviews.
func (r *courseRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	var course model.Course
	if err := r.db.WithContext(ctx).
		Preload("Lessons", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order") }).
		Preload("Reviews").
		Where("id = ?", id).First(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) List(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

// ListPopular returns the top courses by enrollment count.
func (r *courseRepository) ListPopular(ctx context.Context, limit int) ([]model.Course, error) {
	var courses []model.Course
	if err := r.db.WithContext(ctx).Order("students_enrolled desc").Limit(limit).Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Course{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
