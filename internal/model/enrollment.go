package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Enrollment statuses.
const (
	EnrollmentActive    = "active"
	EnrollmentCompleted = "completed"
)

// Enrollment links one student to one course. The composite unique index on
// (user_id, course_id) is what makes concurrent duplicate enrolls safe: the
// second insert fails with a duplicate-key error instead of creating a
// second record.
type Enrollment struct {
	ID               uuid.UUID   `json:"id" gorm:"type:char(36);primaryKey"`
	UserID           uuid.UUID   `json:"user_id" gorm:"type:char(36);not null;uniqueIndex:idx_user_course"`
	CourseID         uuid.UUID   `json:"course_id" gorm:"type:char(36);not null;uniqueIndex:idx_user_course"`
	EnrolledAt       time.Time   `json:"enrolled_at" gorm:"not null"`
	Progress         int         `json:"progress" gorm:"not null;default:0"` // 0-100
	CompletedLessons []uuid.UUID `json:"completed_lessons" gorm:"serializer:json"`
	Status           string      `json:"status" gorm:"size:50;not null;default:'active'"`

	// Relations
	Course *Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}

// BeforeCreate sets UUID before creating the record.
func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
