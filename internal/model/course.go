package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Course levels.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// Instructor is the denormalized instructor card embedded in a course.
type Instructor struct {
	Name      string `json:"name" gorm:"column:instructor_name;size:255"`
	Email     string `json:"email" gorm:"column:instructor_email;size:255"`
	AvatarURL string `json:"avatar_url" gorm:"column:instructor_avatar_url;size:512"`
	Bio       string `json:"bio" gorm:"column:instructor_bio;type:text"`
}

// Course represents a published course with its ordered lessons.
//
// StudentsEnrolled is a denormalized counter kept in lockstep with the
// enrollments table by EnrollmentService; it is never recomputed on read.
type Course struct {
	ID               uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Title            string          `json:"title" gorm:"size:255;not null"`
	Description      string          `json:"description" gorm:"type:text"`
	Thumbnail        string          `json:"thumbnail" gorm:"size:512"`
	Instructor       Instructor      `json:"instructor" gorm:"embedded"`
	Price            decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null;default:0"`
	Level            string          `json:"level" gorm:"size:50;default:'beginner'"`
	Category         string          `json:"category" gorm:"size:100;index"`
	StudentsEnrolled int             `json:"students_enrolled" gorm:"not null;default:0"`
	CreatedByID      *uuid.UUID      `json:"created_by_id,omitempty" gorm:"type:char(36);index"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	// Relations
	Lessons []Lesson `json:"lessons,omitempty" gorm:"foreignKey:CourseID"`
	Reviews []Review `json:"reviews,omitempty" gorm:"foreignKey:CourseID"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Lesson is a single unit of course content. Lessons are immutable once
// attached to a course; Order defines the sequence the viewer walks.
type Lesson struct {
	ID       uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	CourseID uuid.UUID `json:"course_id" gorm:"type:char(36);not null;index"`
	Title    string    `json:"title" gorm:"size:255;not null"`
	Content  string    `json:"content" gorm:"type:text"`
	Order    int       `json:"order" gorm:"column:sort_order;not null;default:0"`
	Duration int       `json:"duration" gorm:"not null;default:0"` // minutes
	VideoURL string    `json:"video_url" gorm:"size:512"`
}

// BeforeCreate sets UUID before creating the record.
func (l *Lesson) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// Review is a student rating attached to a course.
type Review struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	CourseID  uuid.UUID `json:"course_id" gorm:"type:char(36);not null;index"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:char(36);not null"`
	Rating    int       `json:"rating" gorm:"not null"`
	Comment   string    `json:"comment" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
