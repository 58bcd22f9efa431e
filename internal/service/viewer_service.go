package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"elearn/internal/auth"
	apperrors "elearn/internal/errors"
	"elearn/internal/model"
	"elearn/internal/repository"
)

// ViewerState is the lesson-playback state for one student and one course.
// The lesson list is fixed and ordered once loaded; only the index moves.
type ViewerState struct {
	CourseID    uuid.UUID      `json:"course_id"`
	CourseTitle string         `json:"course_title"`
	Thumbnail   string         `json:"thumbnail"`
	Lessons     []model.Lesson `json:"lessons"`
	LessonIndex int            `json:"lesson_index"`
}

// ViewerService gates and builds the course viewer.
type ViewerService interface {
	OpenViewer(ctx context.Context, session auth.Session, courseID uuid.UUID) (*ViewerState, error)
}

type viewerService struct {
	courseRepo        repository.CourseRepository
	enrollmentService EnrollmentService
}

// NewViewerService creates a new viewer service.
func NewViewerService(courseRepo repository.CourseRepository, enrollmentService EnrollmentService) ViewerService {
	return &viewerService{
		courseRepo:        courseRepo,
		enrollmentService: enrollmentService,
	}
}

// OpenViewer checks that the session belongs to an enrolled student and
// returns the viewer positioned at the first lesson. The checks run in a
// fixed order so the caller gets the most specific denial: authentication,
// role, enrollment, course existence, then lesson availability.
func (s *viewerService) OpenViewer(ctx context.Context, session auth.Session, courseID uuid.UUID) (*ViewerState, error) {
	if !session.Authenticated {
		return nil, apperrors.ErrNotAuthenticated
	}
	if !session.IsStudent() {
		return nil, apperrors.ErrNotAStudent
	}
	if !s.enrollmentService.IsEnrolled(ctx, session.UserID, courseID) {
		return nil, apperrors.ErrNotEnrolled
	}

	course, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("find course: %w", err)
	}

	if len(course.Lessons) == 0 {
		return nil, apperrors.ErrNoLessons
	}

	lessons := make([]model.Lesson, len(course.Lessons))
	copy(lessons, course.Lessons)
	sort.SliceStable(lessons, func(i, j int) bool { return lessons[i].Order < lessons[j].Order })

	return &ViewerState{
		CourseID:    course.ID,
		CourseTitle: course.Title,
		Thumbnail:   course.Thumbnail,
		Lessons:     lessons,
		LessonIndex: 0,
	}, nil
}

// SelectLesson jumps to the lesson at index. Out-of-range indexes are ignored.
func (v *ViewerState) SelectLesson(index int) {
	if index >= 0 && index < len(v.Lessons) {
		v.LessonIndex = index
	}
}

// HasPrevious reports whether a lesson exists before the current one.
func (v *ViewerState) HasPrevious() bool {
	return v.LessonIndex > 0
}

// HasNext reports whether a lesson exists after the current one.
func (v *ViewerState) HasNext() bool {
	return v.LessonIndex < len(v.Lessons)-1
}

// Previous moves to the previous lesson, clamping at the first.
func (v *ViewerState) Previous() {
	if v.HasPrevious() {
		v.LessonIndex--
	}
}

// Next moves to the next lesson, clamping at the last.
func (v *ViewerState) Next() {
	if v.HasNext() {
		v.LessonIndex++
	}
}

// CurrentLesson returns the lesson at the current index.
func (v *ViewerState) CurrentLesson() (model.Lesson, bool) {
	if v.LessonIndex < 0 || v.LessonIndex >= len(v.Lessons) {
		return model.Lesson{}, false
	}
	return v.Lessons[v.LessonIndex], true
}

// CurrentVideoURL returns the embeddable video URL for the current lesson,
// or "" when the lesson has no video or the URL shape is not recognized.
func (v *ViewerState) CurrentVideoURL() string {
	lesson, ok := v.CurrentLesson()
	if !ok {
		return ""
	}
	return EmbedVideoURL(lesson.VideoURL)
}

// ProgressPercentage is the viewing position through the lesson list,
// (index+1)/total*100. It tracks position, not lesson completion.
func (v *ViewerState) ProgressPercentage() float64 {
	if len(v.Lessons) == 0 {
		return 0
	}
	return float64(v.LessonIndex+1) / float64(len(v.Lessons)) * 100
}

// TotalLessons returns the number of lessons in the course.
func (v *ViewerState) TotalLessons() int {
	return len(v.Lessons)
}

// EmbedVideoURL normalizes the two recognized YouTube URL shapes into the
// embed form the player iframe accepts:
//
//	https://www.youtube.com/watch?v=VIDEO_ID
//	https://youtu.be/VIDEO_ID
//
// Anything else, including an empty URL, yields "".
func EmbedVideoURL(raw string) string {
	if raw == "" {
		return ""
	}
	if _, rest, found := strings.Cut(raw, "youtube.com/watch?v="); found {
		videoID, _, _ := strings.Cut(rest, "&")
		if videoID == "" {
			return ""
		}
		return "https://www.youtube.com/embed/" + videoID
	}
	if _, rest, found := strings.Cut(raw, "youtu.be/"); found {
		videoID, _, _ := strings.Cut(rest, "?")
		if videoID == "" {
			return ""
		}
		return "https://www.youtube.com/embed/" + videoID
	}
	return ""
}
