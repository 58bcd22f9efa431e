package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"elearn/internal/auth"
	apperrors "elearn/internal/errors"
	"elearn/internal/model"
)

// MockEnrollmentService is a mock implementation of EnrollmentService.
type MockEnrollmentService struct {
	mock.Mock
}

func (m *MockEnrollmentService) Enroll(ctx context.Context, userID, courseID uuid.UUID) (*model.Enrollment, error) {
	args := m.Called(ctx, userID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Enrollment), args.Error(1)
}

func (m *MockEnrollmentService) Unenroll(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, courseID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEnrollmentService) IsEnrolled(ctx context.Context, userID, courseID uuid.UUID) bool {
	args := m.Called(ctx, userID, courseID)
	return args.Bool(0)
}

func (m *MockEnrollmentService) ListEnrollments(ctx context.Context, userID uuid.UUID) ([]EnrolledCourseView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]EnrolledCourseView), args.Error(1)
}

func (m *MockEnrollmentService) CountTotalEnrollments(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func lessonList(n int) []model.Lesson {
	lessons := make([]model.Lesson, 0, n)
	for i := n; i >= 1; i-- {
		// Built in reverse order on purpose: OpenViewer must sort by Order
		lessons = append(lessons, model.Lesson{
			ID:    uuid.New(),
			Title: "Lesson",
			Order: i,
		})
	}
	return lessons
}

func TestViewerService_OpenViewer(t *testing.T) {
	userID := uuid.New()
	courseID := uuid.New()
	student := auth.NewSession(userID, "student@example.com", model.RoleStudent)

	tests := []struct {
		name          string
		session       auth.Session
		setupMock     func(*MockCourseRepository, *MockEnrollmentService)
		expectedError error
	}{
		{
			name:          "anonymous session",
			session:       auth.Anonymous(),
			setupMock:     func(mCourse *MockCourseRepository, mEnroll *MockEnrollmentService) {},
			expectedError: apperrors.ErrNotAuthenticated,
		},
		{
			name:          "instructor cannot open the viewer",
			session:       auth.NewSession(userID, "ivan@example.com", model.RoleInstructor),
			setupMock:     func(mCourse *MockCourseRepository, mEnroll *MockEnrollmentService) {},
			expectedError: apperrors.ErrNotAStudent,
		},
		{
			name:    "student not enrolled",
			session: student,
			setupMock: func(mCourse *MockCourseRepository, mEnroll *MockEnrollmentService) {
				mEnroll.On("IsEnrolled", mock.Anything, userID, courseID).Return(false)
			},
			expectedError: apperrors.ErrNotEnrolled,
		},
		{
			name:    "course deleted after enrollment",
			session: student,
			setupMock: func(mCourse *MockCourseRepository, mEnroll *MockEnrollmentService) {
				mEnroll.On("IsEnrolled", mock.Anything, userID, courseID).Return(true)
				mCourse.On("FindByID", mock.Anything, courseID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrCourseNotFound,
		},
		{
			name:    "course without lessons",
			session: student,
			setupMock: func(mCourse *MockCourseRepository, mEnroll *MockEnrollmentService) {
				mEnroll.On("IsEnrolled", mock.Anything, userID, courseID).Return(true)
				mCourse.On("FindByID", mock.Anything, courseID).Return(&model.Course{ID: courseID, Title: "Empty"}, nil)
			},
			expectedError: apperrors.ErrNoLessons,
		},
		{
			name:    "ready at first lesson",
			session: student,
			setupMock: func(mCourse *MockCourseRepository, mEnroll *MockEnrollmentService) {
				mEnroll.On("IsEnrolled", mock.Anything, userID, courseID).Return(true)
				mCourse.On("FindByID", mock.Anything, courseID).Return(&model.Course{
					ID:      courseID,
					Title:   "Introduction to Python",
					Lessons: lessonList(5),
				}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCourseRepo := new(MockCourseRepository)
			mockEnrollService := new(MockEnrollmentService)
			tt.setupMock(mockCourseRepo, mockEnrollService)

			service := NewViewerService(mockCourseRepo, mockEnrollService)
			state, err := service.OpenViewer(context.Background(), tt.session, courseID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, state)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, state)
				assert.Equal(t, 0, state.LessonIndex)
				assert.Len(t, state.Lessons, 5)
				for i, lesson := range state.Lessons {
					assert.Equal(t, i+1, lesson.Order)
				}
			}

			mockCourseRepo.AssertExpectations(t)
			mockEnrollService.AssertExpectations(t)
		})
	}
}

func TestViewerState_NavigationClamps(t *testing.T) {
	const n = 5
	state := &ViewerState{Lessons: lessonList(n)}

	// Previous from the first lesson never goes negative
	for i := 0; i < n; i++ {
		state.Previous()
	}
	assert.Equal(t, 0, state.LessonIndex)
	assert.False(t, state.HasPrevious())

	// Next clamps at the last lesson no matter how often it is called
	for i := 0; i < n+5; i++ {
		state.Next()
	}
	assert.Equal(t, n-1, state.LessonIndex)
	assert.False(t, state.HasNext())
	assert.True(t, state.HasPrevious())
}

func TestViewerState_SelectLesson(t *testing.T) {
	state := &ViewerState{Lessons: lessonList(3)}

	state.SelectLesson(2)
	assert.Equal(t, 2, state.LessonIndex)

	// Out-of-range selections leave the state unchanged
	state.SelectLesson(3)
	assert.Equal(t, 2, state.LessonIndex)
	state.SelectLesson(-1)
	assert.Equal(t, 2, state.LessonIndex)
}

func TestViewerState_ProgressPercentage(t *testing.T) {
	state := &ViewerState{Lessons: lessonList(5)}

	assert.InDelta(t, 20.0, state.ProgressPercentage(), 0.001)

	state.Next()
	state.Next()
	state.Next()
	assert.Equal(t, 3, state.LessonIndex)
	assert.InDelta(t, 80.0, state.ProgressPercentage(), 0.001)

	state.Next()
	assert.InDelta(t, 100.0, state.ProgressPercentage(), 0.001)

	empty := &ViewerState{}
	assert.Equal(t, 0.0, empty.ProgressPercentage())
}

func TestEmbedVideoURL(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "watch URL",
			raw:      "https://www.youtube.com/watch?v=rfscVS0vtbw",
			expected: "https://www.youtube.com/embed/rfscVS0vtbw",
		},
		{
			name:     "watch URL with extra query parameters",
			raw:      "https://www.youtube.com/watch?v=rfscVS0vtbw&t=120s&list=xyz",
			expected: "https://www.youtube.com/embed/rfscVS0vtbw",
		},
		{
			name:     "short URL",
			raw:      "https://youtu.be/Zp5MuPOtsSY",
			expected: "https://www.youtube.com/embed/Zp5MuPOtsSY",
		},
		{
			name:     "short URL with query",
			raw:      "https://youtu.be/Zp5MuPOtsSY?si=abc",
			expected: "https://www.youtube.com/embed/Zp5MuPOtsSY",
		},
		{
			name:     "empty URL",
			raw:      "",
			expected: "",
		},
		{
			name:     "unrecognized host",
			raw:      "https://vimeo.com/123456",
			expected: "",
		},
		{
			name:     "watch URL without an id",
			raw:      "https://www.youtube.com/watch?v=",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EmbedVideoURL(tt.raw))
		})
	}
}

func TestViewerState_CurrentVideoURL(t *testing.T) {
	state := &ViewerState{
		Lessons: []model.Lesson{
			{Order: 1, VideoURL: "https://www.youtube.com/watch?v=abc123"},
			{Order: 2},
		},
	}

	assert.Equal(t, "https://www.youtube.com/embed/abc123", state.CurrentVideoURL())

	state.Next()
	assert.Equal(t, "", state.CurrentVideoURL())
}
