package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "elearn/internal/errors"
	"elearn/internal/model"
	"elearn/internal/repository"
)

// MockCourseRepository is a mock implementation of CourseRepository.
type MockCourseRepository struct {
	mock.Mock
}

func (m *MockCourseRepository) Create(ctx context.Context, course *model.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *MockCourseRepository) Update(ctx context.Context, course *model.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *MockCourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCourseRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Course), args.Error(1)
}

func (m *MockCourseRepository) List(ctx context.Context) ([]model.Course, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Course), args.Error(1)
}

func (m *MockCourseRepository) ListPopular(ctx context.Context, limit int) ([]model.Course, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Course), args.Error(1)
}

func (m *MockCourseRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockEnrollmentRepository is a mock implementation of EnrollmentRepository.
type MockEnrollmentRepository struct {
	mock.Mock
}

func (m *MockEnrollmentRepository) Create(ctx context.Context, enrollment *model.Enrollment) error {
	args := m.Called(ctx, enrollment)
	return args.Error(0)
}

func (m *MockEnrollmentRepository) DeleteByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, courseID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEnrollmentRepository) Exists(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, courseID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEnrollmentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Enrollment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEnrollmentRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEnrollmentRepository) IncrementStudentCount(ctx context.Context, courseID uuid.UUID, delta int) error {
	args := m.Called(ctx, courseID, delta)
	return args.Error(0)
}

// WithTransaction runs fn against the mock itself so the calls made inside
// the transaction can be asserted like any other.
func (m *MockEnrollmentRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.EnrollmentRepository) error) error {
	return fn(ctx, m)
}

func studentUser(id uuid.UUID) *model.User {
	return &model.User{ID: id, Email: "student@example.com", Role: model.RoleStudent}
}

func TestEnrollmentService_Enroll(t *testing.T) {
	userID := uuid.New()
	courseID := uuid.New()

	tests := []struct {
		name          string
		setupMock     func(*MockUserRepository, *MockCourseRepository, *MockEnrollmentRepository)
		expectedError error
	}{
		{
			name: "successful enrollment increments counter once",
			setupMock: func(mUser *MockUserRepository, mCourse *MockCourseRepository, mEnroll *MockEnrollmentRepository) {
				mUser.On("FindByID", mock.Anything, userID).Return(studentUser(userID), nil)
				mCourse.On("FindByID", mock.Anything, courseID).Return(&model.Course{ID: courseID, Title: "Go"}, nil)
				mEnroll.On("Create", mock.Anything, mock.AnythingOfType("*model.Enrollment")).Return(nil)
				mEnroll.On("IncrementStudentCount", mock.Anything, courseID, 1).Return(nil).Once()
			},
		},
		{
			name: "user not found",
			setupMock: func(mUser *MockUserRepository, mCourse *MockCourseRepository, mEnroll *MockEnrollmentRepository) {
				mUser.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
		{
			name: "instructor cannot enroll",
			setupMock: func(mUser *MockUserRepository, mCourse *MockCourseRepository, mEnroll *MockEnrollmentRepository) {
				mUser.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID, Role: model.RoleInstructor}, nil)
			},
			expectedError: apperrors.ErrNotAStudent,
		},
		{
			name: "course not found",
			setupMock: func(mUser *MockUserRepository, mCourse *MockCourseRepository, mEnroll *MockEnrollmentRepository) {
				mUser.On("FindByID", mock.Anything, userID).Return(studentUser(userID), nil)
				mCourse.On("FindByID", mock.Anything, courseID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrCourseNotFound,
		},
		{
			name: "duplicate key on insert reads as already enrolled, counter untouched",
			setupMock: func(mUser *MockUserRepository, mCourse *MockCourseRepository, mEnroll *MockEnrollmentRepository) {
				mUser.On("FindByID", mock.Anything, userID).Return(studentUser(userID), nil)
				mCourse.On("FindByID", mock.Anything, courseID).Return(&model.Course{ID: courseID}, nil)
				mEnroll.On("Create", mock.Anything, mock.AnythingOfType("*model.Enrollment")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrAlreadyEnrolled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(MockUserRepository)
			mockCourseRepo := new(MockCourseRepository)
			mockEnrollRepo := new(MockEnrollmentRepository)
			tt.setupMock(mockUserRepo, mockCourseRepo, mockEnrollRepo)

			service := NewEnrollmentService(mockUserRepo, mockCourseRepo, mockEnrollRepo, nil)
			enrollment, err := service.Enroll(context.Background(), userID, courseID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, enrollment)
				mockEnrollRepo.AssertNotCalled(t, "IncrementStudentCount", mock.Anything, mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, enrollment)
				assert.Equal(t, userID, enrollment.UserID)
				assert.Equal(t, courseID, enrollment.CourseID)
				assert.Equal(t, 0, enrollment.Progress)
				assert.Equal(t, model.EnrollmentActive, enrollment.Status)
				assert.Empty(t, enrollment.CompletedLessons)
				assert.False(t, enrollment.EnrolledAt.IsZero())
			}

			mockUserRepo.AssertExpectations(t)
			mockCourseRepo.AssertExpectations(t)
			mockEnrollRepo.AssertExpectations(t)
		})
	}
}

func TestEnrollmentService_Unenroll(t *testing.T) {
	userID := uuid.New()
	courseID := uuid.New()

	t.Run("removes enrollment and decrements counter", func(t *testing.T) {
		mockEnrollRepo := new(MockEnrollmentRepository)
		mockEnrollRepo.On("DeleteByUserAndCourse", mock.Anything, userID, courseID).Return(true, nil)
		mockEnrollRepo.On("IncrementStudentCount", mock.Anything, courseID, -1).Return(nil).Once()

		service := NewEnrollmentService(new(MockUserRepository), new(MockCourseRepository), mockEnrollRepo, nil)
		removed, err := service.Unenroll(context.Background(), userID, courseID)

		assert.NoError(t, err)
		assert.True(t, removed)
		mockEnrollRepo.AssertExpectations(t)
	})

	t.Run("missing enrollment is not an error and leaves the counter alone", func(t *testing.T) {
		mockEnrollRepo := new(MockEnrollmentRepository)
		mockEnrollRepo.On("DeleteByUserAndCourse", mock.Anything, userID, courseID).Return(false, nil)

		service := NewEnrollmentService(new(MockUserRepository), new(MockCourseRepository), mockEnrollRepo, nil)
		removed, err := service.Unenroll(context.Background(), userID, courseID)

		assert.NoError(t, err)
		assert.False(t, removed)
		mockEnrollRepo.AssertNotCalled(t, "IncrementStudentCount", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestEnrollmentService_IsEnrolled(t *testing.T) {
	userID := uuid.New()
	courseID := uuid.New()

	tests := []struct {
		name     string
		exists   bool
		err      error
		expected bool
	}{
		{name: "enrolled", exists: true, expected: true},
		{name: "not enrolled", exists: false, expected: false},
		{name: "store error reads as not enrolled", exists: false, err: gorm.ErrInvalidDB, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockEnrollRepo := new(MockEnrollmentRepository)
			mockEnrollRepo.On("Exists", mock.Anything, userID, courseID).Return(tt.exists, tt.err)

			service := NewEnrollmentService(new(MockUserRepository), new(MockCourseRepository), mockEnrollRepo, nil)
			assert.Equal(t, tt.expected, service.IsEnrolled(context.Background(), userID, courseID))
		})
	}
}

func TestEnrollmentService_ListEnrollmentsSkipsMissingCourses(t *testing.T) {
	userID := uuid.New()
	liveCourseID := uuid.New()
	deadCourseID := uuid.New()
	enrolledAt := time.Now().UTC()

	mockEnrollRepo := new(MockEnrollmentRepository)
	mockEnrollRepo.On("ListByUser", mock.Anything, userID).Return([]model.Enrollment{
		{
			UserID:     userID,
			CourseID:   liveCourseID,
			EnrolledAt: enrolledAt,
			Progress:   40,
			Status:     model.EnrollmentActive,
			Course: &model.Course{
				ID:         liveCourseID,
				Title:      "Introduction to Python",
				Level:      model.LevelBeginner,
				Instructor: model.Instructor{Name: "Ivan Instructor"},
			},
		},
		{
			// Course record deleted since enrolling; the row must be skipped
			UserID:   userID,
			CourseID: deadCourseID,
			Status:   model.EnrollmentActive,
			Course:   nil,
		},
	}, nil)

	service := NewEnrollmentService(new(MockUserRepository), new(MockCourseRepository), mockEnrollRepo, nil)
	views, err := service.ListEnrollments(context.Background(), userID)

	assert.NoError(t, err)
	assert.Len(t, views, 1)
	assert.Equal(t, liveCourseID, views[0].CourseID)
	assert.Equal(t, "Introduction to Python", views[0].Title)
	assert.Equal(t, "Ivan Instructor", views[0].InstructorName)
	assert.Equal(t, 40, views[0].Progress)
	assert.Equal(t, enrolledAt, views[0].EnrolledAt)
}

func TestReportEnrollment(t *testing.T) {
	courseID := uuid.New()

	tests := []struct {
		name            string
		err             error
		expectedSuccess bool
		expectedMessage string
	}{
		{
			name:            "success",
			err:             nil,
			expectedSuccess: true,
			expectedMessage: "Enrollment successful! The course is now on your dashboard.",
		},
		{
			name:            "already enrolled",
			err:             apperrors.ErrAlreadyEnrolled,
			expectedMessage: "You are already enrolled in this course.",
		},
		{
			name:            "not a student",
			err:             apperrors.ErrNotAStudent,
			expectedMessage: "Only students can enroll in courses.",
		},
		{
			name:            "course gone",
			err:             apperrors.ErrCourseNotFound,
			expectedMessage: "This course is no longer available.",
		},
		{
			name:            "unexpected store failure gets the generic message",
			err:             gorm.ErrInvalidDB,
			expectedMessage: "Enrollment failed, please try again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ReportEnrollment(courseID, tt.err)
			assert.Equal(t, tt.expectedSuccess, result.Success)
			assert.Equal(t, tt.expectedMessage, result.Message)
			assert.Equal(t, courseID, result.CourseID)
		})
	}
}
