package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"elearn/internal/errors"
	"elearn/internal/service"
)

// EnrollmentHandler handles enrollment endpoints.
type EnrollmentHandler struct {
	enrollmentService service.EnrollmentService
}

// NewEnrollmentHandler creates a new enrollment handler.
func NewEnrollmentHandler(enrollmentService service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService}
}

// EnrollmentStatusResponse reports whether the caller is enrolled in a course.
type EnrollmentStatusResponse struct {
	CourseID uuid.UUID `json:"course_id"`
	Enrolled bool      `json:"enrolled"`
}

// UnenrollResponse reports whether an enrollment was removed.
type UnenrollResponse struct {
	CourseID uuid.UUID `json:"course_id"`
	Removed  bool      `json:"removed"`
}

// Enroll godoc
// @Summary Enroll the authenticated student in a course
// @Tags enrollments
// @Produce json
// @Param id path string true "Course ID"
// @Success 201 {object} service.EnrollmentResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} service.EnrollmentResult
// @Router /courses/{id}/enroll [post]
func (h *EnrollmentHandler) Enroll(c echo.Context) error {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid course id")
	}
	session := SessionFromContext(c)

	_, err = h.enrollmentService.Enroll(c.Request().Context(), session.UserID, courseID)
	result := service.ReportEnrollment(courseID, err)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, result)
	}

	return c.JSON(http.StatusCreated, result)
}

// Unenroll godoc
// @Summary Remove the authenticated student's enrollment in a course
// @Tags enrollments
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} UnenrollResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /courses/{id}/enroll [delete]
func (h *EnrollmentHandler) Unenroll(c echo.Context) error {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid course id")
	}
	session := SessionFromContext(c)

	removed, err := h.enrollmentService.Unenroll(c.Request().Context(), session.UserID, courseID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, UnenrollResponse{CourseID: courseID, Removed: removed})
}

// Status godoc
// @Summary Check whether the authenticated student is enrolled in a course
// @Tags enrollments
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} EnrollmentStatusResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /courses/{id}/enrollment [get]
func (h *EnrollmentHandler) Status(c echo.Context) error {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid course id")
	}
	session := SessionFromContext(c)

	enrolled := h.enrollmentService.IsEnrolled(c.Request().Context(), session.UserID, courseID)
	return c.JSON(http.StatusOK, EnrollmentStatusResponse{CourseID: courseID, Enrolled: enrolled})
}

// ListMine godoc
// @Summary List the authenticated student's enrollments with course data
// @Tags enrollments
// @Produce json
// @Success 200 {array} service.EnrolledCourseView
// @Router /enrollments [get]
func (h *EnrollmentHandler) ListMine(c echo.Context) error {
	session := SessionFromContext(c)

	views, err := h.enrollmentService.ListEnrollments(c.Request().Context(), session.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, views)
}
