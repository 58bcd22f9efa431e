package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"elearn/internal/errors"
	"elearn/internal/model"
	"elearn/internal/service"
)

// CourseHandler handles course catalog endpoints.
type CourseHandler struct {
	courseService service.CourseService
}

// NewCourseHandler creates a new course handler.
func NewCourseHandler(courseService service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// LessonRequest is one lesson in a course create/update payload.
type LessonRequest struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content"`
	Order    int    `json:"order"`
	Duration int    `json:"duration"`
	VideoURL string `json:"video_url"`
}

// CourseRequest represents a course create/update payload.
type CourseRequest struct {
	Title           string          `json:"title" validate:"required"`
	Description     string          `json:"description"`
	Thumbnail       string          `json:"thumbnail"`
	InstructorName  string          `json:"instructor_name" validate:"required"`
	InstructorEmail string          `json:"instructor_email"`
	InstructorBio   string          `json:"instructor_bio"`
	Price           decimal.Decimal `json:"price"`
	Level           string          `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	Category        string          `json:"category"`
	Lessons         []LessonRequest `json:"lessons" validate:"dive"`
}

func (req *CourseRequest) toModel() *model.Course {
	course := &model.Course{
		Title:       req.Title,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
		Instructor: model.Instructor{
			Name:  req.InstructorName,
			Email: req.InstructorEmail,
			Bio:   req.InstructorBio,
		},
		Price:    req.Price,
		Level:    req.Level,
		Category: req.Category,
	}
	for _, l := range req.Lessons {
		course.Lessons = append(course.Lessons, model.Lesson{
			Title:    l.Title,
			Content:  l.Content,
			Order:    l.Order,
			Duration: l.Duration,
			VideoURL: l.VideoURL,
		})
	}
	return course
}

// List godoc
// @Summary List all courses
// @Tags courses
// @Produce json
// @Success 200 {array} model.Course
// @Router /courses [get]
func (h *CourseHandler) List(c echo.Context) error {
	courses, err := h.courseService.ListCourses(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, courses)
}

// Popular godoc
// @Summary List the most enrolled courses
// @Tags courses
// @Produce json
// @Param limit query int false "Maximum number of courses"
// @Success 200 {array} model.Course
// @Router /courses/popular [get]
func (h *CourseHandler) Popular(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	courses, err := h.courseService.ListPopularCourses(c.Request().Context(), limit)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, courses)
}

// Get godoc
// @Summary Get a course with its lessons and reviews
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} model.Course
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /courses/{id} [get]
func (h *CourseHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid course id")
	}

	course, err := h.courseService.GetCourse(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, course)
}

// Create godoc
// @Summary Create a course
// @Tags courses
// @Accept json
// @Produce json
// @Param request body CourseRequest true "Course data"
// @Success 201 {object} model.Course
// @Failure 400 {object} errors.ErrorResponse
// @Router /courses [post]
func (h *CourseHandler) Create(c echo.Context) error {
	var req CourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	course := req.toModel()
	session := SessionFromContext(c)
	if session.Authenticated {
		createdBy := session.UserID
		course.CreatedByID = &createdBy
	}

	if err := h.courseService.CreateCourse(c.Request().Context(), course); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, course)
}

// Update godoc
// @Summary Update a course
// @Tags courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param request body CourseRequest true "Course data"
// @Success 200 {object} model.Course
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /courses/{id} [put]
func (h *CourseHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid course id")
	}

	var req CourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	course, err := h.courseService.GetCourse(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	course.Title = req.Title
	course.Description = req.Description
	course.Thumbnail = req.Thumbnail
	course.Instructor.Name = req.InstructorName
	course.Instructor.Email = req.InstructorEmail
	course.Instructor.Bio = req.InstructorBio
	course.Price = req.Price
	if req.Level != "" {
		course.Level = req.Level
	}
	course.Category = req.Category

	if err := h.courseService.UpdateCourse(c.Request().Context(), course); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, course)
}

// Delete godoc
// @Summary Delete a course
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /courses/{id} [delete]
func (h *CourseHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid course id")
	}

	if err := h.courseService.DeleteCourse(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "course deleted"})
}
