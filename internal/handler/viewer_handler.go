package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"elearn/internal/errors"
	"elearn/internal/model"
	"elearn/internal/service"
)

// ViewerHandler handles the course viewer endpoints.
type ViewerHandler struct {
	viewerService service.ViewerService
}

// NewViewerHandler creates a new viewer handler.
func NewViewerHandler(viewerService service.ViewerService) *ViewerHandler {
	return &ViewerHandler{viewerService: viewerService}
}

// ViewerResponse is the viewer state plus the derived playback fields.
type ViewerResponse struct {
	CourseID           uuid.UUID      `json:"course_id"`
	CourseTitle        string         `json:"course_title"`
	Thumbnail          string         `json:"thumbnail"`
	Lessons            []model.Lesson `json:"lessons"`
	LessonIndex        int            `json:"lesson_index"`
	TotalLessons       int            `json:"total_lessons"`
	CurrentLesson      model.Lesson   `json:"current_lesson"`
	VideoURL           string         `json:"video_url"`
	HasPrevious        bool           `json:"has_previous"`
	HasNext            bool           `json:"has_next"`
	ProgressPercentage float64        `json:"progress_percentage"`
}

func viewerResponse(state *service.ViewerState) ViewerResponse {
	current, _ := state.CurrentLesson()
	return ViewerResponse{
		CourseID:           state.CourseID,
		CourseTitle:        state.CourseTitle,
		Thumbnail:          state.Thumbnail,
		Lessons:            state.Lessons,
		LessonIndex:        state.LessonIndex,
		TotalLessons:       state.TotalLessons(),
		CurrentLesson:      current,
		VideoURL:           state.CurrentVideoURL(),
		HasPrevious:        state.HasPrevious(),
		HasNext:            state.HasNext(),
		ProgressPercentage: state.ProgressPercentage(),
	}
}

// Open godoc
// @Summary Open the course viewer at a lesson position
// @Description Opens the viewer for an enrolled student. The optional lesson
// @Description query parameter selects a lesson; out-of-range values keep the
// @Description first lesson. nav=next or nav=previous steps from that lesson
// @Description with clamping at both ends.
// @Tags viewer
// @Produce json
// @Param id path string true "Course ID"
// @Param lesson query int false "Lesson index (0-based)"
// @Param nav query string false "next or previous"
// @Success 200 {object} ViewerResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /courses/{id}/viewer [get]
func (h *ViewerHandler) Open(c echo.Context) error {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid course id")
	}
	session := SessionFromContext(c)

	state, err := h.viewerService.OpenViewer(c.Request().Context(), session, courseID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	if raw := c.QueryParam("lesson"); raw != "" {
		if index, err := strconv.Atoi(raw); err == nil {
			state.SelectLesson(index)
		}
	}
	switch c.QueryParam("nav") {
	case "next":
		state.Next()
	case "previous":
		state.Previous()
	}

	return c.JSON(http.StatusOK, viewerResponse(state))
}
