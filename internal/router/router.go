package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"elearn/internal/auth"
	"elearn/internal/config"
	"elearn/internal/errors"
	"elearn/internal/handler"
	"elearn/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	courseHandler *handler.CourseHandler,
	enrollmentHandler *handler.EnrollmentHandler,
	viewerHandler *handler.ViewerHandler,
	statsHandler *handler.StatsHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Public catalog
	api.GET("/courses", courseHandler.List)
	api.GET("/courses/popular", courseHandler.Popular)
	api.GET("/courses/:id", courseHandler.Get)
	api.GET("/instructors", userHandler.ListInstructors)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	secured.GET("/me", userHandler.Me)
	secured.PUT("/me/password", userHandler.ChangePassword)

	// Student routes
	student := secured.Group("", RequireRoles(model.RoleStudent))
	student.POST("/courses/:id/enroll", enrollmentHandler.Enroll)
	student.DELETE("/courses/:id/enroll", enrollmentHandler.Unenroll)
	student.GET("/courses/:id/enrollment", enrollmentHandler.Status)
	student.GET("/enrollments", enrollmentHandler.ListMine)
	student.GET("/courses/:id/viewer", viewerHandler.Open)

	// Content management routes
	manage := secured.Group("", RequireRoles(model.RoleInstructor, model.RoleAdmin))
	manage.POST("/courses", courseHandler.Create)
	manage.PUT("/courses/:id", courseHandler.Update)
	manage.DELETE("/courses/:id", courseHandler.Delete)

	// Admin routes
	admin := secured.Group("/admin", RequireRoles(model.RoleAdmin))
	admin.GET("/stats", statsHandler.Platform)
	admin.GET("/students", userHandler.ListStudents)
	admin.DELETE("/users/:id", userHandler.Delete)
}

// RequireRoles rejects requests whose session does not carry one of the
// given roles. The check itself lives in auth.Authorize so handlers and
// middleware share one gate.
func RequireRoles(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := handler.SessionFromContext(c)
			if err := auth.Authorize(session, roles...); err != nil {
				httpErr := errors.MapErrorToHTTP(err)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
