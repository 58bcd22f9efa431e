package main

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"elearn/internal/auth"
	"elearn/internal/cache"
	"elearn/internal/config"
	"elearn/internal/db"
	"elearn/internal/handler"
	"elearn/internal/model"
	"elearn/internal/repository"
	"elearn/internal/router"
	"elearn/internal/service"
)

func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Lesson{},
		&model.Review{},
		&model.Enrollment{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	courseRepo := repository.NewCourseRepository(gormDB)
	enrollmentRepo := repository.NewEnrollmentRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, enrollmentRepo)
	courseService := service.NewCourseService(courseRepo, cacheClient)
	enrollmentService := service.NewEnrollmentService(userRepo, courseRepo, enrollmentRepo, cacheClient)
	viewerService := service.NewViewerService(courseRepo, enrollmentService)
	statsService := service.NewStatsService(userRepo, courseRepo, enrollmentRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	courseHandler := handler.NewCourseHandler(courseService)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentService)
	viewerHandler := handler.NewViewerHandler(viewerService)
	statsHandler := handler.NewStatsHandler(statsService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		userHandler,
		courseHandler,
		enrollmentHandler,
		viewerHandler,
		statsHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
