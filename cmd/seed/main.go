package main

import (
	"context"
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"elearn/internal/auth"
	"elearn/internal/config"
	"elearn/internal/db"
	"elearn/internal/model"
	"elearn/internal/repository"
)

const seedPassword = "password123"

type seedUser struct {
	firstName string
	lastName  string
	email     string
	role      model.Role
}

var seedUsers = []seedUser{
	{"Alice", "Admin", "admin@elearn.test", model.RoleAdmin},
	{"Ivan", "Instructor", "ivan@elearn.test", model.RoleInstructor},
	{"Maria", "Gomez", "maria@elearn.test", model.RoleStudent},
	{"Carlos", "Lopez", "carlos@elearn.test", model.RoleStudent},
	{"Lucia", "Fernandez", "lucia@elearn.test", model.RoleStudent},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Lesson{},
		&model.Review{},
		&model.Enrollment{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	courseRepo := repository.NewCourseRepository(gormDB)

	created := 0
	for _, su := range seedUsers {
		if _, err := userRepo.FindByEmail(ctx, su.email); err == nil {
			log.Printf("User %s already exists, skipping", su.email)
			continue
		} else if err != gorm.ErrRecordNotFound {
			log.Fatalf("Failed to look up %s: %v", su.email, err)
		}

		hash, err := auth.HashPassword(seedPassword)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		user := &model.User{
			FirstName:    su.firstName,
			LastName:     su.lastName,
			Email:        su.email,
			PasswordHash: hash,
			Role:         su.role,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", su.email, err)
		}
		created++
	}
	log.Printf("Created %d users (password: %q)", created, seedPassword)

	courses, err := courseRepo.List(ctx)
	if err != nil {
		log.Fatalf("Failed to list courses: %v", err)
	}
	if len(courses) > 0 {
		log.Printf("Found %d existing courses, skipping course seed", len(courses))
		return
	}

	for _, course := range sampleCourses() {
		if err := courseRepo.Create(ctx, course); err != nil {
			log.Fatalf("Failed to create course %q: %v", course.Title, err)
		}
		log.Printf("Created course %q with %d lessons", course.Title, len(course.Lessons))
	}

	log.Println("Seed completed")
}

func sampleCourses() []*model.Course {
	return []*model.Course{
		{
			Title:       "Introduction to Python",
			Description: "Variables, control flow, functions, and your first scripts.",
			Thumbnail:   "/images/python-intro.jpg",
			Instructor: model.Instructor{
				Name:  "Ivan Instructor",
				Email: "ivan@elearn.test",
				Bio:   "Teaches programming fundamentals.",
			},
			Price:    decimal.NewFromFloat(29.99),
			Level:    model.LevelBeginner,
			Category: "programming",
			Lessons: []model.Lesson{
				{Title: "Getting Started", Order: 1, Duration: 12, VideoURL: "https://www.youtube.com/watch?v=rfscVS0vtbw"},
				{Title: "Variables and Types", Order: 2, Duration: 18, VideoURL: "https://www.youtube.com/watch?v=cQT33yu9pY8"},
				{Title: "Control Flow", Order: 3, Duration: 15, VideoURL: "https://youtu.be/Zp5MuPOtsSY"},
				{Title: "Functions", Order: 4, Duration: 20, VideoURL: "https://www.youtube.com/watch?v=9Os0o3wzS_I"},
				{Title: "Putting It Together", Order: 5, Duration: 25, VideoURL: "https://youtu.be/8DvywoWv6fI"},
			},
		},
		{
			Title:       "Web Development Basics",
			Description: "HTML, CSS, and enough JavaScript to be dangerous.",
			Thumbnail:   "/images/web-basics.jpg",
			Instructor: model.Instructor{
				Name:  "Ivan Instructor",
				Email: "ivan@elearn.test",
				Bio:   "Teaches programming fundamentals.",
			},
			Price:    decimal.NewFromFloat(39.99),
			Level:    model.LevelBeginner,
			Category: "web",
			Lessons: []model.Lesson{
				{Title: "How the Web Works", Order: 1, Duration: 10, VideoURL: "https://www.youtube.com/watch?v=hJHvdBlSxug"},
				{Title: "HTML Structure", Order: 2, Duration: 22, VideoURL: "https://youtu.be/UB1O30fR-EE"},
				{Title: "Styling with CSS", Order: 3, Duration: 26, VideoURL: "https://www.youtube.com/watch?v=yfoY53QXEnI"},
			},
		},
		{
			Title:       "Databases and SQL",
			Description: "Modeling data, writing queries, and keeping counters honest.",
			Thumbnail:   "/images/sql.jpg",
			Instructor: model.Instructor{
				Name:  "Ivan Instructor",
				Email: "ivan@elearn.test",
				Bio:   "Teaches programming fundamentals.",
			},
			Price:    decimal.NewFromFloat(49.99),
			Level:    model.LevelIntermediate,
			Category: "data",
			Lessons: []model.Lesson{
				{Title: "Relational Foundations", Order: 1, Duration: 14, VideoURL: "https://www.youtube.com/watch?v=HXV3zeQKqGY"},
				{Title: "SELECT and Friends", Order: 2, Duration: 19, VideoURL: "https://youtu.be/27axs9dO7AE"},
				{Title: "Joins", Order: 3, Duration: 21, VideoURL: "https://www.youtube.com/watch?v=9yeOJ0ZMUYw"},
				{Title: "Transactions", Order: 4, Duration: 17, VideoURL: "https://youtu.be/P80Js_qClUE"},
			},
		},
	}
}
