package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"elearn/internal/model"
)

// newDryRunDB opens a gorm handle that builds statements without ever
// touching a database.
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "dryrun:dryrun@tcp(127.0.0.1:3306)/dryrun?parseTime=true",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:                 true,
		SkipDefaultTransaction: true,
		TranslateError:         true,
		DisableAutomaticPing:   true,
	})
	if err != nil {
		t.Fatalf("failed to open dry-run db: %v", err)
	}
	return db
}

func TestCourseRepositoryUpdateSkipsEnrollmentCounter(t *testing.T) {
	db := newDryRunDB(t)

	var updateSQL string
	err := db.Callback().Update().After("gorm:update").Register("capture_update_sql", func(tx *gorm.DB) {
		updateSQL = tx.Statement.SQL.String()
	})
	assert.NoError(t, err)

	repo := NewCourseRepository(db)

	// A caller updating catalog fields may hold a stale counter, e.g. a
	// cached course loaded before a concurrent enrollment committed. The
	// update must leave students_enrolled untouched either way.
	course := &model.Course{
		ID:               uuid.New(),
		Title:            "Go Basics",
		Description:      "An introduction",
		Level:            model.LevelBeginner,
		StudentsEnrolled: 42,
	}

	assert.NoError(t, repo.Update(context.Background(), course))

	assert.Contains(t, updateSQL, "`title`")
	assert.Contains(t, updateSQL, "`description`")
	assert.Contains(t, updateSQL, "`price`")
	assert.NotContains(t, updateSQL, "students_enrolled")
}
