// Package testutil provides the shared database and logger fixtures for
// package-level tests. Tests run against an in-memory SQLite database with
// the same schema the server migrates, so repo and service behavior is
// exercised against real SQL rather than mocks.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	types "github.com/ymorita/studylog/internal/domain"
	"github.com/ymorita/studylog/internal/pkg/logger"
)

var dbSeq atomic.Int64

// OpenDB opens a fresh in-memory database, migrates the journal schema and
// creates the partial unique index on learning_log_entry. Each call gets an
// isolated database.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:studylog_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	// A shared-cache memory db disappears when its last connection closes;
	// pinning the pool to one connection keeps it alive for the test.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(
		&types.Theme{},
		&types.LearningLogEntry{},
		&types.MetaNote{},
		&types.MetaNoteTheme{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS "uniq_learning_log_entry_owner_theme_date"
		ON "learning_log_entry" ("owner_id", "theme_id", "date")
		WHERE "state" <> 'DELETED'
	`).Error; err != nil {
		t.Fatalf("create partial unique index: %v", err)
	}
	return db
}

func NewLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	t.Cleanup(func() { log.Sync() })
	return log
}
