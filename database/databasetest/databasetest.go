// Package databasetest opens throwaway in-memory databases for tests.
package databasetest

import (
	"io"
	"testing"

	"github.com/sahilchouksey/academic-portfolio/database"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a migrated in-memory store that is closed when t ends
func Open(t testing.TB) *database.GORMStore {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// Every connection to :memory: is a separate database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	store := database.NewGORMStore(db, QuietLogger())
	if err := store.Init(); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() { _ = store.Close() })
	return store
}

// QuietLogger is a logger that discards everything
func QuietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
