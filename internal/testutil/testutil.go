// Package testutil provides a shared in-memory database for tests so they
// can run in parallel without a real server.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/devnotex/devnotex/db"
)

var dbCounter atomic.Int64

// OpenTestDB opens a fresh in-memory sqlite database with the full schema.
// Each call gets its own database, so tests never see each other's rows.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbCounter.Add(1))

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})

	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// A shared-cache in-memory DB vanishes when its last connection closes;
	// pin the pool to one connection so the schema survives the whole test.
	sqlDB, err := gdb.DB()

	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(1)

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return gdb
}
