// Package dbtest 为测试提供独立的内存 SQLite 库
package dbtest

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"e-course-api/internal/core/database"
)

// New 每次调用都是一个全新的库，已完成建表；单连接保证内存库不被回收
func New(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.NewGorm(database.Opts{
		Driver:       "sqlite",
		DSN:          "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
