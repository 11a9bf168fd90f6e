package service

import (
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shorturl-go/internal/apperrors"
	"shorturl-go/internal/model"
)

// setupTestDB 为每个用例构造独立的内存库。连接数限制为 1：
// sqlite 的 :memory: 按连接隔离，单连接保证所有查询落在同一个库，
// 同时把并发写串行化在连接池层。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&model.User{}, &model.ShortLink{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return db
}

func appErrCode(t *testing.T, err error) int {
	t.Helper()

	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		t.Fatalf("expected *apperrors.AppError, got %T: %v", err, err)
	}
	return appErr.Code
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
