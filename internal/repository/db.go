package repository

import (
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"shorturl-go/internal/model"
	"shorturl-go/pkg/logging"
)

// InitDB connects to Postgres, migrates the schema and returns the
// handle. TranslateError is on so unique-index violations surface as
// gorm.ErrDuplicatedKey — the services rely on that instead of
// check-then-insert round trips.
func InitDB(logger *zap.Logger, atomicLogLevel zap.AtomicLevel) *gorm.DB {
	dsn := viper.GetString("db.dsn")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logging.NewGormLogger(logger, logging.ToGormLogLevel(atomicLogLevel.Level())), // 注入 logger 并转换级别
		TranslateError: true,
	})
	if err != nil {
		logger.Fatal("Failed to connect database", zap.Error(err))
	}

	if err := db.AutoMigrate(&model.User{}, &model.ShortLink{}); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	// 连接池配置
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get underlying sql.DB", zap.Error(err))
	}

	maxOpen := viper.GetInt("db.max_open_conns")
	if maxOpen <= 0 {
		maxOpen = 25
	}
	maxIdle := viper.GetInt("db.max_idle_conns")
	if maxIdle <= 0 {
		maxIdle = 10
	}
	maxLifetime := viper.GetDuration("db.conn_max_lifetime")
	if maxLifetime <= 0 {
		maxLifetime = 5 * time.Minute
	}

	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(maxLifetime)

	return db
}
