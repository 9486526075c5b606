package database

import (
	"context"
	"sync"
	"time"

	"exam-quiz-skill/config"
	"exam-quiz-skill/pkg/logger"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	mu sync.Mutex
	DB *gorm.DB
)

// connect opens the DB and applies pool configuration
func connect() (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(config.Cfg.Dns), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(config.Cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(config.Cfg.Database.MaxOpenConns)
	lifetime := time.Duration(config.Cfg.Database.MaxLifetime) * time.Minute
	sqlDB.SetConnMaxIdleTime(lifetime)
	sqlDB.SetConnMaxLifetime(lifetime)

	return db, nil
}

// ensureConnection verifies DB connectivity and reconnects if needed
func ensureConnection(ctx context.Context) error {
	if DB != nil {
		sqlDB, err := DB.DB()
		if err == nil && sqlDB.PingContext(ctx) == nil {
			return nil
		}
	}
	db, err := connect()
	if err != nil {
		logger.Error(err, "%v: failed to connect to database", config.ModuleDatabase)
		return err
	}
	DB = db
	return nil
}

// GetDB returns a healthy *gorm.DB, connecting lazily on first use.
func GetDB(ctx context.Context) (*gorm.DB, error) {
	mu.Lock()
	defer mu.Unlock()

	if err := ensureConnection(ctx); err != nil {
		return nil, err
	}
	return DB, nil
}

// Ping reports whether the database answers.
func Ping(ctx context.Context) error {
	db, err := GetDB(ctx)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
