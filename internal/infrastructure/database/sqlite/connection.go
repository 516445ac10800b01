package sqlite

import (
	"fmt"
	"hydration/internal/domain/entity"
	"hydration/internal/pkg/logger"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	dbInstance *gorm.DB
	once       sync.Once
)

// NewDB initializes the process-wide GORM connection (singleton).
// It exits the process when the database cannot be opened, as nothing works without it.
func NewDB(path string, log logger.Logger) *gorm.DB {
	once.Do(func() {
		db, err := Open(path, gormlogger.Warn)
		if err != nil {
			log.Error(fmt.Sprintf("Failed to open database %s", path), err)
			os.Exit(1)
		}
		log.Info(fmt.Sprintf("Successfully connected to database: %s", path))
		dbInstance = db
	})
	return dbInstance
}

// Open connects to the SQLite database at path and migrates the schema.
func Open(path string, level gormlogger.LogLevel) (*gorm.DB, error) {
	newLogger := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true, // Ignore ErrRecordNotFound error for logger
			Colorful:                  false,
		},
	)

	dsn := path
	if !strings.Contains(dsn, "?") {
		// The cron goroutine writes while handlers read.
		dsn += "?_busy_timeout=5000"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// AutoMigrate automatically migrates the database schema for the defined entities.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.KeyValue{},
		&entity.ScheduledReminder{},
	)
	if err != nil {
		return fmt.Errorf("schema migration failed: %w", err)
	}
	return nil
}

// CloseDB closes the database connection if it's open.
func CloseDB() error {
	if dbInstance != nil {
		return Close(dbInstance)
	}
	return nil
}

// Close closes db's underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying *sql.DB: %w", err)
	}
	return sqlDB.Close()
}
