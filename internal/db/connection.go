package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/deb007/travelbuddy/internal/models"
)

// DB wraps the GORM database connection.
type DB struct {
	*gorm.DB
}

// Connect opens (creating if needed) the sqlite database at path and runs
// schema migration. Foreign keys are enabled; a busy timeout keeps the single
// writer from failing under overlapping requests.
func Connect(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data dir: %w", err)
		}
	}

	dsn := path + "?_busy_timeout=5000&_foreign_keys=on"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{gdb}
	if err := db.Migrate(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the schema.
func (db *DB) Migrate() error {
	err := db.AutoMigrate(
		&models.Expense{},
		&models.Budget{},
		&models.ForexCard{},
		&models.ExchangeRate{},
		&models.RateOverride{},
		&models.TripSetting{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Health checks if the database connection is healthy.
func (db *DB) Health() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// GetSQLDB returns the underlying *sql.DB.
func (db *DB) GetSQLDB() (*sql.DB, error) {
	return db.DB.DB()
}
