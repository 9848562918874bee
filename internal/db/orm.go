package db

import (
	"fmt"
	"os"
	"path/filepath"

	"charlesfind/safaritracker/internal/config"
	gormModels "charlesfind/safaritracker/internal/models/gorm"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// InitORM opens the gorm connection for the configured backend and
// migrates the sightings table. Only the postgres and sqlite backends
// use an ORM connection.
func InitORM(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		db, err = gorm.Open(postgres.Open(cfg.Database.DSN()), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
	case config.BackendSQLite:
		if dir := filepath.Dir(cfg.Database.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
			}
		}
		db, err = gorm.Open(sqlite.Open(cfg.Database.SQLitePath), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
	default:
		return nil, fmt.Errorf("backend %q has no ORM connection", cfg.Store.Backend)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	logger.Info("Connected via GORM", zap.String("backend", cfg.Store.Backend))
	return db, nil
}

// Migrate creates or updates the sightings table
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&gormModels.Sighting{}); err != nil {
		return fmt.Errorf("failed to migrate sightings: %w", err)
	}
	return nil
}
