package database

import (
	"fmt"
	"log/slog"
	"time"

	"operations-api/internal/config"
	"operations-api/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const seedBatchSize = 500

type DB struct {
	*gorm.DB
	config *config.DatabaseConfig
}

// New opens the record store selected by cfg.Driver
func New(cfg *config.DatabaseConfig) (*DB, error) {
	logLevel := logger.Silent
	if cfg.LogQueries {
		logLevel = logger.Info
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	dialector, err := openDialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxConnections)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{
		DB:     db,
		config: cfg,
	}, nil
}

func openDialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN()), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.SQLitePath), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// AutoMigrate creates the read tables in a local sqlite store. Production
// tables are owned by the orchestration system and are never migrated here.
func (db *DB) AutoMigrate() error {
	return db.DB.AutoMigrate(
		&models.Transfer{},
		&models.TransactionRequest{},
	)
}

// Seed inserts sample rows in one transaction
func (db *DB) Seed(transfers []*models.Transfer, requests []*models.TransactionRequest) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if len(transfers) > 0 {
			if err := tx.CreateInBatches(transfers, seedBatchSize).Error; err != nil {
				return fmt.Errorf("failed to seed transfers: %w", err)
			}
		}
		if len(requests) > 0 {
			if err := tx.CreateInBatches(requests, seedBatchSize).Error; err != nil {
				return fmt.Errorf("failed to seed transaction requests: %w", err)
			}
		}
		return nil
	})
}

func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (db *DB) HealthCheck() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Initialize creates and configures the database connection
func Initialize(cfg *config.Config) (*DB, error) {
	db, err := New(&cfg.Database)
	if err != nil {
		return nil, err
	}

	if cfg.Database.Driver == config.DriverSQLite {
		if err := db.AutoMigrate(); err != nil {
			return nil, fmt.Errorf("failed to prepare sqlite store: %w", err)
		}
	}

	slog.Info("database initialized", "driver", cfg.Database.Driver)

	return db, nil
}
