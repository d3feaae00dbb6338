package database

import (
	"testing"

	"operations-api/internal/config"
	"operations-api/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens a migrated in-memory sqlite store
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// every new connection to :memory: is a fresh, empty database
	sqlDB.SetMaxOpenConns(1)

	testDB := &DB{
		DB: db,
		config: &config.DatabaseConfig{
			Driver:         config.DriverSQLite,
			MaxConnections: 1,
			MaxIdleConns:   1,
		},
	}

	if err := testDB.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		_ = testDB.Close()
	})

	return testDB
}

// CreateTestTransfers inserts fixtures, failing the test on invalid rows
func CreateTestTransfers(t *testing.T, db *DB, transfers ...*models.Transfer) {
	t.Helper()

	for _, transfer := range transfers {
		if err := transfer.Validate(); err != nil {
			t.Fatalf("invalid transfer fixture: %v", err)
		}
		if err := db.Create(transfer).Error; err != nil {
			t.Fatalf("failed to create test transfer: %v", err)
		}
	}
}

// CreateTestTransactionRequests inserts fixtures, failing the test on invalid rows
func CreateTestTransactionRequests(t *testing.T, db *DB, requests ...*models.TransactionRequest) {
	t.Helper()

	for _, request := range requests {
		if err := request.Validate(); err != nil {
			t.Fatalf("invalid transaction request fixture: %v", err)
		}
		if err := db.Create(request).Error; err != nil {
			t.Fatalf("failed to create test transaction request: %v", err)
		}
	}
}
