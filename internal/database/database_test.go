package database

import (
	"path/filepath"
	"testing"
	"time"

	"operations-api/internal/config"
	"operations-api/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type DatabaseTestSuite struct {
	suite.Suite
}

func TestDatabaseTestSuite(t *testing.T) {
	suite.Run(t, new(DatabaseTestSuite))
}

func (s *DatabaseTestSuite) TestNew_SQLiteFile() {
	db, err := New(&config.DatabaseConfig{
		Driver:         config.DriverSQLite,
		SQLitePath:     filepath.Join(s.T().TempDir(), "operations.db"),
		MaxConnections: 1,
		MaxIdleConns:   1,
	})
	s.Require().NoError(err)
	defer db.Close()

	s.NoError(db.HealthCheck())
	s.NoError(db.AutoMigrate())
	s.True(db.Migrator().HasTable(&models.TransactionRequest{}))
}

func (s *DatabaseTestSuite) TestNew_UnsupportedDriver() {
	_, err := New(&config.DatabaseConfig{Driver: "oracle"})

	s.EqualError(err, `unsupported database driver "oracle"`)
}

func (s *DatabaseTestSuite) TestSeed() {
	db := SetupTestDB(s.T())
	started := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	err := db.Seed(
		[]*models.Transfer{
			{TransactionID: "tx-1", StartedAt: started, Status: models.TransferStatusCompleted, Amount: decimal.NewFromInt(5)},
		},
		[]*models.TransactionRequest{
			{TransactionID: "tx-1", StartedAt: started, State: models.TransactionRequestStateSuccess, Amount: decimal.NewFromInt(5)},
			{TransactionID: "tx-2", StartedAt: started, State: models.TransactionRequestStateFailed, Amount: decimal.NewFromInt(7)},
		},
	)
	s.Require().NoError(err)

	var transfers, requests int64
	s.NoError(db.Model(&models.Transfer{}).Count(&transfers).Error)
	s.NoError(db.Model(&models.TransactionRequest{}).Count(&requests).Error)
	s.Equal(int64(1), transfers)
	s.Equal(int64(2), requests)
}

func (s *DatabaseTestSuite) TestSeed_NothingToInsert() {
	db := SetupTestDB(s.T())

	s.NoError(db.Seed(nil, nil))
}

func (s *DatabaseTestSuite) TestHealthCheck_ClosedStore() {
	db := SetupTestDB(s.T())
	s.Require().NoError(db.Close())

	s.Error(db.HealthCheck())
}
