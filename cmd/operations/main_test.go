package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"operations-api/internal/config"
	"operations-api/internal/database"
	"operations-api/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CommandTestSuite struct {
	suite.Suite
	cfg *config.Config
	dir string
}

func TestCommandTestSuite(t *testing.T) {
	suite.Run(t, new(CommandTestSuite))
}

func (s *CommandTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.cfg = &config.Config{
		Server: config.ServerConfig{Environment: "test"},
		Database: config.DatabaseConfig{
			Driver:         config.DriverSQLite,
			SQLitePath:     filepath.Join(s.dir, "operations.db"),
			MaxConnections: 1,
			MaxIdleConns:   1,
		},
		Query: config.DefaultQueryConfig(),
	}
}

func (s *CommandTestSuite) run(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer

	cmd := newRootCmd(s.cfg)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func (s *CommandTestSuite) store() *database.DB {
	db, err := database.Initialize(s.cfg)
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = db.Close() })
	return db
}

func (s *CommandTestSuite) seedRequests() {
	started := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	s.Require().NoError(s.store().Seed(nil, []*models.TransactionRequest{
		{TransactionID: "tx-1", StartedAt: started, State: models.TransactionRequestStateSuccess, PayerPartyID: "alice", Amount: decimal.NewFromInt(10)},
		{TransactionID: "tx-2", StartedAt: started.Add(time.Hour), State: models.TransactionRequestStateFailed, PayerPartyID: "bob", Amount: decimal.NewFromInt(20)},
	}))
}

func (s *CommandTestSuite) writeFilters(body string) string {
	path := filepath.Join(s.dir, "filters.json")
	s.Require().NoError(os.WriteFile(path, []byte(body), 0o600))
	return path
}

func (s *CommandTestSuite) TestExport_WritesCSVToStdout() {
	s.seedRequests()

	stdout, stderr, err := s.run("export", s.writeFilters(`{"PAYERID":["alice"],"COLOUR":["red"]}`))
	s.Require().NoError(err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	s.Require().Len(lines, 2)
	s.Contains(lines[1], "tx-1")
	s.Contains(stderr, `skipped filter "COLOUR"`)
}

func (s *CommandTestSuite) TestExport_WritesCSVToFile() {
	s.seedRequests()
	output := filepath.Join(s.dir, "export.csv")

	stdout, _, err := s.run("export", s.writeFilters(`{"STATE":["FAILED"]}`), "--output", output, "--order", "ASC")
	s.Require().NoError(err)
	s.Empty(stdout)

	data, err := os.ReadFile(output)
	s.Require().NoError(err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	s.Require().Len(lines, 2)
	s.Contains(lines[1], "tx-2")
}

func (s *CommandTestSuite) TestExport_NoMatches() {
	s.seedRequests()

	stdout, _, err := s.run("export", s.writeFilters(`{"PAYERID":["nobody"]}`))

	s.EqualError(err, "no transaction requests matched")
	s.Empty(stdout)
}

func (s *CommandTestSuite) TestExport_FlagValidation() {
	filters := s.writeFilters(`{"PAYERID":["alice"]}`)

	_, _, err := s.run("export", filters, "--order", "sideways")
	s.EqualError(err, `invalid order "sideways": must be ASC or DESC`)

	_, _, err = s.run("export", filters, "--size", "0")
	s.EqualError(err, "invalid size 0: must be greater than 0")

	_, _, err = s.run("export")
	s.Error(err)
}

func (s *CommandTestSuite) TestExport_UnreadableFilterFile() {
	_, _, err := s.run("export", filepath.Join(s.dir, "missing.json"))
	s.ErrorContains(err, "read filter file")

	_, _, err = s.run("export", s.writeFilters(`["PAYERID"]`))
	s.ErrorContains(err, "parse filter file")
}

func (s *CommandTestSuite) TestSeed() {
	_, _, err := s.run("seed", "--transfers", "4", "--requests", "6", "--days", "2", "--seed", "7")
	s.Require().NoError(err)

	var transfers, requests int64
	db := s.store()
	s.NoError(db.Model(&models.Transfer{}).Count(&transfers).Error)
	s.NoError(db.Model(&models.TransactionRequest{}).Count(&requests).Error)
	s.Equal(int64(4), transfers)
	s.Equal(int64(6), requests)
}

func (s *CommandTestSuite) TestSeed_Rejected() {
	_, _, err := s.run("seed", "--days", "0")
	s.EqualError(err, "invalid days 0: must be greater than 0")

	s.cfg.Server.Environment = "production"
	_, _, err = s.run("seed")
	s.EqualError(err, "seed is not available in production")
}

func (s *CommandTestSuite) TestVersion() {
	stdout, _, err := s.run("version")
	s.Require().NoError(err)
	s.Equal(version+"\n", stdout)
}

func (s *CommandTestSuite) TestOpenOutput_ReportsCloseError() {
	w, closeOutput, err := openOutput(nil, filepath.Join(s.dir, "out.csv"))
	s.Require().NoError(err)
	s.NotNil(w)

	s.NoError(closeOutput())
	s.ErrorContains(closeOutput(), "close output file")
}

func (s *CommandTestSuite) TestOpenOutput_Stdout() {
	var buf bytes.Buffer

	w, closeOutput, err := openOutput(&buf, "")
	s.Require().NoError(err)
	s.Same(&buf, w)
	s.NoError(closeOutput())
}
