// Command operations serves the transfer and transaction request query API
// and runs one-off CSV exports against the same record store.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"operations-api/internal/config"
	"operations-api/internal/csvexport"
	"operations-api/internal/database"
	"operations-api/internal/dto"
	"operations-api/internal/models"
	"operations-api/internal/server"
	"operations-api/internal/services"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Server.LogLevel}))
	slog.SetDefault(logger)

	if err := newRootCmd(cfg).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "operations",
		Short:        "Transfer and transaction request operations API",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCmd(cfg), newExportCmd(cfg), newSeedCmd(cfg), newVersionCmd())

	return rootCmd
}

func newServeCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port, _ := cmd.Flags().GetString("port"); port != "" {
				cfg.Server.Port = port
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			db, err := database.Initialize(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			registry := prometheus.NewRegistry()
			ops := server.NewOperations(db.DB, cfg.Query, registry, slog.Default())

			return server.New(cfg, ops, db, registry).Run(ctx)
		},
	}

	cmd.Flags().String("port", "", "listen port (overrides SERVER_PORT)")

	return cmd
}

func newExportCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <filters.json>",
		Short: "Export transaction requests matching a filter file as CSV",
		Long: "Reads a JSON object mapping filter names (transactionId, payerId, payeeId,\n" +
			"workflowInstanceKey, state, errorDescription, externalId) to value lists\n" +
			"and writes the merged matches as CSV.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filters, err := readFilters(args[0])
			if err != nil {
				return err
			}

			state, _ := cmd.Flags().GetString("state")
			startFrom, _ := cmd.Flags().GetString("start-from")
			startTo, _ := cmd.Flags().GetString("start-to")
			size, _ := cmd.Flags().GetInt("size")
			order, _ := cmd.Flags().GetString("order")
			output, _ := cmd.Flags().GetString("output")

			direction, ok := models.ParseSortDirection(order)
			if !ok {
				return fmt.Errorf("invalid order %q: must be ASC or DESC", order)
			}
			if size <= 0 {
				return fmt.Errorf("invalid size %d: must be greater than 0", size)
			}
			if size > cfg.Query.MaxExportPageSize {
				size = cfg.Query.MaxExportPageSize
			}

			db, err := database.Initialize(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			ops := server.NewOperations(db.DB, cfg.Query, prometheus.NewRegistry(), slog.Default())

			result, err := ops.Export.Export(cmd.Context(), services.ExportRequest{
				Filters: filters,
				Shared:  dto.ExportQuery{State: state, StartFrom: startFrom, StartTo: startTo},
				Page:    models.PageRequest{Size: size, SortDirection: direction},
			})
			for _, rejection := range rejectedOf(result) {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped filter %q: %s\n", rejection.Filter, rejection.Reason)
			}
			if errors.Is(err, services.ErrEmptyExport) {
				return fmt.Errorf("no transaction requests matched")
			}
			if err != nil {
				return err
			}

			w, closeOutput, err := openOutput(cmd.OutOrStdout(), output)
			if err != nil {
				return err
			}

			if err := csvexport.Write(w, result.Records); err != nil {
				_ = closeOutput()
				return err
			}

			return closeOutput()
		},
	}

	cmd.Flags().String("state", "", "only export requests in this state")
	cmd.Flags().String("start-from", "", "lower bound on startedAt")
	cmd.Flags().String("start-to", "", "upper bound on startedAt")
	cmd.Flags().Int("size", cfg.Query.DefaultExportSize, "maximum rows per filter")
	cmd.Flags().String("order", cfg.Query.DefaultSortOrder, "startedAt sort order: ASC or DESC")
	cmd.Flags().StringP("output", "o", "", "output file (default: stdout)")

	return cmd
}

func newSeedCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill a local record store with sample transfers and transaction requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.IsProduction() {
				return fmt.Errorf("seed is not available in production")
			}

			transfers, _ := cmd.Flags().GetInt("transfers")
			requests, _ := cmd.Flags().GetInt("requests")
			days, _ := cmd.Flags().GetInt("days")
			seed, _ := cmd.Flags().GetUint64("seed")

			if days <= 0 {
				return fmt.Errorf("invalid days %d: must be greater than 0", days)
			}

			db, err := database.Initialize(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			to := time.Now().UTC()
			from := to.AddDate(0, 0, -days)
			generator := services.NewOperationsGenerator(seed)

			if err := db.Seed(
				generator.GenerateTransfers(transfers, from, to),
				generator.GenerateTransactionRequests(requests, from, to),
			); err != nil {
				return err
			}

			slog.Info("record store seeded", "transfers", transfers, "transaction_requests", requests, "days", days)
			return nil
		},
	}

	cmd.Flags().Int("transfers", 200, "number of transfers to generate")
	cmd.Flags().Int("requests", 200, "number of transaction requests to generate")
	cmd.Flags().Int("days", 30, "days of history to spread rows over")
	cmd.Flags().Uint64("seed", 1, "generator seed")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

func readFilters(path string) (map[string][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read filter file: %w", err)
	}

	var filters map[string][]string
	if err := json.Unmarshal(data, &filters); err != nil {
		return nil, fmt.Errorf("parse filter file: %w", err)
	}

	return filters, nil
}

func rejectedOf(result *services.ExportResult) []services.FilterRejection {
	if result == nil {
		return nil
	}
	return result.Rejected
}

// openOutput returns stdout when path is empty, otherwise a new file at path.
// The close func reports the file's Close error so a failed flush is not lost.
func openOutput(stdout io.Writer, path string) (io.Writer, func() error, error) {
	if path == "" {
		return stdout, func() error { return nil }, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}

	return f, func() error {
		if err := f.Close(); err != nil {
			return fmt.Errorf("close output file: %w", err)
		}
		return nil
	}, nil
}
