package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"operations-api/internal/config"
	"operations-api/internal/handlers"
	"operations-api/internal/middleware"
	"operations-api/internal/repositories"
	"operations-api/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

const visitorCleanupInterval = time.Minute

// Operations holds the query and export services over one record store
type Operations struct {
	Query  services.OperationsQueryServiceInterface
	Export services.ExportServiceInterface
}

// NewOperations wires repositories, the shared store circuit breaker,
// metrics and logging into the query and export services
func NewOperations(db *gorm.DB, cfg config.QueryConfig, reg prometheus.Registerer, logger *slog.Logger) *Operations {
	transferRepo := repositories.NewTransferRepository(db)
	requestRepo := repositories.NewTransactionRequestRepository(db)

	parser := services.NewFilterParser(cfg.DateLayout)
	breaker := services.NewCircuitBreaker(services.DefaultCircuitBreakerConfig())
	metrics := services.NewPrometheusMetrics(reg)

	return &Operations{
		Query:  services.NewOperationsQueryService(transferRepo, requestRepo, parser, breaker, metrics),
		Export: services.NewExportService(requestRepo, parser, breaker, metrics, services.NewExportLogger(logger)),
	}
}

// Server is the operations HTTP API
type Server struct {
	echo    *echo.Echo
	cfg     *config.Config
	limiter *middleware.RateLimiter
}

// New builds the echo instance with middleware and routes registered
func New(cfg *config.Config, ops *Operations, store handlers.HealthChecker, gatherer prometheus.Gatherer) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler
	e.Validator = handlers.NewValidator()

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery(middleware.StandardResponder))
	e.Use(middleware.SecurityHeaders())

	s := &Server{
		echo:    e,
		cfg:     cfg,
		limiter: middleware.NewRateLimiter(cfg.RateLimit.ExportPerSecond, cfg.RateLimit.ExportBurst),
	}

	operationsHandler := handlers.NewOperationsHandler(ops.Query, ops.Export, cfg.Query)
	healthHandler := handlers.NewHealthCheckHandler(store)

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(
		prometheus.Gatherers{gatherer, prometheus.DefaultGatherer},
		promhttp.HandlerOpts{},
	)))

	api := e.Group("/api/v1")
	api.GET("/transfers", operationsHandler.ListTransfers)
	api.GET("/transactionRequests", operationsHandler.ListTransactionRequests)
	api.POST("/transactionRequests/export", operationsHandler.ExportTransactionRequests,
		middleware.PanicRecovery(handlers.SendExportError),
		s.limiter.Middleware(handlers.SendExportError),
	)

	return s
}

// Handler exposes the router for in-process use
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:         s.cfg.Server.Address(),
		Handler:      s.echo,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	cleanupCtx, stopCleanup := context.WithCancel(ctx)
	defer stopCleanup()
	go s.limiter.RunCleanup(cleanupCtx, visitorCleanupInterval)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", httpServer.Addr, "environment", s.cfg.Server.Environment)
		if err := s.echo.StartServer(httpServer); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	return nil
}
