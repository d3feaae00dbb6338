package services

import (
	"context"
	"time"

	"operations-api/internal/dto"
	apierrors "operations-api/internal/errors"
	"operations-api/internal/models"
)

// OperationsQueryServiceInterface defines the paginated operations queries
type OperationsQueryServiceInterface interface {
	SearchTransfers(ctx context.Context, query dto.TransferQuery, page models.PageRequest) (*models.Page[models.Transfer], error)
	SearchTransactionRequests(ctx context.Context, query dto.TransactionRequestQuery, page models.PageRequest) (*models.Page[models.TransactionRequest], error)
}

// ExportServiceInterface defines the multi-filter transaction request export
type ExportServiceInterface interface {
	// Export resolves every filter group of req and merges the matches
	Export(ctx context.Context, req ExportRequest) (*ExportResult, error)
}

// ExportLoggerInterface defines structured logging for export operations
type ExportLoggerInterface interface {
	LogExportStarted(ctx context.Context, filterGroups int)
	LogFilterRejected(ctx context.Context, payload *apierrors.ExportErrorResponse)
	LogFilterResolved(ctx context.Context, filter string, values, rows int)
	LogExportCompleted(ctx context.Context, rows int, durationMs int64)
	LogExportFailed(ctx context.Context, errorMsg string, durationMs int64)
}

// OperationsGeneratorInterface generates sample operations for local stores
type OperationsGeneratorInterface interface {
	GenerateTransfers(count int, from, to time.Time) []*models.Transfer
	GenerateTransactionRequests(count int, from, to time.Time) []*models.TransactionRequest
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}

type CircuitBreakerInterface interface {
	IsOpen() bool
	RecordSuccess()
	RecordFailure()
	GetState() CircuitBreakerState
	Reset()
	GetFailureCount() int
}
