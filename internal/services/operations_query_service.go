package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"operations-api/internal/dto"
	"operations-api/internal/models"
	"operations-api/internal/predicate"
	"operations-api/internal/repositories"
)

const (
	entityTransfers           = "transfers"
	entityTransactionRequests = "transaction_requests"
	storeServiceName          = "record_store"
)

// OperationsQueryService answers paginated, filtered transfer and
// transaction request queries
type OperationsQueryService struct {
	transferRepo repositories.TransferRepositoryInterface
	requestRepo  repositories.TransactionRequestRepositoryInterface
	parser       *FilterParser
	guard        *storeGuard
}

// NewOperationsQueryService creates a new operations query service
func NewOperationsQueryService(
	transferRepo repositories.TransferRepositoryInterface,
	requestRepo repositories.TransactionRequestRepositoryInterface,
	parser *FilterParser,
	breaker CircuitBreakerInterface,
	metrics MetricsRecorderInterface,
) OperationsQueryServiceInterface {
	return &OperationsQueryService{
		transferRepo: transferRepo,
		requestRepo:  requestRepo,
		parser:       parser,
		guard:        newStoreGuard(breaker, metrics),
	}
}

// SearchTransfers returns one page of transfers matching the raw query
func (s *OperationsQueryService) SearchTransfers(ctx context.Context, query dto.TransferQuery, page models.PageRequest) (*models.Page[models.Transfer], error) {
	filters, err := s.parser.TransferFilters(query)
	if err != nil {
		return nil, err
	}

	pred := BuildTransferPredicate(filters)
	slog.Debug("searching transfers", "predicate", predicate.Describe(pred), "page", page.Page, "size", page.Size)

	var result *models.Page[models.Transfer]
	err = s.guard.run(entityTransfers, func() error {
		var findErr error
		result, findErr = s.transferRepo.FindAll(ctx, pred, page)
		return findErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search transfers: %w", err)
	}

	return result, nil
}

// SearchTransactionRequests returns one page of transaction requests
// matching the raw query
func (s *OperationsQueryService) SearchTransactionRequests(ctx context.Context, query dto.TransactionRequestQuery, page models.PageRequest) (*models.Page[models.TransactionRequest], error) {
	filters, err := s.parser.TransactionRequestFilters(query)
	if err != nil {
		return nil, err
	}

	pred := BuildTransactionRequestPredicate(filters)
	slog.Debug("searching transaction requests", "predicate", predicate.Describe(pred), "page", page.Page, "size", page.Size)

	var result *models.Page[models.TransactionRequest]
	err = s.guard.run(entityTransactionRequests, func() error {
		var findErr error
		result, findErr = s.requestRepo.FindAll(ctx, pred, page)
		return findErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search transaction requests: %w", err)
	}

	return result, nil
}

// storeGuard runs record store calls behind the circuit breaker and records
// their outcome
type storeGuard struct {
	breaker CircuitBreakerInterface
	metrics MetricsRecorderInterface
}

func newStoreGuard(breaker CircuitBreakerInterface, metrics MetricsRecorderInterface) *storeGuard {
	return &storeGuard{breaker: breaker, metrics: metrics}
}

func (g *storeGuard) run(entity string, fn func() error) error {
	if g.breaker.IsOpen() {
		g.metrics.IncrementCounter(MetricQueryExecuted, map[string]string{"entity": entity, "status": "rejected"})
		return ErrCircuitBreakerOpen
	}

	start := time.Now()
	err := fn()
	g.metrics.RecordProcessingTime(entity, time.Since(start))

	switch {
	case isRequestError(err):
		g.metrics.IncrementCounter(MetricQueryExecuted, map[string]string{"entity": entity, "status": "invalid"})
		return err
	case err != nil:
		g.breaker.RecordFailure()
		g.metrics.IncrementCounter(MetricQueryExecuted, map[string]string{"entity": entity, "status": "failed"})
	default:
		g.breaker.RecordSuccess()
		g.metrics.IncrementCounter(MetricQueryExecuted, map[string]string{"entity": entity, "status": "success"})
	}
	g.metrics.RecordGauge(MetricCircuitBreakerState, float64(g.breaker.GetState()), map[string]string{"service": storeServiceName})

	return err
}

// isRequestError reports errors caused by the request itself rather than the
// record store. They never count against the breaker.
func isRequestError(err error) bool {
	return errors.Is(err, repositories.ErrUnknownSortField) || errors.Is(err, repositories.ErrInvalidPageRequest)
}
