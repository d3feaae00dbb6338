package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"operations-api/internal/dto"
	apierrors "operations-api/internal/errors"
	"operations-api/internal/models"
	"operations-api/internal/predicate"
	"operations-api/internal/repositories"
)

var ErrEmptyExport = errors.New("empty export result")

// ExportRequest is one multi-filter export. Filters maps a filter name to
// the candidate values matched against that filter's column.
type ExportRequest struct {
	Filters map[string][]string
	Shared  dto.ExportQuery
	Page    models.PageRequest
}

// FilterRejection records a filter group that was skipped
type FilterRejection struct {
	Filter string
	Reason string
}

// ExportResult holds the merged matches of every accepted filter group.
// A row matching several groups appears once per group.
type ExportResult struct {
	Records  []models.TransactionRequest
	Rejected []FilterRejection
}

// exportColumn binds an export filter kind to the column it matches and the
// expansion applied to its raw values
type exportColumn struct {
	column string
	expand func(raw []string) []any
}

var exportColumns = map[models.ExportFilter]exportColumn{
	models.ExportFilterTransactionID:       {column: models.ColumnTransactionID, expand: verbatim},
	models.ExportFilterPayerID:             {column: models.ColumnPayerPartyID, expand: verbatim},
	models.ExportFilterPayeeID:             {column: models.ColumnPayeePartyID, expand: verbatim},
	models.ExportFilterWorkflowInstanceKey: {column: models.ColumnWorkflowInstanceKey, expand: verbatim},
	models.ExportFilterState:               {column: models.ColumnState, expand: parsedStates},
	models.ExportFilterErrorDescription:    {column: models.ColumnErrorDescription, expand: withQuotedVariants},
	models.ExportFilterExternalID:          {column: models.ColumnExternalID, expand: verbatim},
}

// ExportService merges the results of several independent id-list filters
// over transaction requests
type ExportService struct {
	requestRepo repositories.TransactionRequestRepositoryInterface
	parser      *FilterParser
	guard       *storeGuard
	metrics     MetricsRecorderInterface
	logger      ExportLoggerInterface
}

// NewExportService creates a new export service
func NewExportService(
	requestRepo repositories.TransactionRequestRepositoryInterface,
	parser *FilterParser,
	breaker CircuitBreakerInterface,
	metrics MetricsRecorderInterface,
	logger ExportLoggerInterface,
) ExportServiceInterface {
	return &ExportService{
		requestRepo: requestRepo,
		parser:      parser,
		guard:       newStoreGuard(breaker, metrics),
		metrics:     metrics,
		logger:      logger,
	}
}

// Export runs one query per filter group, in filter name order, each ANDed
// with the shared state and date range filters, and concatenates the
// results. Unknown filter names are logged, reported in the result and
// skipped. An empty merged result is ErrEmptyExport.
func (s *ExportService) Export(ctx context.Context, req ExportRequest) (*ExportResult, error) {
	start := time.Now()

	shared := s.sharedPredicate(req.Shared)
	page := req.Page
	page.SortField = models.DefaultSortField

	result := &ExportResult{}
	s.logger.LogExportStarted(ctx, len(req.Filters))

	for _, name := range sortedKeys(req.Filters) {
		values := req.Filters[name]
		if len(values) == 0 {
			continue
		}

		kind, err := models.ParseExportFilter(name)
		if err != nil {
			s.logger.LogFilterRejected(ctx, apierrors.NewInvalidFilterResponse(name))
			result.Rejected = append(result.Rejected, FilterRejection{Filter: name, Reason: err.Error()})
			s.metrics.IncrementCounter(MetricExportFilter, map[string]string{"filter": "invalid", "outcome": "rejected"})
			continue
		}

		binding := exportColumns[kind]
		pred := predicate.And(predicate.In(binding.column, binding.expand(values)...), shared)

		var found *models.Page[models.TransactionRequest]
		err = s.guard.run(entityTransactionRequests, func() error {
			var findErr error
			found, findErr = s.requestRepo.FindAll(ctx, pred, page)
			return findErr
		})
		if err != nil {
			s.metrics.IncrementCounter(MetricExportCompleted, map[string]string{"status": "failed"})
			s.logger.LogExportFailed(ctx, err.Error(), time.Since(start).Milliseconds())
			return nil, fmt.Errorf("failed to export filter %s: %w", kind, err)
		}

		s.logger.LogFilterResolved(ctx, string(kind), len(values), len(found.Content))

		outcome := "matched"
		if len(found.Content) == 0 {
			outcome = "empty"
		}
		s.metrics.IncrementCounter(MetricExportFilter, map[string]string{"filter": string(kind), "outcome": outcome})

		result.Records = append(result.Records, found.Content...)
	}

	elapsed := time.Since(start)
	s.metrics.RecordProcessingTime(MetricExportDuration, elapsed)
	s.metrics.RecordGauge(MetricExportRows, float64(len(result.Records)), nil)

	if len(result.Records) == 0 {
		s.metrics.IncrementCounter(MetricExportCompleted, map[string]string{"status": "empty"})
		return result, ErrEmptyExport
	}

	s.metrics.IncrementCounter(MetricExportCompleted, map[string]string{"status": "success"})
	s.logger.LogExportCompleted(ctx, len(result.Records), elapsed.Milliseconds())
	return result, nil
}

// sharedPredicate builds the filters common to every export group once
func (s *ExportService) sharedPredicate(q dto.ExportQuery) predicate.Predicate {
	var state predicate.Predicate
	if parsed, ok := models.ParseTransactionRequestState(q.State); ok {
		state = predicate.Eq(models.ColumnState, string(parsed))
	}

	from, to := s.parser.DateRange(q.StartFrom, q.StartTo)

	return predicate.And(state, predicate.TimeRange(models.ColumnStartedAt, from, to))
}

func sortedKeys(filters map[string][]string) []string {
	keys := make([]string, 0, len(filters))
	for key := range filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func verbatim(raw []string) []any {
	values := make([]any, 0, len(raw))
	for _, v := range raw {
		values = append(values, v)
	}
	return values
}

func parsedStates(raw []string) []any {
	states := models.ParseTransactionRequestStates(raw)
	values := make([]any, 0, len(states))
	for _, state := range states {
		values = append(values, string(state))
	}
	return values
}

// withQuotedVariants matches stored descriptions written with or without
// surrounding double quotes
func withQuotedVariants(raw []string) []any {
	values := make([]any, 0, len(raw)*2)
	for _, v := range raw {
		values = append(values, v, `"`+v+`"`)
	}
	return values
}
