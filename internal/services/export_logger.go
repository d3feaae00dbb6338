package services

import (
	"context"
	"log/slog"
	"time"

	apierrors "operations-api/internal/errors"
)

type traceIDKey struct{}

// WithTraceID returns a copy of ctx carrying the request trace ID
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceIDFromContext returns the trace ID stored by WithTraceID, if any
func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if traceID, ok := ctx.Value(traceIDKey{}).(string); ok {
		return traceID
	}
	return ""
}

// ExportLogger provides structured logging for export operations. Filter
// values are never logged, only their counts.
type ExportLogger struct {
	logger *slog.Logger
}

// NewExportLogger creates a new export logger
func NewExportLogger(logger *slog.Logger) ExportLoggerInterface {
	return &ExportLogger{
		logger: logger,
	}
}

// LogExportStarted logs the start of an export
func (el *ExportLogger) LogExportStarted(ctx context.Context, filterGroups int) {
	el.logger.InfoContext(ctx, "export started",
		slog.String("event_type", "export_started"),
		slog.Int("filter_groups", filterGroups),
		slog.Time("timestamp", time.Now()),
		slog.String("trace_id", TraceIDFromContext(ctx)),
	)
}

// LogFilterRejected logs an unknown filter name with the invalid filter payload
func (el *ExportLogger) LogFilterRejected(ctx context.Context, payload *apierrors.ExportErrorResponse) {
	el.logger.ErrorContext(ctx, "export filter rejected",
		slog.String("event_type", "export_filter_rejected"),
		slog.String("error_code", payload.ErrorCode),
		slog.String("error_description", payload.ErrorDescription),
		slog.String("developer_message", payload.DeveloperMessage),
		slog.Time("timestamp", time.Now()),
		slog.String("trace_id", TraceIDFromContext(ctx)),
	)
}

// LogFilterResolved logs the rows one filter group contributed
func (el *ExportLogger) LogFilterResolved(ctx context.Context, filter string, values, rows int) {
	el.logger.InfoContext(ctx, "export filter resolved",
		slog.String("event_type", "export_filter_resolved"),
		slog.String("filter", filter),
		slog.Int("values", values),
		slog.Int("rows", rows),
		slog.String("trace_id", TraceIDFromContext(ctx)),
	)
}

// LogExportCompleted logs the completion of an export
func (el *ExportLogger) LogExportCompleted(ctx context.Context, rows int, durationMs int64) {
	el.logger.InfoContext(ctx, "export completed",
		slog.String("event_type", "export_completed"),
		slog.Int("rows", rows),
		slog.Int64("duration_ms", durationMs),
		slog.Time("timestamp", time.Now()),
		slog.String("trace_id", TraceIDFromContext(ctx)),
	)
}

// LogExportFailed logs a failed export
func (el *ExportLogger) LogExportFailed(ctx context.Context, errorMsg string, durationMs int64) {
	el.logger.WarnContext(ctx, "export failed",
		slog.String("event_type", "export_failed"),
		slog.String("error", errorMsg),
		slog.Int64("duration_ms", durationMs),
		slog.Time("timestamp", time.Now()),
		slog.String("trace_id", TraceIDFromContext(ctx)),
	)
}
