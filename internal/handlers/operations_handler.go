package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"operations-api/internal/config"
	"operations-api/internal/csvexport"
	"operations-api/internal/dto"
	apierrors "operations-api/internal/errors"
	"operations-api/internal/services"
	"operations-api/internal/validation"

	"github.com/labstack/echo/v4"
)

// HeaderRejectedFilters lists export filter names that were not recognized
const HeaderRejectedFilters = "X-Rejected-Filters"

const (
	exportFilename = "transactionRequests.csv"
	contentTypeCSV = "text/csv"
)

// OperationsHandler serves transfer and transaction request queries and
// the transaction request export
type OperationsHandler struct {
	queryService  services.OperationsQueryServiceInterface
	exportService services.ExportServiceInterface
	cfg           config.QueryConfig
	binder        *echo.DefaultBinder
}

// NewOperationsHandler creates a new operations handler
func NewOperationsHandler(
	queryService services.OperationsQueryServiceInterface,
	exportService services.ExportServiceInterface,
	cfg config.QueryConfig,
) *OperationsHandler {
	return &OperationsHandler{
		queryService:  queryService,
		exportService: exportService,
		cfg:           cfg,
		binder:        &echo.DefaultBinder{},
	}
}

// ListTransfers returns one page of transfers. page and size are required.
func (h *OperationsHandler) ListTransfers(c echo.Context) error {
	var query dto.TransferQuery
	if err := h.binder.BindQueryParams(c, &query); err != nil {
		return SendError(c, apierrors.ValidationInvalidFormat, apierrors.WithDetails(err.Error()))
	}
	if err := c.Validate(&query); err != nil {
		return sendValidationError(c, validation.FieldErrors(err))
	}

	params, fieldErrors := parsePageParams(c, pagingRules{
		required:     true,
		defaultSize:  h.cfg.DefaultPageSize,
		maxSize:      h.cfg.MaxPageSize,
		defaultOrder: h.cfg.DefaultSortOrder,
	})
	if fieldErrors != nil {
		return sendValidationError(c, fieldErrors)
	}

	page, err := h.queryService.SearchTransfers(c.Request().Context(), query, toPageRequest(params))
	if err != nil {
		return h.sendQueryError(c, err)
	}

	return c.JSON(http.StatusOK, page)
}

// ListTransactionRequests returns one page of transaction requests
func (h *OperationsHandler) ListTransactionRequests(c echo.Context) error {
	var query dto.TransactionRequestQuery
	if err := h.binder.BindQueryParams(c, &query); err != nil {
		return SendError(c, apierrors.ValidationInvalidFormat, apierrors.WithDetails(err.Error()))
	}
	if err := c.Validate(&query); err != nil {
		return sendValidationError(c, validation.FieldErrors(err))
	}

	params, fieldErrors := parsePageParams(c, pagingRules{
		defaultSize:  h.cfg.DefaultPageSize,
		maxSize:      h.cfg.MaxPageSize,
		defaultOrder: h.cfg.DefaultSortOrder,
	})
	if fieldErrors != nil {
		return sendValidationError(c, fieldErrors)
	}

	page, err := h.queryService.SearchTransactionRequests(c.Request().Context(), query, toPageRequest(params))
	if err != nil {
		return h.sendQueryError(c, err)
	}

	return c.JSON(http.StatusOK, page)
}

// ExportTransactionRequests resolves the filter groups in the request body
// and answers with the merged rows as CSV
func (h *OperationsHandler) ExportTransactionRequests(c echo.Context) error {
	var filters map[string][]string
	if err := h.binder.BindBody(c, &filters); err != nil {
		slog.Warn("invalid export body", "trace_id", getTraceID(c), "error", err)
		return SendExportError(c, apierrors.ValidationInvalidBody)
	}

	var shared dto.ExportQuery
	if err := h.binder.BindQueryParams(c, &shared); err != nil {
		return SendExportError(c, apierrors.ValidationInvalidFormat)
	}

	params, fieldErrors := parsePageParams(c, pagingRules{
		defaultSize:  h.cfg.DefaultExportSize,
		maxSize:      h.cfg.MaxExportPageSize,
		defaultOrder: h.cfg.DefaultSortOrder,
	})
	if fieldErrors != nil {
		slog.Warn("invalid export paging", "trace_id", getTraceID(c), "fields", fieldErrors)
		return SendExportError(c, apierrors.ValidationGeneral)
	}

	result, err := h.exportService.Export(c.Request().Context(), services.ExportRequest{
		Filters: filters,
		Shared:  shared,
		Page:    toPageRequest(params),
	})
	if result != nil && len(result.Rejected) > 0 {
		names := make([]string, 0, len(result.Rejected))
		for _, rejection := range result.Rejected {
			names = append(names, rejection.Filter)
		}
		c.Response().Header().Set(HeaderRejectedFilters, strings.Join(names, ","))
	}

	switch {
	case errors.Is(err, services.ErrEmptyExport):
		return c.JSON(http.StatusNotFound, apierrors.NewEmptyExportResponse())
	case errors.Is(err, services.ErrCircuitBreakerOpen):
		return SendExportError(c, apierrors.SystemServiceUnavailable)
	case err != nil:
		slog.Error("export failed", "trace_id", getTraceID(c), "error", err)
		return SendExportError(c, apierrors.QueryFailed)
	}

	data, err := csvexport.Marshal(result.Records)
	if err != nil {
		slog.Error("failed to write export", "trace_id", getTraceID(c), "error", err)
		var csvErr *csvexport.WriteToCsvError
		if errors.As(err, &csvErr) {
			return c.JSON(http.StatusInternalServerError, csvErr)
		}
		return SendExportError(c, apierrors.ExportWriteFailed)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+exportFilename+`"`)
	return c.Blob(http.StatusOK, contentTypeCSV, data)
}

func (h *OperationsHandler) sendQueryError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidAmount):
		return SendError(c, apierrors.ValidationInvalidAmount, apierrors.WithDetails(err.Error()))
	case errors.Is(err, services.ErrCircuitBreakerOpen):
		return SendError(c, apierrors.SystemServiceUnavailable)
	default:
		slog.Error("query failed", "trace_id", getTraceID(c), "error", err)
		return SendError(c, apierrors.QueryFailed)
	}
}

func sendValidationError(c echo.Context, fieldErrors map[string]string) error {
	return c.JSON(http.StatusBadRequest, apierrors.NewValidationError(fieldErrors, getTraceID(c)))
}
