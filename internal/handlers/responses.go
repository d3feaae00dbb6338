package handlers

import (
	"operations-api/internal/errors"

	"github.com/labstack/echo/v4"
)

// STANDARDIZED ERROR HANDLING PATTERNS
//
// Query handlers use the following standardized error response functions:
//
// 1. SendError - For client errors and known failures
//    Use cases:
//    - Validation errors: SendError(c, errors.ValidationGeneral, errors.WithDetails("..."))
//    - Bad amount filter: SendError(c, errors.ValidationInvalidAmount)
//    - Store unavailable: SendError(c, errors.SystemServiceUnavailable)
//
// 2. SendExportError - The export endpoint answers failures with the flat
//    {errorCode, errorDescription, developerMessage} payload instead
//
// DO NOT USE:
//    - echo.NewHTTPError() - Use the helper functions instead
//    - Direct c.JSON() for errors - Use the helper functions

const (
	// TraceIDContextKey is the context key for storing the trace ID
	TraceIDContextKey = "trace_id"
)

// ErrorResponse is an alias for the standardized error response type
type ErrorResponse = errors.ErrorResponse

// getTraceID extracts the trace ID from the Echo context
func getTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SendError sends a standardized error response with trace ID from context
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	traceID := getTraceID(c)
	errorResponse := errors.NewErrorResponse(code, traceID, opts...)
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}

// SendExportError sends the flat export error payload for code. The
// developer message carries the trace ID so the failure can be found in logs.
func SendExportError(c echo.Context, code errors.ErrorCode) error {
	payload := &errors.ExportErrorResponse{
		ErrorCode:        string(code),
		ErrorDescription: errors.GetErrorMessage(code),
		DeveloperMessage: "trace id " + getTraceID(c),
	}
	return c.JSON(errors.GetHTTPStatus(code), payload)
}
