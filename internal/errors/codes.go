package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationOutOfRange    ErrorCode = "VALIDATION_004"
	ValidationInvalidAmount ErrorCode = "VALIDATION_005"
	ValidationInvalidSort   ErrorCode = "VALIDATION_006"
	ValidationInvalidBody   ErrorCode = "VALIDATION_007"
)

// Query error codes (QUERY_*)
const (
	QueryFailed ErrorCode = "QUERY_001"
)

// Export error codes (EXPORT_*)
const (
	ExportEmptyResult   ErrorCode = "EXPORT_001"
	ExportInvalidFilter ErrorCode = "EXPORT_002"
	ExportWriteFailed   ErrorCode = "EXPORT_003"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemConfigurationError ErrorCode = "SYSTEM_004"
	SystemUnexpectedError    ErrorCode = "SYSTEM_005"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_006"
	SystemRouteNotFound      ErrorCode = "SYSTEM_007"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required parameter is missing",
	ValidationInvalidFormat: "Invalid parameter format",
	ValidationOutOfRange:    "Parameter value is out of allowed range",
	ValidationInvalidAmount: "Invalid amount",
	ValidationInvalidSort:   "Sort order must be ASC or DESC",
	ValidationInvalidBody:   "Request body must map filter names to lists of values",

	// Query errors
	QueryFailed: "Query could not be executed",

	// Export errors
	ExportEmptyResult:   "Empty response",
	ExportInvalidFilter: "Invalid filter name",
	ExportWriteFailed:   "Failed to write export",

	// System errors
	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:      "Database connection error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemConfigurationError: "System configuration error",
	SystemUnexpectedError:    "An unexpected error occurred",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
	SystemRouteNotFound:      "Resource not found",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
