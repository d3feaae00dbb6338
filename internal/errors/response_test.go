package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
)

// ResponseTestSuite defines the test suite for error responses
type ResponseTestSuite struct {
	suite.Suite
	traceID string
}

// SetupTest runs before each test
func (s *ResponseTestSuite) SetupTest() {
	s.traceID = "550e8400-e29b-41d4-a716-446655440000"
}

// TestResponseTestSuite runs the test suite
func TestResponseTestSuite(t *testing.T) {
	suite.Run(t, new(ResponseTestSuite))
}

func (s *ResponseTestSuite) TestNewErrorResponse_UsesCatalogMessage() {
	response := NewErrorResponse(QueryFailed, s.traceID)

	s.Equal("QUERY_001", response.Error.Code)
	s.Equal(GetErrorMessage(QueryFailed), response.Error.Message)
	s.Equal(s.traceID, response.Error.TraceID)
	s.Empty(response.Error.Details)
}

func (s *ResponseTestSuite) TestNewErrorResponse_Options() {
	response := NewErrorResponse(ValidationInvalidAmount, s.traceID,
		WithDetails("invalid amount: twelve"),
		WithMessage("Amount filter is not a number"),
	)

	s.Equal([]string{"invalid amount: twelve"}, response.Error.Details)
	s.Equal("Amount filter is not a number", response.Error.Message)
}

func (s *ResponseTestSuite) TestWithDetails_LastCallWins() {
	response := NewErrorResponse(ValidationGeneral, s.traceID,
		WithDetails("page: is required"),
		WithDetails("size: is required"),
	)

	s.Equal([]string{"size: is required"}, response.Error.Details)
}

func (s *ResponseTestSuite) TestNewValidationError_OneDetailPerField() {
	response := NewValidationError(map[string]string{
		"page":        "is required",
		"sortedOrder": "must be ASC or DESC",
	}, s.traceID)

	s.Equal(string(ValidationGeneral), response.Error.Code)
	s.ElementsMatch([]string{"page: is required", "sortedOrder: must be ASC or DESC"}, response.Error.Details)
	s.Equal(http.StatusBadRequest, response.GetHTTPStatus())
}

func (s *ResponseTestSuite) TestWrapSystemError_HidesInternalError() {
	internal := errors.New("pq: relation \"transfers\" does not exist")

	response, err := WrapSystemError(internal, s.traceID)

	s.Same(internal, err)
	s.Equal(string(SystemInternalError), response.Error.Code)

	body, marshalErr := json.Marshal(response)
	s.Require().NoError(marshalErr)
	s.NotContains(string(body), "relation")
}

func (s *ResponseTestSuite) TestErrorResponse_JSONShape() {
	response := NewErrorResponse(SystemServiceUnavailable, s.traceID)

	body, err := json.Marshal(response)
	s.Require().NoError(err)

	s.JSONEq(`{
		"error": {
			"code": "SYSTEM_003",
			"message": "`+GetErrorMessage(SystemServiceUnavailable)+`",
			"trace_id": "550e8400-e29b-41d4-a716-446655440000"
		}
	}`, string(body))
}

func (s *ResponseTestSuite) TestGetHTTPStatus() {
	testCases := []struct {
		code           ErrorCode
		expectedStatus int
	}{
		{ValidationGeneral, http.StatusBadRequest},
		{ValidationInvalidAmount, http.StatusBadRequest},
		{ValidationInvalidBody, http.StatusBadRequest},
		{ExportInvalidFilter, http.StatusBadRequest},
		{ExportEmptyResult, http.StatusNotFound},
		{SystemRouteNotFound, http.StatusNotFound},
		{SystemRateLimitExceeded, http.StatusTooManyRequests},
		{QueryFailed, http.StatusInternalServerError},
		{ExportWriteFailed, http.StatusInternalServerError},
		{SystemInternalError, http.StatusInternalServerError},
		{SystemServiceUnavailable, http.StatusServiceUnavailable},
		{"UNKNOWN_999", http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Equal(tc.expectedStatus, GetHTTPStatus(tc.code))
		})
	}
}

// TestNewEmptyExportResponse_Shape tests the flat export error payload
func (s *ResponseTestSuite) TestNewEmptyExportResponse_Shape() {
	response := NewEmptyExportResponse()

	jsonBytes, err := json.Marshal(response)
	s.NoError(err)
	s.JSONEq(`{"errorCode":"404","errorDescription":"Empty response","developerMessage":"Empty response"}`, string(jsonBytes))
}

// TestNewInvalidFilterResponse_NamesFilter tests the invalid filter payload
func (s *ResponseTestSuite) TestNewInvalidFilterResponse_NamesFilter() {
	response := NewInvalidFilterResponse("bogus")

	s.Equal("INVALID_FILTER", response.ErrorCode)
	s.Equal("Invalid filter name", response.ErrorDescription)
	s.Equal(`unknown filter "bogus"`, response.DeveloperMessage)
	s.Equal("INVALID_FILTER: Invalid filter name", response.Error())
}
