package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"operations-api/internal/errors"
	"operations-api/internal/handlers"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type PanicRecoveryTestSuite struct {
	suite.Suite
	echo *echo.Echo
}

func (s *PanicRecoveryTestSuite) SetupTest() {
	s.echo = echo.New()
}

func TestPanicRecoveryTestSuite(t *testing.T) {
	suite.Run(t, new(PanicRecoveryTestSuite))
}

func (s *PanicRecoveryTestSuite) serve(respond ErrorResponder, traceID string, next echo.HandlerFunc) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/transfers", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	if traceID != "" {
		c.Set(TraceIDContextKey, traceID)
	}

	s.NotPanics(func() {
		_ = PanicRecovery(respond)(next)(c)
	})
	return rec
}

func (s *PanicRecoveryTestSuite) TestStandardEnvelope() {
	rec := s.serve(nil, "trace-7", func(c echo.Context) error {
		panic("page query blew up")
	})

	s.Equal(http.StatusInternalServerError, rec.Code)

	var body errors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal("SYSTEM_001", body.Error.Code)
	s.Equal("trace-7", body.Error.TraceID)
}

func (s *PanicRecoveryTestSuite) TestExportPayload() {
	rec := s.serve(handlers.SendExportError, "trace-8", func(c echo.Context) error {
		panic("csv writer blew up")
	})

	s.Equal(http.StatusInternalServerError, rec.Code)

	var body errors.ExportErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal("SYSTEM_001", body.ErrorCode)
	s.Equal(errors.GetErrorMessage(errors.SystemInternalError), body.ErrorDescription)
	s.Equal("trace id trace-8", body.DeveloperMessage)
	s.NotContains(rec.Body.String(), `"error":`)
}

func (s *PanicRecoveryTestSuite) TestMissingTraceIDIsReportedAsUnknown() {
	rec := s.serve(nil, "", func(c echo.Context) error {
		panic("no trace")
	})

	var body errors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal("unknown", body.Error.TraceID)
}

func (s *PanicRecoveryTestSuite) TestCommittedResponseIsLeftAlone() {
	rec := s.serve(nil, "trace-9", func(c echo.Context) error {
		c.Response().WriteHeader(http.StatusOK)
		panic("after headers")
	})

	s.Equal(http.StatusOK, rec.Code)
	s.Empty(rec.Body.String())
}

func (s *PanicRecoveryTestSuite) TestNormalFlowPassesThrough() {
	rec := s.serve(nil, "trace-10", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	s.Equal(http.StatusOK, rec.Code)
}

func (s *PanicRecoveryTestSuite) TestPanicValues() {
	for name, value := range map[string]interface{}{
		"string": "boom",
		"int":    42,
		"error":  fmt.Errorf("store down"),
	} {
		s.Run(name, func() {
			rec := s.serve(nil, "trace-11", func(c echo.Context) error {
				panic(value)
			})
			s.Equal(http.StatusInternalServerError, rec.Code)
		})
	}
}
