package middleware

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"operations-api/internal/errors"
	"operations-api/internal/handlers"

	"github.com/labstack/echo/v4"
)

const unknownTraceID = "unknown"

// ErrorResponder writes the failure payload for code. Query routes answer
// with the standard error envelope, the export route with its flat payload.
type ErrorResponder func(c echo.Context, code errors.ErrorCode) error

// StandardResponder answers with the {"error": {...}} envelope
func StandardResponder(c echo.Context, code errors.ErrorCode) error {
	return handlers.SendError(c, code)
}

func responderOrStandard(respond ErrorResponder) ErrorResponder {
	if respond == nil {
		return StandardResponder
	}
	return respond
}

// PanicRecovery recovers from handler panics and answers SYSTEM_001 through
// respond. A nil respond uses StandardResponder.
func PanicRecovery(respond ErrorResponder) echo.MiddlewareFunc {
	respond = responderOrStandard(respond)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				if GetTraceID(c) == "" {
					c.Set(TraceIDContextKey, unknownTraceID)
				}
				traceID := GetTraceID(c)

				slog.Error("handler panicked",
					"trace_id", traceID,
					"panic", fmt.Sprintf("%v", r),
					"stack_trace", string(debug.Stack()),
					"path", c.Request().URL.Path,
					"method", c.Request().Method,
				)

				if c.Response().Committed {
					return
				}
				if sendErr := respond(c, errors.SystemInternalError); sendErr != nil {
					slog.Error("failed to send panic response", "trace_id", traceID, "error", sendErr)
					err = sendErr
				}
			}()

			return next(c)
		}
	}
}
