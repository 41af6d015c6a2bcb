package server

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/pollchat/internal/middleware"
)

// setupErrorHandling installs the central error handler. Every error reaches
// the client as {"ok":false,"error":...}; errors that were not turned into an
// echo.HTTPError are logged with a stack trace.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		logger := middleware.FromContext(c.Request().Context())

		code := http.StatusInternalServerError
		msg := http.StatusText(code)

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			msg = fmt.Sprint(he.Message)
			if code >= http.StatusInternalServerError {
				logger.Error("Internal Server Error", "error", err, "internal", he.Internal)
			}
		} else {
			logger.Error("Internal Server Error (Unhandled)",
				"error", err.Error(),
				"stack_trace", string(debug.Stack()),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, map[string]any{"ok": false, "error": msg})
		}
		if err != nil {
			logger.Error("Failed to write error response", "error", err)
		}
	}
}
