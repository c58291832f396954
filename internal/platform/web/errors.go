package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tiss/tiss/internal/apperr"
)

// ErrorHandler returns the central echo error handler. Domain errors carry
// their own HTTP status via the error taxonomy; echo's own errors (routing,
// auth middleware) pass through unchanged. Every error body has the shape
// {"message": "..."}.
func ErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var status int
		var msg string

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			status = httpErr.Code
			msg = fmt.Sprintf("%v", httpErr.Message)
		} else {
			status = apperr.HTTPStatus(err)
			msg = err.Error()
		}

		if status >= http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Msg("request failed")
			// Storage and cache details stay out of responses.
			msg = "internal server error"
		}

		if c.Request().Method == http.MethodHead {
			if err := c.NoContent(status); err != nil {
				log.Error().Err(err).Msg("failed to write error response")
			}
			return
		}

		if err := c.JSON(status, map[string]string{"message": msg}); err != nil {
			log.Error().Err(err).Msg("failed to write error response")
		}
	}
}
