package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Eursukkul/booking-microservice/entry-service/internal/dto"
	"github.com/labstack/echo/v4"
)

// ErrorHandler renders every error as {"message": ...}. Server errors are logged
// with their internal cause; the client only sees the message.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		msg := http.StatusText(code)

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				msg = m
			} else {
				msg = http.StatusText(code)
			}
		}

		if code >= http.StatusInternalServerError {
			logger.Error("request failed",
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"status", code,
				"error", err,
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = c.JSON(code, dto.ErrorResponse{Message: msg})
		}
		if writeErr != nil {
			logger.Warn("write error response", "error", writeErr)
		}
	}
}
