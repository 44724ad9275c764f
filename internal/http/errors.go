package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"todo-api.com/todo-api/internal/exceptions"
)

// ErrorHandler renders every error as {"detail": ...}.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := errorResponse(err)
		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
				"error", err,
				"cause", errors.Unwrap(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.Error("failed to write error response", "error", err)
		}
	}
}

func errorResponse(err error) (int, echo.Map) {
	var validationErr *exceptions.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusUnprocessableEntity, echo.Map{"detail": validationErr.Details}
	}

	var appErr *exceptions.Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode, echo.Map{"detail": appErr.Message}
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, echo.Map{"detail": httpErr.Message}
	}

	return http.StatusInternalServerError, echo.Map{"detail": exceptions.ErrStore.Message}
}
