package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lllypuk/userhub/internal/application/appcore"
	"github.com/lllypuk/userhub/internal/domain/errs"
)

// Client-facing messages for errors that have no more specific wording.
const (
	MessageInvalidDetails = "Invalid details provided."
	MessageInternalError  = "Internal server error"
	MessageNotFound       = "Resource not found"
	MessageAlreadyExists  = "Resource already exists"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Message string `json:"message"`
}

// RespondJSON sends data as the JSON body.
func RespondJSON(c echo.Context, code int, data any) error {
	return c.JSON(code, data)
}

// RespondOK sends a 200 OK response with data.
func RespondOK(c echo.Context, data any) error {
	return RespondJSON(c, http.StatusOK, data)
}

// RespondCreated sends a 201 Created response with data.
func RespondCreated(c echo.Context, data any) error {
	return RespondJSON(c, http.StatusCreated, data)
}

// RespondError sends an error response based on the error type.
// Server-side failures are logged; their detail never reaches the client.
func RespondError(c echo.Context, err error) error {
	code, message := mapError(err)
	if code >= http.StatusInternalServerError {
		ctx := c.Request().Context()
		slog.Default().ErrorContext(ctx, "request failed",
			slog.String("error", err.Error()),
			slog.String("path", c.Path()),
			slog.String("request_id", appcore.RequestID(ctx)),
		)
	}
	return RespondErrorWithCode(c, code, message)
}

// RespondErrorWithCode sends an error response with a specific status code and message.
func RespondErrorWithCode(c echo.Context, code int, message string) error {
	return c.JSON(code, ErrorResponse{Message: message})
}

// mapError maps application and domain errors to status codes and messages.
func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, appcore.ErrValidationFailed), errors.Is(err, errs.ErrInvalidInput):
		return http.StatusBadRequest, MessageInvalidDetails
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound, MessageNotFound
	case errors.Is(err, errs.ErrAlreadyExists):
		return http.StatusConflict, MessageAlreadyExists
	default:
		return http.StatusInternalServerError, MessageInternalError
	}
}
