package http

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"ordercycles/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Outcomes recorded by the command counter.
const (
	outcomeSuccess   = "success"
	outcomeInvalid   = "invalid"
	outcomeForbidden = "forbidden"
	outcomeConflict  = "conflict"
	outcomeNotFound  = "not_found"
	outcomeBadInput  = "bad_request"
	outcomeError     = "error"
)

const (
	flashNoticeCookie = "flash_notice"
	flashErrorCookie  = "flash_error"
	flashMaxAge       = 60 * time.Second
)

// classify maps a use case error to its HTTP status, outcome label and body.
func classify(err error) (int, string, ErrorResponse) {
	var (
		authErr     *errs.AuthorizationError
		validErr    *errs.ValidationError
		conflictErr *errs.DependencyConflictError
	)

	switch {
	case errors.As(err, &authErr):
		return http.StatusForbidden, outcomeForbidden, ErrorResponse{Errors: authErr.Message}
	case errors.Is(err, errs.ErrEmptyInput):
		return http.StatusUnprocessableEntity, outcomeInvalid, ErrorResponse{Errors: errs.ErrEmptyInput.Error()}
	case errors.As(err, &validErr):
		return http.StatusUnprocessableEntity, outcomeInvalid, ErrorResponse{Errors: validErr.Fields}
	case errors.As(err, &conflictErr):
		return http.StatusConflict, outcomeConflict, ErrorResponse{Errors: conflictErr.Message}
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, outcomeNotFound, ErrorResponse{Errors: "Order cycle not found"}
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, outcomeBadInput, ErrorResponse{Errors: err.Error()}
	}
	return http.StatusInternalServerError, outcomeError, ErrorResponse{Errors: "Internal server error"}
}

// fail writes err as a JSON response and records it against operation.
func (s *Server) fail(c echo.Context, operation string, err error) error {
	status, outcome, body := classify(err)
	s.metrics.observe(operation, outcome)

	if status == http.StatusInternalServerError {
		s.logger.WithError(err).WithField("operation", operation).Error("request failed")
	}
	return c.JSON(status, body)
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Errors: message})
}

func setFlash(c echo.Context, name, message string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    url.QueryEscape(message),
		Path:     "/",
		MaxAge:   int(flashMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
