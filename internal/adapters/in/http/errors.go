package http

import (
	"errors"
	"net/http"

	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

var kindStatus = map[errs.Kind]int{
	errs.KindNotFound:          http.StatusNotFound,
	errs.KindValidation:        http.StatusBadRequest,
	errs.KindInvalidTransition: http.StatusUnprocessableEntity,
	errs.KindConflict:          http.StatusConflict,
	errs.KindCapacityExceeded:  http.StatusConflict,
	errs.KindCooldownActive:    http.StatusTooManyRequests,
	errs.KindNoMatchingOrder:   http.StatusNotFound,
	errs.KindNoOrdersAvailable: http.StatusNotFound,
	errs.KindStoreUnavailable:  http.StatusServiceUnavailable,
}

// StatusOf returns the HTTP status of an error kind.
func StatusOf(kind errs.Kind) int {
	if status, ok := kindStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(c echo.Context, err error) error {
	kind := errs.KindOf(err)
	status := StatusOf(kind)

	message := err.Error()
	if kind.IsFault() {
		s.logger.ErrorContext(c.Request().Context(), "request failed", "error", err,
			"method", c.Request().Method, "path", c.Path())
		message = errs.ErrStoreUnavailable.Error()
	}

	return c.JSON(status, Error{
		Code:    status,
		Reason:  string(kind),
		Message: message,
	})
}

func (s *Server) badRequest(c echo.Context, err error) error {
	var httpErr *echo.HTTPError
	message := err.Error()
	if errors.As(err, &httpErr) {
		if m, ok := httpErr.Message.(string); ok {
			message = m
		}
	}
	return c.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Reason:  string(errs.KindValidation),
		Message: "Invalid request body: " + message,
	})
}
