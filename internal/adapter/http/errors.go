package http

import (
	"errors"
	"net/http"

	"hr-portal-backend/internal/domain/employee"
	"hr-portal-backend/internal/domain/entitlement"
	"hr-portal-backend/internal/domain/uow"
	"hr-portal-backend/internal/domain/vacation"
	"hr-portal-backend/internal/usecase/renewal"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// statusFor maps domain errors → HTTP codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, vacation.ErrInvalidDates),
		errors.Is(err, vacation.ErrUnknownStatus),
		errors.Is(err, vacation.ErrNoManagerAssigned),
		errors.Is(err, entitlement.ErrInvalidDays),
		errors.Is(err, renewal.ErrFutureDate):
		return http.StatusUnprocessableEntity
	case errors.Is(err, employee.ErrNotFound),
		errors.Is(err, vacation.ErrNotFound),
		errors.Is(err, vacation.ErrInvalidToken):
		return http.StatusNotFound
	case errors.Is(err, vacation.ErrTokenExpired):
		return http.StatusGone
	case errors.Is(err, vacation.ErrAlreadyActioned),
		errors.Is(err, vacation.ErrInvalidState),
		errors.Is(err, entitlement.ErrInsufficientBalance),
		errors.Is(err, renewal.ErrAlreadyRunning):
		return http.StatusConflict
	case errors.Is(err, uow.ErrTransient):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeError(c echo.Context, log logrus.FieldLogger, err error) error {
	code := statusFor(err)
	msg := err.Error()
	switch code {
	case http.StatusInternalServerError:
		msg = "internal error"
		log.WithError(err).WithFields(logrus.Fields{
			"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
			"path":       c.Path(),
		}).Error("request failed")
	case http.StatusServiceUnavailable:
		msg = "temporarily unavailable, retry"
		log.WithError(err).WithField("path", c.Path()).Warn("transient failure")
	}
	return c.JSON(code, ErrorResponse{Error: msg})
}

func validationFailed(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation failed",
		Details: ToFieldErrors(err),
	})
}
