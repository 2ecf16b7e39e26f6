package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mhoudali/interim_app/internal/apperr"
)

var sentinels = []error{
	apperr.ErrUnauthenticated,
	apperr.ErrForbidden,
	apperr.ErrNotFound,
	apperr.ErrConflict,
	apperr.ErrInvalidArgument,
	apperr.ErrInvalidState,
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrInvalidArgument), errors.Is(err, apperr.ErrInvalidState):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// httpError converts a service error into the transport answer. Untagged
// errors never leak their internals to the client.
func httpError(err error) error {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		return echo.NewHTTPError(code, "Erreur serveur")
	}

	msg := err.Error()
	for _, s := range sentinels {
		msg = strings.TrimSuffix(msg, ": "+s.Error())
	}
	return echo.NewHTTPError(code, msg)
}
