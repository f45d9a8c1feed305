// Package apierr maps application errors onto the status codes and bodies shared by
// the REST API and the websocket gateway.
package apierr

import (
	"errors"
	"net/http"

	"crowddelivery/internal/pkg/errs"
)

// Error is the body of every failed request and of the websocket "error" event.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Status returns the HTTP status for err:
// 400 for invalid input, 404 for unknown objects, 409 for guard violations,
// 503 when storage is unavailable and 500 for everything else.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrTransitionRejected):
		return http.StatusConflict
	case errors.Is(err, errs.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// FromError builds the response for err. Internal failures never leak their text.
func FromError(err error) (int, Error) {
	status := Status(err)
	msg := http.StatusText(status)
	if status != http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		msg = err.Error()
	}
	return status, Error{Code: status, Message: msg}
}
