package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/kotosiro/controller/policy"
	"github.com/kotosiro/controller/repository"
)

// apiError is the error type every handler returns. It carries the HTTP
// status the teacher's CustomHTTPErrorHandler maps it to, keeping the
// classification local to the site that raised it instead of re-deriving it
// in the handler.
type apiError struct {
	status  int
	message string
}

func (e *apiError) Error() string { return e.message }

func errValidation() *apiError   { return &apiError{status: http.StatusUnprocessableEntity, message: "Validation errors"} }
func errBadRequest() *apiError   { return &apiError{status: http.StatusBadRequest, message: "Bad request"} }
func errUnauthorized() *apiError { return &apiError{status: http.StatusUnauthorized, message: "Unauthorized"} }
func errConflict() *apiError     { return &apiError{status: http.StatusConflict, message: "Confliction occured"} }
func errInternal() *apiError     { return &apiError{status: http.StatusInternalServerError, message: "Something went wrong"} }

// classify turns an error surfaced by the policy gate or the repository
// layer into the apiError the teacher's handler vocabulary expects: a
// sidecar denial is Unauthorized, anything that kept the gate from reaching
// a decision at all is an internal error (never a silent deny), a storage
// integrity violation is Conflict, everything else is an internal error.
func classify(err error) *apiError {
	switch {
	case errors.Is(err, policy.ErrUnauthorized):
		return errUnauthorized()
	case errors.Is(err, policy.ErrGateFailure):
		return errInternal()
	case errors.Is(err, repository.ErrConflict):
		return errConflict()
	default:
		return errInternal()
	}
}

// NewHTTPErrorHandler builds Echo's HTTPErrorHandler, grounded on the
// teacher's CustomHTTPErrorHandler: map the error to a status and message,
// then write {"error": message} unless the response was already committed.
func NewHTTPErrorHandler(log *logrus.Entry) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		status := http.StatusInternalServerError
		message := "Something went wrong"

		var ae *apiError
		var he *echo.HTTPError
		switch {
		case errors.As(err, &ae):
			status = ae.status
			message = ae.message
		case errors.As(err, &he):
			status = he.Code
			if msg, ok := he.Message.(string); ok {
				message = msg
			}
		}

		if c.Response().Committed {
			return
		}
		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, echo.Map{"error": message})
		}
		if writeErr != nil {
			log.WithError(writeErr).Error("failed to write error response")
		}
	}
}
