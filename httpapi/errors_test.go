package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kotosiro/controller/policy"
	"github.com/kotosiro/controller/repository"
)

func discardLogger() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log.WithField("test", true)
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"unauthorized", fmt.Errorf("wrap: %w", policy.ErrUnauthorized), http.StatusUnauthorized},
		{"gate failure", fmt.Errorf("wrap: %w", policy.ErrGateFailure), http.StatusInternalServerError},
		{"conflict", fmt.Errorf("wrap: %w", repository.ErrConflict), http.StatusConflict},
		{"other", fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, classify(tc.err).status)
		})
	}
}

func TestHTTPErrorHandlerWritesAPIError(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	e.HTTPErrorHandler(errConflict(), c)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"Confliction occured"}`, rec.Body.String())
}

func TestHTTPErrorHandlerFallsBackToEchoHTTPError(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	e.HTTPErrorHandler(echo.NewHTTPError(http.StatusNotFound, "not found"), c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not found"}`, rec.Body.String())
}

func TestHTTPErrorHandlerSkipsCommittedResponse(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, c.NoContent(http.StatusOK))

	e.HTTPErrorHandler(errInternal(), c)

	assert.Equal(t, http.StatusOK, rec.Code)
}
