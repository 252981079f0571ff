package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kotosiro/controller/policy"
)

func TestBearerTokenMiddlewareExtractsToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer secret-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var captured policy.Token
	handler := bearerTokenMiddleware(func(c echo.Context) error {
		captured = tokenFrom(c)
		return nil
	})
	require.NoError(t, handler(c))
	raw, err := json.Marshal(captured)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Bearer":"secret-token"}`, string(raw))
}

func TestBearerTokenMiddlewareMissingHeaderYieldsNoToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var captured policy.Token
	handler := bearerTokenMiddleware(func(c echo.Context) error {
		captured = tokenFrom(c)
		return nil
	})
	require.NoError(t, handler(c))
	raw, err := json.Marshal(captured)
	require.NoError(t, err)
	assert.JSONEq(t, `"None"`, string(raw))
}
