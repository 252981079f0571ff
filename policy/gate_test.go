package policy

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log.WithField("test", true)
}

type fakeLookup struct {
	projectID *uuid.UUID
	err       error
}

func (f fakeLookup) GetProjectID(ctx context.Context, id uuid.UUID) (*uuid.UUID, error) {
	return f.projectID, f.err
}

// opaStub decodes the request body into a generic map rather than the
// unexported query/Token types: Token only implements MarshalJSON (the
// sidecar is never a decode target in production), so a typed decode here
// would require unmarshal support that has no other caller.
func opaStub(t *testing.T, allow bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		result := allow
		_ = json.NewEncoder(w).Encode(decision{Result: &result})
	}))
}

func TestGateAuthorizeAllowed(t *testing.T) {
	srv := opaStub(t, true)
	defer srv.Close()

	gate := NewGate(srv.URL, false, fakeLookup{}, discardLogger())
	event := GetEvent().WithToken(BearerToken("abc")).OnProject(uuid.New())
	require.NoError(t, gate.Authorize(context.Background(), event))
}

func TestGateAuthorizeDenied(t *testing.T) {
	srv := opaStub(t, false)
	defer srv.Close()

	gate := NewGate(srv.URL, false, fakeLookup{}, discardLogger())
	event := GetEvent().WithToken(NoToken()).OnProject(uuid.New())
	err := gate.Authorize(context.Background(), event)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestGateAuthorizeNoAuthBypasses(t *testing.T) {
	gate := NewGate("", true, fakeLookup{}, discardLogger())
	event := DeleteEvent().OnProject(uuid.New())
	require.NoError(t, gate.Authorize(context.Background(), event))
}

func TestGateAuthorizeUnsetAddrIsGateFailure(t *testing.T) {
	gate := NewGate("", false, fakeLookup{}, discardLogger())
	event := GetEvent().OnProject(uuid.New())
	err := gate.Authorize(context.Background(), event)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGateFailure)
}

func TestGateAuthorizeResolvesWorkflowProject(t *testing.T) {
	srv := opaStub(t, true)
	defer srv.Close()

	projectID := uuid.New()
	gate := NewGate(srv.URL, false, fakeLookup{projectID: &projectID}, discardLogger())
	event := UpdateEvent().OnWorkflow(uuid.New(), nil)
	require.NoError(t, gate.Authorize(context.Background(), event))
}

func TestGateAuthorizeWorkflowLookupFailureIsGateFailure(t *testing.T) {
	srv := opaStub(t, true)
	defer srv.Close()

	gate := NewGate(srv.URL, false, fakeLookup{err: errors.New("boom")}, discardLogger())
	event := UpdateEvent().OnWorkflow(uuid.New(), nil)
	err := gate.Authorize(context.Background(), event)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGateFailure)
}
