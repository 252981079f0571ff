package policy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrUnauthorized is returned when the sidecar explicitly denies an event.
var ErrUnauthorized = errors.New("unauthorized")

// ErrGateFailure is returned for anything that keeps the gate from reaching
// a decision at all: no sidecar configured, a transport error, a malformed
// response, or a failed workflow-to-project lookup. It is never treated as
// a deny; callers must surface it as an internal error.
var ErrGateFailure = errors.New("policy gate failure")

// WorkflowProjectLookup resolves the project a workflow belongs to, used to
// enrich workflow-scoped events that arrive without a project id.
type WorkflowProjectLookup interface {
	GetProjectID(ctx context.Context, id uuid.UUID) (*uuid.UUID, error)
}

type decision struct {
	Result *bool `json:"result"`
}

type query struct {
	Input input `json:"input"`
}

type input struct {
	Action   Action   `json:"action"`
	Token    Token    `json:"token"`
	Resource Resource `json:"resource"`
}

// Gate authorizes events against the OPA sidecar. NoAuth bypasses the
// sidecar entirely and is meant only for local development; it must never
// be enabled against real data.
type Gate struct {
	opaAddr  string
	noAuth   bool
	lookup   WorkflowProjectLookup
	client   *http.Client
	log      *logrus.Entry
	warnedNA bool
}

// NewGate builds a Gate. An empty opaAddr is only safe when noAuth is true;
// Authorize treats an unset address with auth enabled as ErrGateFailure
// rather than silently denying every request.
func NewGate(opaAddr string, noAuth bool, lookup WorkflowProjectLookup, log *logrus.Entry) *Gate {
	g := &Gate{
		opaAddr: opaAddr,
		noAuth:  noAuth,
		lookup:  lookup,
		client:  &http.Client{Timeout: 5 * time.Second},
		log:     log,
	}
	if noAuth {
		log.Warn("authorization is disabled (KOTOSIRO_NO_AUTH=true); every event is allowed")
	}
	return g
}

// Authorize enriches, queries and decides on event. Deny is reported as
// ErrUnauthorized; any failure to reach a decision is ErrGateFailure.
func (g *Gate) Authorize(ctx context.Context, event Event) error {
	if g.noAuth {
		return nil
	}

	if event.Resource.WorkflowID != nil && event.Resource.ProjectID == nil {
		projectID, err := g.lookup.GetProjectID(ctx, *event.Resource.WorkflowID)
		if err != nil {
			return fmt.Errorf("%w: failed to resolve project for workflow %q: %v", ErrGateFailure, *event.Resource.WorkflowID, err)
		}
		event.Resource.ProjectID = projectID
	}

	allowed, err := g.query(ctx, event)
	if err != nil {
		return err
	}
	if !allowed {
		g.log.WithFields(logrus.Fields{
			"action": event.Action,
			"kind":   event.Resource.Kind,
		}).Warn("unauthorized")
		return fmt.Errorf("%w: action %q on %q", ErrUnauthorized, event.Action, event.Resource.Kind)
	}
	g.log.WithFields(logrus.Fields{
		"action": event.Action,
		"kind":   event.Resource.Kind,
	}).Debug("authorized")
	return nil
}

func (g *Gate) query(ctx context.Context, event Event) (bool, error) {
	if g.opaAddr == "" {
		return false, fmt.Errorf("%w: OPA sidecar address is unset (set KOTOSIRO_NO_AUTH=true to disable auth)", ErrGateFailure)
	}

	body, err := json.Marshal(query{Input: input{Action: event.Action, Token: event.Token, Resource: event.Resource}})
	if err != nil {
		return false, fmt.Errorf("%w: failed to encode OPA query: %v", ErrGateFailure, err)
	}

	url := g.opaAddr + "/v1/data/kotosiro/authorize"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("%w: failed to build OPA request: %v", ErrGateFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := g.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: failed to query OPA at %q: %v", ErrGateFailure, url, err)
	}
	defer res.Body.Close()

	var dec decision
	if err := json.NewDecoder(res.Body).Decode(&dec); err != nil {
		return false, fmt.Errorf("%w: failed to decode OPA response: %v", ErrGateFailure, err)
	}
	return dec.Result != nil && *dec.Result, nil
}
