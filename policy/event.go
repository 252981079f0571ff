// Package policy authorizes project/workflow operations against the OPA
// sidecar named by the controller's configuration. A missing sidecar
// address is a fatal misconfiguration, not a silent deny: this service
// trusts no request unless the sidecar actually says so.
package policy

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Action is the operation an Event represents, matching the "action" field
// of the Rego policy input.
type Action string

const (
	ActionGet    Action = "get"
	ActionList   Action = "list"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// IsRead reports whether the action only reads state.
func (a Action) IsRead() bool { return a == ActionGet || a == ActionList }

// Token carries the caller's bearer token, or its absence. Its zero value is
// "no token", matching a request with no Authorization header.
type Token struct {
	bearer string
	some   bool
}

// BearerToken wraps an extracted bearer token.
func BearerToken(raw string) Token { return Token{bearer: raw, some: true} }

// NoToken is the absence of a bearer token; requests are never rejected for
// lacking one before reaching the sidecar.
func NoToken() Token { return Token{} }

// MarshalJSON emits Token as the externally-tagged Rust enum the OPA
// sidecar's Rego policy matches on: {"Bearer":"<token>"} when present, or
// the bare string "None" when absent.
func (t Token) MarshalJSON() ([]byte, error) {
	if !t.some {
		return json.Marshal("None")
	}
	return json.Marshal(map[string]string{"Bearer": t.bearer})
}

// Resource names what an Event acts on: a project, a workflow, or a bare
// kind with no id (used for unscoped list actions).
type Resource struct {
	ProjectID  *uuid.UUID `json:"project_id,omitempty"`
	WorkflowID *uuid.UUID `json:"workflow_id,omitempty"`
	Kind       string     `json:"kind"`
}

// Event describes one authorization check: who, what action, on what
// resource. Built with the fluent constructors below, mirroring the
// builder the policy layer has always used.
type Event struct {
	Token    Token    `json:"token"`
	Action   Action   `json:"action"`
	Resource Resource `json:"resource"`
}

func newEvent(action Action) Event {
	return Event{Token: NoToken(), Action: action}
}

func GetEvent() Event    { return newEvent(ActionGet) }
func ListEvent() Event   { return newEvent(ActionList) }
func UpdateEvent() Event { return newEvent(ActionUpdate) }
func DeleteEvent() Event { return newEvent(ActionDelete) }

// WithToken attaches the caller's bearer token to the event.
func (e Event) WithToken(t Token) Event {
	e.Token = t
	return e
}

// OnProject scopes the event to a project resource.
func (e Event) OnProject(id uuid.UUID) Event {
	e.Resource = Resource{ProjectID: &id, Kind: "project"}
	return e
}

// OnWorkflow scopes the event to a workflow resource. projectID may be
// nil; Gate.Authorize fills it in from storage when it is.
func (e Event) OnWorkflow(id uuid.UUID, projectID *uuid.UUID) Event {
	e.Resource = Resource{WorkflowID: &id, ProjectID: projectID, Kind: "workflow"}
	return e
}

// OfKind scopes the event to a bare resource kind with no id, used for
// unscoped list actions.
func (e Event) OfKind(kind string) Event {
	e.Resource = Resource{Kind: kind}
	return e
}
