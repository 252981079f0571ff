// Package domain holds Kotosiro's core entities and value objects: projects,
// workflows, jobs, runs and tokens. Values are only ever constructed through
// the New* functions in this package, which enforce the invariants described
// by the validating constructors in the original service.
package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// ProjectID identifies a project by UUID.
type ProjectID struct{ value uuid.UUID }

// NewProjectID parses s as a UUID. An empty string is rejected; callers that
// want a fresh id should call uuid.New() themselves and pass its string form.
func NewProjectID(s string) (ProjectID, error) {
	v, err := uuid.Parse(s)
	if err != nil {
		return ProjectID{}, fmt.Errorf("failed to parse project id %q: %w", s, err)
	}
	return ProjectID{value: v}, nil
}

// ProjectIDFromUUID wraps an already-validated UUID.
func ProjectIDFromUUID(v uuid.UUID) ProjectID { return ProjectID{value: v} }

func (id ProjectID) UUID() uuid.UUID  { return id.value }
func (id ProjectID) String() string   { return id.value.String() }
func (id ProjectID) Equal(o ProjectID) bool { return id.value == o.value }

// WorkflowID identifies a workflow by UUID.
type WorkflowID struct{ value uuid.UUID }

func NewWorkflowID(s string) (WorkflowID, error) {
	v, err := uuid.Parse(s)
	if err != nil {
		return WorkflowID{}, fmt.Errorf("failed to parse workflow id %q: %w", s, err)
	}
	return WorkflowID{value: v}, nil
}

func WorkflowIDFromUUID(v uuid.UUID) WorkflowID { return WorkflowID{value: v} }

func (id WorkflowID) UUID() uuid.UUID    { return id.value }
func (id WorkflowID) String() string     { return id.value.String() }
func (id WorkflowID) Equal(o WorkflowID) bool { return id.value == o.value }

// JobID identifies a job by UUID.
type JobID struct{ value uuid.UUID }

func NewJobID(s string) (JobID, error) {
	v, err := uuid.Parse(s)
	if err != nil {
		return JobID{}, fmt.Errorf("failed to parse job id %q: %w", s, err)
	}
	return JobID{value: v}, nil
}

func JobIDFromUUID(v uuid.UUID) JobID { return JobID{value: v} }

func (id JobID) UUID() uuid.UUID { return id.value }
func (id JobID) String() string  { return id.value.String() }
func (id JobID) Equal(o JobID) bool { return id.value == o.value }

// RunID identifies a run by UUID.
type RunID struct{ value uuid.UUID }

func NewRunID(s string) (RunID, error) {
	v, err := uuid.Parse(s)
	if err != nil {
		return RunID{}, fmt.Errorf("failed to parse run id %q: %w", s, err)
	}
	return RunID{value: v}, nil
}

func RunIDFromUUID(v uuid.UUID) RunID { return RunID{value: v} }

func (id RunID) UUID() uuid.UUID { return id.value }
func (id RunID) String() string  { return id.value.String() }
func (id RunID) Equal(o RunID) bool { return id.value == o.value }
