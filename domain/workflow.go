package domain

// Workflow groups jobs under a project and can be paused to stop new runs
// from being scheduled against it.
type Workflow struct {
	id          WorkflowID
	name        Name
	projectID   ProjectID
	description Description
	paused      Paused
}

func NewWorkflow(id WorkflowID, name Name, projectID ProjectID, description Description, paused Paused) (Workflow, error) {
	return Workflow{id: id, name: name, projectID: projectID, description: description, paused: paused}, nil
}

func (w Workflow) ID() WorkflowID          { return w.id }
func (w Workflow) Name() Name              { return w.name }
func (w Workflow) ProjectID() ProjectID    { return w.projectID }
func (w Workflow) Description() Description { return w.description }
func (w Workflow) Paused() Paused          { return w.paused }

func (w Workflow) Equal(o Workflow) bool { return w.id.Equal(o.id) }
