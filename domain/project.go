package domain

// Project is the top-level grouping of workflows. Its Config is opaque JSON
// consumed by the runner, never interpreted by the controller.
type Project struct {
	id          ProjectID
	name        Name
	description Description
	config      Config
}

// NewProject builds a Project from already-validated values. config may be
// AbsentConfig(): a new project is then stored with the empty JSON object,
// and an upsert of an existing one keeps its stored config.
func NewProject(id ProjectID, name Name, description Description, config Config) (Project, error) {
	return Project{id: id, name: name, description: description, config: config}, nil
}

func (p Project) ID() ProjectID            { return p.id }
func (p Project) Name() Name               { return p.name }
func (p Project) Description() Description { return p.description }
func (p Project) Config() Config           { return p.config }

func (p Project) Equal(o Project) bool { return p.id.Equal(o.id) }

// ProjectSummary is the last-hour activity snapshot returned by
// GetSummaryByID.
type ProjectSummary struct {
	ID                 ProjectID
	Name               Name
	Description        Description
	Workflows          int64
	RunningJobs        int64
	WaitingJobs        int64
	FailsLastHour      int64
	SuccessesLastHour  int64
	ErrorsLastHour     int64
}

// WorkflowSummary is one row of a project's workflow listing, carrying the
// per-state run counters observed in the last-hour window.
type WorkflowSummary struct {
	ID          WorkflowID
	Name        Name
	Description Description
	Paused      Paused
	Success     int64
	Running     int64
	Failure     int64
	Waiting     int64
	Error       int64
}
