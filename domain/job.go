package domain

// Job is a unit of work within a workflow: an image, its args and env, and
// a concurrency threshold expressed as a percentage.
type Job struct {
	id         JobID
	name       Name
	workflowID WorkflowID
	threshold  Threshold
	image      Image
	args       []Arg
	envs       []Env
}

func NewJob(id JobID, name Name, workflowID WorkflowID, threshold Threshold, image Image, args []Arg, envs []Env) (Job, error) {
	return Job{
		id:         id,
		name:       name,
		workflowID: workflowID,
		threshold:  threshold,
		image:      image,
		args:       args,
		envs:       envs,
	}, nil
}

func (j Job) ID() JobID             { return j.id }
func (j Job) Name() Name            { return j.name }
func (j Job) WorkflowID() WorkflowID { return j.workflowID }
func (j Job) Threshold() Threshold  { return j.threshold }
func (j Job) Image() Image          { return j.image }
func (j Job) Args() []Arg           { return j.args }
func (j Job) Envs() []Env           { return j.envs }

func (j Job) Equal(o Job) bool { return j.id.Equal(o.id) }

// ArgStrings renders Args back to plain strings, for persistence and JSON.
func ArgStrings(args []Arg) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = a.String()
	}
	return out
}

// EnvStrings renders Envs back to plain strings, for persistence and JSON.
func EnvStrings(envs []Env) []string {
	out := make([]string, len(envs))
	for i, e := range envs {
		out[i] = e.String()
	}
	return out
}
