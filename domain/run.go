package domain

import "time"

// Run is one triggering of a job, carrying the priority it was scheduled
// with and its current token state.
type Run struct {
	id          RunID
	state       TokenState
	priority    RunPriority
	jobID       JobID
	triggeredAt time.Time
	startedAt   *time.Time
	finishedAt  *time.Time
}

func NewRun(id RunID, state TokenState, priority RunPriority, jobID JobID, triggeredAt time.Time) (Run, error) {
	return Run{
		id:          id,
		state:       state,
		priority:    priority,
		jobID:       jobID,
		triggeredAt: triggeredAt.UTC(),
	}, nil
}

func (r Run) ID() RunID               { return r.id }
func (r Run) State() TokenState       { return r.state }
func (r Run) Priority() RunPriority   { return r.priority }
func (r Run) JobID() JobID            { return r.jobID }
func (r Run) TriggeredAt() time.Time  { return r.triggeredAt }
func (r Run) StartedAt() *time.Time   { return r.startedAt }
func (r Run) FinishedAt() *time.Time  { return r.finishedAt }

func (r Run) Equal(o Run) bool { return r.id.Equal(o.id) }

// Token is the accumulation of runs observed for a job in a given state,
// aggregated for reporting rather than tracked per run.
type Token struct {
	jobID JobID
	count TokenCount
	state TokenState
}

func NewToken(jobID JobID, count TokenCount, state TokenState) (Token, error) {
	return Token{jobID: jobID, count: count, state: state}, nil
}

func (t Token) JobID() JobID       { return t.jobID }
func (t Token) Count() TokenCount  { return t.count }
func (t Token) State() TokenState  { return t.state }
