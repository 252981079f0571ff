package domain

import "fmt"

// Name is a non-empty string used for project, workflow and job names.
type Name struct{ value string }

func newName(kind, s string) (Name, error) {
	if len(s) < 1 {
		return Name{}, fmt.Errorf("%s name must not be empty", kind)
	}
	return Name{value: s}, nil
}

func NewProjectName(s string) (Name, error)  { return newName("project", s) }
func NewWorkflowName(s string) (Name, error) { return newName("workflow", s) }
func NewJobName(s string) (Name, error)      { return newName("job", s) }

func (n Name) String() string       { return n.value }
func (n Name) Equal(o Name) bool    { return n.value == o.value }

// Description is a free-form string that may be empty. The original entity
// drafts once required length>=1; the shipped behavior allows empty
// descriptions for every aggregate.
type Description struct{ value string }

func NewDescription(s string) (Description, error) {
	return Description{value: s}, nil
}

func (d Description) String() string    { return d.value }
func (d Description) Equal(o Description) bool { return d.value == o.value }

// Paused flags whether a workflow is currently paused.
type Paused struct{ value bool }

func NewPaused(b bool) Paused { return Paused{value: b} }
func (p Paused) Bool() bool   { return p.value }

// Threshold bounds a job's allowed concurrency percentage, 0-100 inclusive.
type Threshold struct{ value int32 }

func NewThreshold(v int32) (Threshold, error) {
	if v < 0 || v > 100 {
		return Threshold{}, fmt.Errorf("job threshold must be between 0 and 100, got %d", v)
	}
	return Threshold{value: v}, nil
}

func (t Threshold) Int32() int32 { return t.value }

// Image names the container image a job runs, may be empty.
type Image struct{ value string }

func NewImage(s string) (Image, error) { return Image{value: s}, nil }
func (i Image) String() string         { return i.value }

// Arg is one element of a job's argv.
type Arg struct{ value string }

func NewArg(s string) (Arg, error) { return Arg{value: s}, nil }
func (a Arg) String() string       { return a.value }

// Env is one KEY=VALUE element of a job's environment.
type Env struct{ value string }

func NewEnv(s string) (Env, error) { return Env{value: s}, nil }
func (e Env) String() string       { return e.value }

// NewArgs builds a slice of Arg, dropping any that fail validation (mirrors
// the original's filter_map behavior for job argv).
func NewArgs(ss []string) []Arg {
	out := make([]Arg, 0, len(ss))
	for _, s := range ss {
		if a, err := NewArg(s); err == nil {
			out = append(out, a)
		}
	}
	return out
}

// NewEnvs builds a slice of Env, dropping any that fail validation.
func NewEnvs(ss []string) []Env {
	out := make([]Env, 0, len(ss))
	for _, s := range ss {
		if e, err := NewEnv(s); err == nil {
			out = append(out, e)
		}
	}
	return out
}

// TokenCount is a non-negative counter of tokens accumulated against a job.
type TokenCount struct{ value int32 }

func NewTokenCount(v int32) (TokenCount, error) {
	if v < 0 {
		return TokenCount{}, fmt.Errorf("token count must not be negative, got %d", v)
	}
	return TokenCount{value: v}, nil
}

func (c TokenCount) Int32() int32 { return c.value }
