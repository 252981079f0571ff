package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/kotosiro/controller/domain"
)

// ProjectRow is a project as read back from storage, with config always
// present (defaulted to the empty object) and timestamps in UTC.
type ProjectRow struct {
	ID          uuid.UUID
	Name        string
	Description string
	Config      json.RawMessage
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProjectSummaryRow is the last-hour activity snapshot for a project.
type ProjectSummaryRow struct {
	ID                uuid.UUID
	Name              string
	Description       string
	Workflows         int64
	RunningJobs       int64
	WaitingJobs       int64
	FailsLastHour     int64
	SuccessesLastHour int64
	ErrorsLastHour    int64
}

// WorkflowListRow is one row of a project's workflow listing, with run
// counters over the last-hour window.
type WorkflowListRow struct {
	ID          uuid.UUID
	Name        string
	Description string
	Paused      bool
	Success     int64
	Running     int64
	Failure     int64
	Waiting     int64
	Error       int64
}

// ProjectRepository persists and queries projects.
type ProjectRepository interface {
	Create(ctx context.Context, q Queryer, p domain.Project) error
	Delete(ctx context.Context, q Queryer, id domain.ProjectID) (int64, error)
	List(ctx context.Context, q Queryer, limit int64) ([]ProjectRow, error)
	GetByID(ctx context.Context, q Queryer, id domain.ProjectID) (*ProjectRow, error)
	GetByName(ctx context.Context, q Queryer, name domain.Name) (*ProjectRow, error)
	GetSummaryByID(ctx context.Context, q Queryer, id domain.ProjectID) (*ProjectSummaryRow, error)
	GetConfigByID(ctx context.Context, q Queryer, id domain.ProjectID) (json.RawMessage, error)
	ListWorkflowsByID(ctx context.Context, q Queryer, id domain.ProjectID, name, after *domain.Name, limit int64) ([]WorkflowListRow, error)
}

type pgProjectRepository struct{}

// NewProjectRepository builds the Postgres-backed ProjectRepository.
func NewProjectRepository() ProjectRepository { return pgProjectRepository{} }

func (pgProjectRepository) Create(ctx context.Context, q Queryer, p domain.Project) error {
	_, err := q.Exec(ctx, `
		INSERT INTO project (id, name, description, config)
		VALUES ($1, $2, $3, COALESCE($4, '{}'::jsonb))
		ON CONFLICT (id) DO UPDATE
		SET name = $2,
		    description = $3,
		    config = COALESCE($4, project.config)`,
		p.ID().UUID(), p.Name().String(), p.Description().String(), p.Config().Bytes())
	if err != nil {
		return Classify(fmt.Sprintf("failed to upsert %q into project", p.ID()), err)
	}
	return nil
}

func (pgProjectRepository) Delete(ctx context.Context, q Queryer, id domain.ProjectID) (int64, error) {
	tag, err := q.Exec(ctx, `DELETE FROM project WHERE id = $1`, id.UUID())
	if err != nil {
		return 0, Classify(fmt.Sprintf("failed to delete %q from project", id), err)
	}
	return tag.RowsAffected(), nil
}

func (pgProjectRepository) List(ctx context.Context, q Queryer, limit int64) ([]ProjectRow, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := q.Query(ctx, `
		SELECT id, name, description, COALESCE(config, '{}'::jsonb), created_at, updated_at
		FROM project
		ORDER BY name
		LIMIT $1`, limit)
	if err != nil {
		return nil, Classify(fmt.Sprintf("failed to list %d project(s) from project", limit), err)
	}
	defer rows.Close()

	var out []ProjectRow
	for rows.Next() {
		var r ProjectRow
		if err := rows.Scan(&r.ID, &r.Name, &r.Description, &r.Config, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, Classify("failed to scan project row", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (pgProjectRepository) GetByID(ctx context.Context, q Queryer, id domain.ProjectID) (*ProjectRow, error) {
	var r ProjectRow
	err := q.QueryRow(ctx, `
		SELECT id, name, description, COALESCE(config, '{}'::jsonb), created_at, updated_at
		FROM project
		WHERE id = $1`, id.UUID()).Scan(&r.ID, &r.Name, &r.Description, &r.Config, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, Classify(fmt.Sprintf("failed to select %q from project", id), err)
	}
	return &r, nil
}

func (pgProjectRepository) GetByName(ctx context.Context, q Queryer, name domain.Name) (*ProjectRow, error) {
	var r ProjectRow
	err := q.QueryRow(ctx, `
		SELECT id, name, description, COALESCE(config, '{}'::jsonb), created_at, updated_at
		FROM project
		WHERE name = $1`, name.String()).Scan(&r.ID, &r.Name, &r.Description, &r.Config, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, Classify(fmt.Sprintf("failed to select %q from project", name), err)
	}
	return &r, nil
}

func (pgProjectRepository) GetSummaryByID(ctx context.Context, q Queryer, id domain.ProjectID) (*ProjectSummaryRow, error) {
	var r ProjectSummaryRow
	err := q.QueryRow(ctx, `
		WITH these_jobs AS (
			SELECT job.id AS id, run.state AS state
			FROM workflow
			JOIN job ON job.workflow_id = workflow.id
			JOIN run ON run.job_id = job.id
			WHERE workflow.project_id = $1
			AND (run.finished_at IS NULL OR CURRENT_TIMESTAMP - run.finished_at < INTERVAL '1 hour')
		)
		SELECT
			id,
			name,
			description,
			(SELECT COUNT(1) FROM workflow WHERE workflow.project_id = $1) AS workflows,
			(SELECT COUNT(1) FROM these_jobs WHERE state = 'running') AS running_jobs,
			(SELECT COUNT(1) FROM these_jobs WHERE state = 'waiting' OR state = 'active') AS waiting_jobs,
			(SELECT COUNT(1) FROM these_jobs WHERE state = 'failure') AS fails_last_hour,
			(SELECT COUNT(1) FROM these_jobs WHERE state = 'success') AS successes_last_hour,
			(SELECT COUNT(1) FROM these_jobs WHERE state = 'error') AS errors_last_hour
		FROM project
		WHERE id = $1`, id.UUID()).Scan(
		&r.ID, &r.Name, &r.Description, &r.Workflows, &r.RunningJobs, &r.WaitingJobs,
		&r.FailsLastHour, &r.SuccessesLastHour, &r.ErrorsLastHour)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, Classify(fmt.Sprintf("failed to summarize %q from project", id), err)
	}
	return &r, nil
}

func (pgProjectRepository) GetConfigByID(ctx context.Context, q Queryer, id domain.ProjectID) (json.RawMessage, error) {
	var cfg json.RawMessage
	err := q.QueryRow(ctx, `
		SELECT COALESCE(config, '{}'::jsonb)
		FROM project
		WHERE id = $1`, id.UUID()).Scan(&cfg)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, Classify(fmt.Sprintf("failed to read config for %q from project", id), err)
	}
	return cfg, nil
}

// ListWorkflowsByID paginates a project's workflows by name using keyset
// pagination (name > after), optionally filtered to an exact name, each row
// annotated with per-state run counts over the last-hour window.
func (pgProjectRepository) ListWorkflowsByID(ctx context.Context, q Queryer, id domain.ProjectID, name, after *domain.Name, limit int64) ([]WorkflowListRow, error) {
	if limit <= 0 {
		limit = 100
	}
	afterValue := ""
	if after != nil {
		afterValue = after.String()
	}
	nameFilter := ""
	if name != nil {
		nameFilter = name.String()
	}
	rows, err := q.Query(ctx, `
		WITH these_runs AS (
			SELECT job.workflow_id AS workflow_id, run.state AS state
			FROM job
			JOIN run ON run.job_id = job.id
			WHERE (run.finished_at IS NULL OR CURRENT_TIMESTAMP - run.finished_at < INTERVAL '1 hour')
		)
		SELECT
			workflow.id,
			workflow.name,
			workflow.description,
			workflow.paused,
			(SELECT COUNT(1) FROM these_runs WHERE workflow_id = workflow.id AND state = 'success') AS success,
			(SELECT COUNT(1) FROM these_runs WHERE workflow_id = workflow.id AND state = 'running') AS running,
			(SELECT COUNT(1) FROM these_runs WHERE workflow_id = workflow.id AND state = 'failure') AS failure,
			(SELECT COUNT(1) FROM these_runs WHERE workflow_id = workflow.id AND (state = 'waiting' OR state = 'active')) AS waiting,
			(SELECT COUNT(1) FROM these_runs WHERE workflow_id = workflow.id AND state = 'error') AS error
		FROM workflow
		WHERE workflow.project_id = $1
		AND workflow.name > $2
		AND ($3 = '' OR workflow.name = $3)
		ORDER BY workflow.name
		LIMIT $4`, id.UUID(), afterValue, nameFilter, limit)
	if err != nil {
		return nil, Classify(fmt.Sprintf("failed to list workflows for %q from project", id), err)
	}
	defer rows.Close()

	var out []WorkflowListRow
	for rows.Next() {
		var r WorkflowListRow
		if err := rows.Scan(&r.ID, &r.Name, &r.Description, &r.Paused, &r.Success, &r.Running, &r.Failure, &r.Waiting, &r.Error); err != nil {
			return nil, Classify("failed to scan workflow row", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
