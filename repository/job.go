package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/kotosiro/controller/domain"
)

// JobRow is a job as read back from storage.
type JobRow struct {
	ID         uuid.UUID
	Name       string
	WorkflowID uuid.UUID
	Threshold  int32
	Image      string
	Args       []string
	Envs       []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// JobRepository persists and queries jobs.
type JobRepository interface {
	Create(ctx context.Context, q Queryer, j domain.Job) error
	Delete(ctx context.Context, q Queryer, id domain.JobID) (int64, error)
	GetByID(ctx context.Context, q Queryer, id domain.JobID) (*JobRow, error)
	GetWorkflowID(ctx context.Context, q Queryer, id domain.JobID) (*uuid.UUID, error)
}

type pgJobRepository struct{}

// NewJobRepository builds the Postgres-backed JobRepository.
func NewJobRepository() JobRepository { return pgJobRepository{} }

func (pgJobRepository) Create(ctx context.Context, q Queryer, j domain.Job) error {
	_, err := q.Exec(ctx, `
		INSERT INTO job (id, name, workflow_id, threshold, image, args, envs)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (name, workflow_id) DO UPDATE
		SET threshold = $4,
		    image = $5,
		    args = $6,
		    envs = $7`,
		j.ID().UUID(), j.Name().String(), j.WorkflowID().UUID(), j.Threshold().Int32(),
		j.Image().String(), domain.ArgStrings(j.Args()), domain.EnvStrings(j.Envs()))
	if err != nil {
		return Classify(fmt.Sprintf("failed to upsert %q into job", j.ID()), err)
	}
	return nil
}

func (pgJobRepository) Delete(ctx context.Context, q Queryer, id domain.JobID) (int64, error) {
	tag, err := q.Exec(ctx, `DELETE FROM job WHERE id = $1`, id.UUID())
	if err != nil {
		return 0, Classify(fmt.Sprintf("failed to delete %q from job", id), err)
	}
	return tag.RowsAffected(), nil
}

func (pgJobRepository) GetByID(ctx context.Context, q Queryer, id domain.JobID) (*JobRow, error) {
	var r JobRow
	err := q.QueryRow(ctx, `
		SELECT id, name, workflow_id, threshold, image, args, envs, created_at, updated_at
		FROM job
		WHERE id = $1`, id.UUID()).Scan(&r.ID, &r.Name, &r.WorkflowID, &r.Threshold, &r.Image, &r.Args, &r.Envs, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, Classify(fmt.Sprintf("failed to select %q from job", id), err)
	}
	return &r, nil
}

func (pgJobRepository) GetWorkflowID(ctx context.Context, q Queryer, id domain.JobID) (*uuid.UUID, error) {
	var workflowID uuid.UUID
	err := q.QueryRow(ctx, `SELECT workflow_id FROM job WHERE id = $1`, id.UUID()).Scan(&workflowID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, Classify(fmt.Sprintf("failed to read workflow id for %q from job", id), err)
	}
	return &workflowID, nil
}
