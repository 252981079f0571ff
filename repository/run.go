package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/kotosiro/controller/domain"
)

// RunRow is a run as read back from storage.
type RunRow struct {
	ID          uuid.UUID
	State       string
	Priority    string
	JobID       uuid.UUID
	TriggeredAt time.Time
	StartedAt   *time.Time
	FinishedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RunRepository persists and queries runs. Runs are created with no started
// or finished timestamp; the runner process fills those in as execution
// progresses, which is outside this repository's scope.
type RunRepository interface {
	Create(ctx context.Context, q Queryer, r domain.Run) error
	Delete(ctx context.Context, q Queryer, id domain.RunID) (int64, error)
	GetByID(ctx context.Context, q Queryer, id domain.RunID) (*RunRow, error)
}

type pgRunRepository struct{}

// NewRunRepository builds the Postgres-backed RunRepository.
func NewRunRepository() RunRepository { return pgRunRepository{} }

func (pgRunRepository) Create(ctx context.Context, q Queryer, r domain.Run) error {
	_, err := q.Exec(ctx, `
		INSERT INTO run (id, state, priority, job_id, triggered_at, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, NULL, NULL)`,
		r.ID().UUID(), r.State().String(), r.Priority().String(), r.JobID().UUID(), r.TriggeredAt())
	if err != nil {
		return Classify(fmt.Sprintf("failed to insert %q into run", r.ID()), err)
	}
	return nil
}

func (pgRunRepository) Delete(ctx context.Context, q Queryer, id domain.RunID) (int64, error) {
	tag, err := q.Exec(ctx, `DELETE FROM run WHERE id = $1`, id.UUID())
	if err != nil {
		return 0, Classify(fmt.Sprintf("failed to delete %q from run", id), err)
	}
	return tag.RowsAffected(), nil
}

func (pgRunRepository) GetByID(ctx context.Context, q Queryer, id domain.RunID) (*RunRow, error) {
	var r RunRow
	err := q.QueryRow(ctx, `
		SELECT id, state, priority, job_id, triggered_at, started_at, finished_at, created_at, updated_at
		FROM run
		WHERE id = $1`, id.UUID()).Scan(&r.ID, &r.State, &r.Priority, &r.JobID, &r.TriggeredAt, &r.StartedAt, &r.FinishedAt, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, Classify(fmt.Sprintf("failed to select %q from run", id), err)
	}
	return &r, nil
}
