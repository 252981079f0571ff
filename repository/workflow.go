package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/kotosiro/controller/domain"
)

// WorkflowRow is a workflow as read back from storage.
type WorkflowRow struct {
	ID          uuid.UUID
	Name        string
	ProjectID   uuid.UUID
	Description string
	Paused      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// WorkflowRepository persists and queries workflows.
type WorkflowRepository interface {
	Create(ctx context.Context, q Queryer, w domain.Workflow) error
	Delete(ctx context.Context, q Queryer, id domain.WorkflowID) (int64, error)
	GetByID(ctx context.Context, q Queryer, id domain.WorkflowID) (*WorkflowRow, error)
	// GetProjectID returns the owning project's id, used by the policy gate
	// to enrich workflow-scoped events that arrive without one.
	GetProjectID(ctx context.Context, q Queryer, id domain.WorkflowID) (*uuid.UUID, error)
}

type pgWorkflowRepository struct{}

// NewWorkflowRepository builds the Postgres-backed WorkflowRepository.
func NewWorkflowRepository() WorkflowRepository { return pgWorkflowRepository{} }

func (pgWorkflowRepository) Create(ctx context.Context, q Queryer, w domain.Workflow) error {
	_, err := q.Exec(ctx, `
		INSERT INTO workflow (id, name, project_id, description, paused)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET name = $2,
		    project_id = $3,
		    description = $4,
		    paused = $5`,
		w.ID().UUID(), w.Name().String(), w.ProjectID().UUID(), w.Description().String(), w.Paused().Bool())
	if err != nil {
		return Classify(fmt.Sprintf("failed to upsert %q into workflow", w.ID()), err)
	}
	return nil
}

func (pgWorkflowRepository) Delete(ctx context.Context, q Queryer, id domain.WorkflowID) (int64, error) {
	tag, err := q.Exec(ctx, `DELETE FROM workflow WHERE id = $1`, id.UUID())
	if err != nil {
		return 0, Classify(fmt.Sprintf("failed to delete %q from workflow", id), err)
	}
	return tag.RowsAffected(), nil
}

func (pgWorkflowRepository) GetByID(ctx context.Context, q Queryer, id domain.WorkflowID) (*WorkflowRow, error) {
	var r WorkflowRow
	err := q.QueryRow(ctx, `
		SELECT id, name, project_id, description, paused, created_at, updated_at
		FROM workflow
		WHERE id = $1`, id.UUID()).Scan(&r.ID, &r.Name, &r.ProjectID, &r.Description, &r.Paused, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, Classify(fmt.Sprintf("failed to select %q from workflow", id), err)
	}
	return &r, nil
}

func (pgWorkflowRepository) GetProjectID(ctx context.Context, q Queryer, id domain.WorkflowID) (*uuid.UUID, error) {
	var projectID uuid.UUID
	err := q.QueryRow(ctx, `SELECT project_id FROM workflow WHERE id = $1`, id.UUID()).Scan(&projectID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, Classify(fmt.Sprintf("failed to read project id for %q from workflow", id), err)
	}
	return &projectID, nil
}
