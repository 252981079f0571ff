package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kotosiro/controller/domain"
	"github.com/kotosiro/controller/repository"
)

// WorkflowService exposes workflow operations bound to a connection pool.
type WorkflowService struct {
	pool *pgxpool.Pool
	repo repository.WorkflowRepository
}

func NewWorkflowService(pool *pgxpool.Pool) *WorkflowService {
	return &WorkflowService{pool: pool, repo: repository.NewWorkflowRepository()}
}

func (s *WorkflowService) Create(ctx context.Context, w domain.Workflow) error {
	return s.repo.Create(ctx, s.pool, w)
}

func (s *WorkflowService) Delete(ctx context.Context, id domain.WorkflowID) (int64, error) {
	return s.repo.Delete(ctx, s.pool, id)
}

func (s *WorkflowService) GetByID(ctx context.Context, id domain.WorkflowID) (*repository.WorkflowRow, error) {
	return s.repo.GetByID(ctx, s.pool, id)
}

func (s *WorkflowService) GetProjectID(ctx context.Context, id domain.WorkflowID) (*uuid.UUID, error) {
	return s.repo.GetProjectID(ctx, s.pool, id)
}
