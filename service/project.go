// Package service delegates to the repository layer over a live pool,
// giving the HTTP handlers one call-surface per aggregate instead of
// threading a Queryer and a repository instance through every handler.
package service

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kotosiro/controller/domain"
	"github.com/kotosiro/controller/repository"
)

// ProjectService exposes project operations bound to a connection pool.
type ProjectService struct {
	pool *pgxpool.Pool
	repo repository.ProjectRepository
}

// NewProjectService builds a ProjectService over pool.
func NewProjectService(pool *pgxpool.Pool) *ProjectService {
	return &ProjectService{pool: pool, repo: repository.NewProjectRepository()}
}

func (s *ProjectService) Create(ctx context.Context, p domain.Project) error {
	return s.repo.Create(ctx, s.pool, p)
}

func (s *ProjectService) Delete(ctx context.Context, id domain.ProjectID) (int64, error) {
	return s.repo.Delete(ctx, s.pool, id)
}

func (s *ProjectService) List(ctx context.Context, limit int64) ([]repository.ProjectRow, error) {
	return s.repo.List(ctx, s.pool, limit)
}

func (s *ProjectService) GetByID(ctx context.Context, id domain.ProjectID) (*repository.ProjectRow, error) {
	return s.repo.GetByID(ctx, s.pool, id)
}

func (s *ProjectService) GetByName(ctx context.Context, name domain.Name) (*repository.ProjectRow, error) {
	return s.repo.GetByName(ctx, s.pool, name)
}

func (s *ProjectService) GetSummaryByID(ctx context.Context, id domain.ProjectID) (*repository.ProjectSummaryRow, error) {
	return s.repo.GetSummaryByID(ctx, s.pool, id)
}

func (s *ProjectService) GetConfigByID(ctx context.Context, id domain.ProjectID) (json.RawMessage, error) {
	return s.repo.GetConfigByID(ctx, s.pool, id)
}

func (s *ProjectService) ListWorkflowsByID(ctx context.Context, id domain.ProjectID, name, after *domain.Name, limit int64) ([]repository.WorkflowListRow, error) {
	return s.repo.ListWorkflowsByID(ctx, s.pool, id, name, after, limit)
}
