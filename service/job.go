package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kotosiro/controller/domain"
	"github.com/kotosiro/controller/repository"
)

// JobService exposes job operations bound to a connection pool.
type JobService struct {
	pool *pgxpool.Pool
	repo repository.JobRepository
}

func NewJobService(pool *pgxpool.Pool) *JobService {
	return &JobService{pool: pool, repo: repository.NewJobRepository()}
}

func (s *JobService) Create(ctx context.Context, j domain.Job) error {
	return s.repo.Create(ctx, s.pool, j)
}

func (s *JobService) Delete(ctx context.Context, id domain.JobID) (int64, error) {
	return s.repo.Delete(ctx, s.pool, id)
}

func (s *JobService) GetByID(ctx context.Context, id domain.JobID) (*repository.JobRow, error) {
	return s.repo.GetByID(ctx, s.pool, id)
}

func (s *JobService) GetWorkflowID(ctx context.Context, id domain.JobID) (*uuid.UUID, error) {
	return s.repo.GetWorkflowID(ctx, s.pool, id)
}
