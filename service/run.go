package service

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kotosiro/controller/domain"
	"github.com/kotosiro/controller/repository"
)

// RunService exposes run operations bound to a connection pool.
type RunService struct {
	pool *pgxpool.Pool
	repo repository.RunRepository
}

func NewRunService(pool *pgxpool.Pool) *RunService {
	return &RunService{pool: pool, repo: repository.NewRunRepository()}
}

func (s *RunService) Create(ctx context.Context, r domain.Run) error {
	return s.repo.Create(ctx, s.pool, r)
}

func (s *RunService) Delete(ctx context.Context, id domain.RunID) (int64, error) {
	return s.repo.Delete(ctx, s.pool, id)
}

func (s *RunService) GetByID(ctx context.Context, id domain.RunID) (*repository.RunRow, error) {
	return s.repo.GetByID(ctx, s.pool, id)
}
