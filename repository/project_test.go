package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kotosiro/controller/domain"
)

func newProject(t *testing.T) domain.Project {
	t.Helper()
	id := domain.ProjectIDFromUUID(uuid.New())
	name, err := domain.NewProjectName("billing")
	require.NoError(t, err)
	desc, err := domain.NewDescription("")
	require.NoError(t, err)
	p, err := domain.NewProject(id, name, desc, domain.EmptyConfig())
	require.NoError(t, err)
	return p
}

func TestProjectRepositoryCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	p := newProject(t)
	mock.ExpectExec("INSERT INTO project").
		WithArgs(p.ID().UUID(), p.Name().String(), p.Description().String(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := NewProjectRepository()
	require.NoError(t, repo.Create(context.Background(), mock, p))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepositoryGetByIDNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := domain.ProjectIDFromUUID(uuid.New())
	mock.ExpectQuery("SELECT id, name, description").
		WithArgs(id.UUID()).
		WillReturnError(pgx.ErrNoRows)

	repo := NewProjectRepository()
	row, err := repo.GetByID(context.Background(), mock, id)
	require.NoError(t, err)
	assert.Nil(t, row)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepositoryGetByIDFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	p := newProject(t)
	now := time.Now().UTC()
	cols := []string{"id", "name", "description", "config", "created_at", "updated_at"}
	mock.ExpectQuery("SELECT id, name, description").
		WithArgs(p.ID().UUID()).
		WillReturnRows(pgxmock.NewRows(cols).AddRow(
			p.ID().UUID(), p.Name().String(), p.Description().String(), []byte(`{}`), now, now,
		))

	repo := NewProjectRepository()
	row, err := repo.GetByID(context.Background(), mock, p.ID())
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, p.Name().String(), row.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}
