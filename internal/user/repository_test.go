package user

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() {
		sqlxDB.Close()
	}

	return repo, mock, closer
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "created_at"}).
		AddRow(1, "Ana", "ana@example.com", "hashed", RoleMember, time.Now())
}

func TestRepositoryCreate(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("Ana", "ana@example.com", "hashed", RoleMember).
		WillReturnRows(userRows())

	u, err := repo.Create(context.Background(), "Ana", "ana@example.com", "hashed", RoleMember)

	require.NoError(t, err)
	assert.Equal(t, 1, u.ID)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByEmail(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("ana@example.com").
		WillReturnRows(userRows())

	u, err := repo.FindByEmail(context.Background(), "ana@example.com")

	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)
}

func TestFindByEmail_NotFound(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "created_at"}))

	u, err := repo.FindByEmail(context.Background(), "ghost@example.com")

	assert.Error(t, err)
	assert.Nil(t, u)
}

func TestEmailExists(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("ana@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.EmailExists(context.Background(), "ana@example.com")

	require.NoError(t, err)
	assert.True(t, exists)
}
