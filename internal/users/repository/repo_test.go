package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gigflow/gigflow-backend/internal/users/domain"
)

var userCols = []string{
	"id", "username", "email", "password_hash", "first_name", "last_name", "user_type",
	"category_id", "phone_number", "resume", "is_staff", "created_at", "updated_at",
}

func newMock(t *testing.T) (*UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserRepository(db), mock
}

func TestGetByID(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT id, username, email .* FROM users WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(7, "alice", "a@example.com", "hash", "Alice", "", "employer", 3, nil, nil, true, now, now))

	u, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	require.NotNil(t, u.UserType)
	assert.Equal(t, "employer", *u.UserType)
	require.NotNil(t, u.CategoryID)
	assert.Equal(t, int64(3), *u.CategoryID)
	assert.Nil(t, u.PhoneNumber)
	assert.True(t, u.IsStaff)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`FROM users WHERE id = \$1`).
		WithArgs(int64(9)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 9)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByUsername(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(`FROM users WHERE username = \$1`).
		WithArgs("bob").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(2, "bob", "b@example.com", "hash", "", "", nil, nil, "0123456789", nil, false, now, now))

	u, err := repo.GetByUsername(context.Background(), "bob")
	require.NoError(t, err)
	assert.Nil(t, u.UserType)
	require.NotNil(t, u.PhoneNumber)
	assert.Equal(t, "0123456789", *u.PhoneNumber)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()
	userType := "freelancer"
	u := &domain.User{Username: "carol", Email: "c@example.com", PasswordHash: "hash", UserType: &userType}

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("carol", "c@example.com", "hash", "", "", &userType, nil, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "is_staff", "created_at", "updated_at"}).
			AddRow(11, false, now, now))

	require.NoError(t, repo.Create(context.Background(), u))
	assert.Equal(t, int64(11), u.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_ConstraintViolations(t *testing.T) {
	cases := []struct {
		name  string
		err   error
		field string
	}{
		{"duplicate username", &pq.Error{Code: "23505", Constraint: "users_username_key"}, "username"},
		{"duplicate phone", &pq.Error{Code: "23505", Constraint: "users_phone_number_key"}, "phone_number"},
		{"unknown category", &pq.Error{Code: "23503", Constraint: "users_category_id_fkey"}, "category"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock := newMock(t)
			mock.ExpectQuery(`INSERT INTO users`).WillReturnError(tc.err)

			err := repo.Create(context.Background(), &domain.User{Username: "dup"})
			var fe *domain.FieldError
			require.True(t, errors.As(err, &fe), "got %v", err)
			assert.Equal(t, tc.field, fe.Field)
		})
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`UPDATE users`).WillReturnError(sql.ErrNoRows)

	err := repo.Update(context.Background(), &domain.User{ID: 5})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), 3))
	assert.ErrorIs(t, repo.Delete(context.Background(), 4), domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
