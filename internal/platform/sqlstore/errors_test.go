package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/phrazzld/kanban-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	plain := errors.New("connection reset")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", sql.ErrNoRows, store.ErrNotFound},
		{"pgx unique", &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}, store.ErrDuplicate},
		{"pgx check", &pgconn.PgError{Code: "23514", ConstraintName: "tasks_status_check"}, store.ErrInvalidEntity},
		{"pgx not null", &pgconn.PgError{Code: "23502", ColumnName: "title"}, store.ErrInvalidEntity},
		{"pq unique", &pq.Error{Code: "23505"}, store.ErrDuplicate},
		{"wrapped pq unique", fmt.Errorf("insert: %w", &pq.Error{Code: "23505"}), store.ErrDuplicate},
		{
			"sqlite unique",
			sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique},
			store.ErrDuplicate,
		},
		{
			"sqlite check",
			sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintCheck},
			store.ErrInvalidEntity,
		},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, MapError(tt.err), tt.want)
		})
	}

	assert.Nil(t, MapError(nil))
	assert.Same(t, plain, MapError(plain), "unmapped errors pass through")
	pgOther := &pgconn.PgError{Code: "40001"}
	assert.Equal(t, error(pgOther), MapError(pgOther))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	assert.NoError(t, CheckRowsAffected(sqlmock.NewResult(0, 1), store.ErrTaskNotFound))
	assert.ErrorIs(t, CheckRowsAffected(sqlmock.NewResult(0, 0), store.ErrTaskNotFound), store.ErrTaskNotFound)

	err := CheckRowsAffected(sqlmock.NewErrorResult(errors.New("driver does not support")), store.ErrBoardNotFound)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, store.ErrBoardNotFound)

	assert.Error(t, CheckRowsAffected(nil, store.ErrBoardNotFound))
}
