package databaseutils

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockTemplate(t *testing.T) (*SQLTemplate, Session, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	db := sqlx.NewDb(mockDB, "postgres")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewSQLTemplate(db, time.Second), NewSession(db, logger), mock
}

func TestDoTransactionally_CommitsOnSuccess(t *testing.T) {
	template, session, mock := newMockTemplate(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM comments`).WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	affected, err := DoTransactionally(context.Background(), session, nil, func(txCtx context.Context) (int64, error) {
		return Execute(template, txCtx, `DELETE FROM comments WHERE article_id = $1`, int64(3))
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoTransactionally_RollsBackOnError(t *testing.T) {
	_, session, mock := newMockTemplate(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := session.DoTransactionally(context.Background(), nil, func(txCtx context.Context) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoTransactionally_NestedCallJoinsOuterTransaction(t *testing.T) {
	template, session, mock := newMockTemplate(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM comments`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM articles`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := session.DoTransactionally(context.Background(), nil, func(txCtx context.Context) error {
		if _, err := Execute(template, txCtx, `DELETE FROM comments WHERE article_id = $1`, 1); err != nil {
			return err
		}
		return session.DoTransactionally(txCtx, nil, func(inner context.Context) error {
			_, err := Execute(template, inner, `DELETE FROM articles WHERE article_id = $1`, 1)
			return err
		})
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteQuery_ReturnsEmptySliceWhenNoRows(t *testing.T) {
	template, _, mock := newMockTemplate(t)

	mock.ExpectQuery(`SELECT slug, description FROM topics`).
		WillReturnRows(sqlmock.NewRows([]string{"slug", "description"}))

	type topic struct {
		Slug        string `db:"slug"`
		Description string `db:"description"`
	}
	topics, err := ExecuteQuery[topic](template, context.Background(), `SELECT slug, description FROM topics`)

	require.NoError(t, err)
	assert.NotNil(t, topics)
	assert.Empty(t, topics)
}

func TestExecuteSingleQuery_NoRows(t *testing.T) {
	template, _, mock := newMockTemplate(t)

	mock.ExpectQuery(`SELECT name FROM users`).
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"name"}))

	_, err := ExecuteSingleQuery[string](template, context.Background(), `SELECT name FROM users WHERE username = $1`, "nobody")

	assert.ErrorIs(t, err, sql.ErrNoRows)
}
