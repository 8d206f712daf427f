package core

import (
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/siahsang/ncnews/internal/apperror"
	"github.com/siahsang/ncnews/internal/utils/databaseutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2020, 7, 9, 20, 11, 0, 0, time.UTC)

func newTestCore(t *testing.T) (*Core, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = mockDB.Close()
	})

	db := sqlx.NewDb(mockDB, "postgres")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewCore(db, logger, databaseutils.NewSQLTemplate(db, time.Second), databaseutils.NewSession(db, logger)), mock
}

func expectExists(mock sqlmock.Sqlmock, e Entity, value any, found bool) {
	mock.ExpectQuery(regexp.QuoteMeta(e.existsQuery())).
		WithArgs(value).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(found))
}

func requireAppError(t *testing.T, err error, kind apperror.Kind, message string) {
	t.Helper()
	appErr, ok := apperror.As(err)
	require.True(t, ok, "expected an application error, got %v", err)
	assert.Equal(t, kind, appErr.Kind)
	assert.Equal(t, message, appErr.Message)
}

var articleRowColumns = []string{"article_id", "title", "topic", "author", "body", "created_at", "votes", "article_img_url", "comment_count"}

func articleRow(id int64, votes, comments int) *sqlmock.Rows {
	return sqlmock.NewRows(articleRowColumns).
		AddRow(id, "Living in the shadow of a great man", "mitch", "butter_bridge", "I find this existence challenging", createdAt, votes, DefaultArticleImgURL, comments)
}

var commentRowColumns = []string{"comment_id", "body", "article_id", "author", "votes", "created_at"}
