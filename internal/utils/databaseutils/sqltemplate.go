package databaseutils

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type SQLTemplate struct {
	DB      *sqlx.DB
	Timeout time.Duration
}

func NewSQLTemplate(db *sqlx.DB, timeout time.Duration) *SQLTemplate {
	return &SQLTemplate{
		DB:      db,
		Timeout: timeout,
	}
}

func (t *SQLTemplate) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if t.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, t.Timeout)
}

// ExecuteQuery runs a query and maps every row onto T. It never returns a nil slice
// so callers can serialize an empty result as [].
func ExecuteQuery[T any](sqlTemplate *SQLTemplate, ctx context.Context, query string, args ...any) ([]T, error) {
	ctx, cancel := sqlTemplate.withTimeout(ctx)
	defer cancel()

	results := []T{}
	if err := sqlx.SelectContext(ctx, GetSQLExecutor(ctx, sqlTemplate.DB), &results, query, args...); err != nil {
		return nil, err
	}

	return results, nil
}

// ExecuteSingleQuery maps exactly one row onto T and returns sql.ErrNoRows when there is none.
// T may be a struct with db tags or a scannable scalar.
func ExecuteSingleQuery[T any](sqlTemplate *SQLTemplate, ctx context.Context, query string, args ...any) (T, error) {
	ctx, cancel := sqlTemplate.withTimeout(ctx)
	defer cancel()

	var result T
	if err := sqlx.GetContext(ctx, GetSQLExecutor(ctx, sqlTemplate.DB), &result, query, args...); err != nil {
		var zero T
		return zero, err
	}

	return result, nil
}

// Execute runs a statement that returns no rows and reports how many rows it affected.
func Execute(sqlTemplate *SQLTemplate, ctx context.Context, query string, args ...any) (int64, error) {
	ctx, cancel := sqlTemplate.withTimeout(ctx)
	defer cancel()

	result, err := GetSQLExecutor(ctx, sqlTemplate.DB).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
