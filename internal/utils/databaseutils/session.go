package databaseutils

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
)

type txKey struct {
}

// SQLExecutor defines the common methods implemented by both *sqlx.DB and *sqlx.Tx.
// This allows repository methods to work seamlessly with either a direct DB connection
// or an active transaction.
type SQLExecutor interface {
	sqlx.ExtContext
}

// Session defines the contract for transaction management.
type Session interface {
	// DoTransactionally executes fn within a transaction carried by the context passed to fn.
	// The transaction is committed if fn returns nil, otherwise it's rolled back.
	// When ctx already carries a transaction, fn joins it and the outer call decides the outcome.
	DoTransactionally(ctx context.Context, opts *sql.TxOptions, fn func(txCtx context.Context) error) error
}

type sqlSession struct {
	db  *sqlx.DB
	log *slog.Logger
}

// NewSession creates a new Session wrapping the provided pool.
func NewSession(db *sqlx.DB, log *slog.Logger) Session {
	return &sqlSession{
		db:  db,
		log: log,
	}
}

func (s *sqlSession) DoTransactionally(ctx context.Context, opts *sql.TxOptions, fn func(txCtx context.Context) error) (err error) {
	if _, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return fn(ctx)
	}

	tx, err := s.db.BeginTxx(ctx, opts)
	if err != nil {
		return fmt.Errorf("session: failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}

		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				s.log.Error("session: failed to rollback transaction",
					slog.String("rollback_error", rollbackErr.Error()),
					slog.String("error", err.Error()))
			}
			return
		}

		if commitErr := tx.Commit(); commitErr != nil {
			err = fmt.Errorf("session: failed to commit transaction: %w", commitErr)
		}
	}()

	err = fn(context.WithValue(ctx, txKey{}, tx))
	return err
}

// GetSQLExecutor returns the transaction stored in ctx, or fallbackDB when there is none.
func GetSQLExecutor(ctx context.Context, fallbackDB *sqlx.DB) SQLExecutor {
	dbExecutor := ctx.Value(txKey{})
	if dbExecutor == nil {
		return fallbackDB
	}

	tx, ok := dbExecutor.(*sqlx.Tx)
	if !ok {
		panic(fmt.Sprintf("session: value in context for txKey is not a *sqlx.Tx, but %T", dbExecutor))
	}
	return tx
}

func DoTransactionally[T any](ctx context.Context, session Session, opts *sql.TxOptions, fn func(txCtx context.Context) (T, error)) (T, error) {
	var zero T
	var result T
	err := session.DoTransactionally(ctx, opts, func(txCtx context.Context) error {
		r, err := fn(txCtx)
		result = r
		return err
	})
	if err != nil {
		return zero, err
	}
	return result, nil
}
