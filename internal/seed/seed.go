// Package seed recreates the schema and loads a fixed data set.
package seed

import (
	"context"
	_ "embed"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/ncnews/internal/utils/databaseutils"
)

//go:embed schema.sql
var schemaSQL string

const (
	insertTopicsSQL   = `INSERT INTO topics (slug, description) VALUES (:slug, :description)`
	insertUsersSQL    = `INSERT INTO users (username, name, avatar_url) VALUES (:username, :name, :avatar_url)`
	insertArticlesSQL = `INSERT INTO articles (title, topic, author, body, created_at, votes, article_img_url) ` +
		`VALUES (:title, :topic, :author, :body, :created_at, :votes, :article_img_url)`
	insertCommentsSQL = `INSERT INTO comments (body, article_id, author, votes, created_at) ` +
		`VALUES (:body, :article_id, :author, :votes, :created_at)`
)

// Run drops and recreates every table, then inserts data, all in one transaction.
func Run(ctx context.Context, db *sqlx.DB, log *slog.Logger, data Data) error {
	session := databaseutils.NewSession(db, log)

	return session.DoTransactionally(ctx, nil, func(txCtx context.Context) error {
		exec := databaseutils.GetSQLExecutor(txCtx, db)

		if _, err := exec.ExecContext(txCtx, schemaSQL); err != nil {
			return xerrors.Newf("seed: creating schema: %w", err)
		}

		steps := []struct {
			table string
			query string
			rows  any
			count int
		}{
			{"topics", insertTopicsSQL, data.Topics, len(data.Topics)},
			{"users", insertUsersSQL, data.Users, len(data.Users)},
			{"articles", insertArticlesSQL, data.Articles, len(data.Articles)},
			{"comments", insertCommentsSQL, data.Comments, len(data.Comments)},
		}

		for _, step := range steps {
			if step.count == 0 {
				continue
			}
			if _, err := sqlx.NamedExecContext(txCtx, exec, step.query, step.rows); err != nil {
				return xerrors.Newf("seed: inserting %s: %w", step.table, err)
			}
			log.Info("Seeded table", "table", step.table, "rows", step.count)
		}

		return nil
	})
}
