package core

import (
	"context"
	"database/sql"
	"errors"

	"github.com/siahsang/ncnews/internal/apperror"
	"github.com/siahsang/ncnews/internal/utils/databaseutils"
	"github.com/siahsang/ncnews/models"
)

func (c *Core) ListUsers(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT username, name, COALESCE(avatar_url, '') AS avatar_url
		FROM users
		ORDER BY username
	`

	users, err := databaseutils.ExecuteQuery[models.User](c.sqlTemplate, ctx, query)
	if err != nil {
		return nil, storeError(err)
	}
	return users, nil
}

func (c *Core) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT username, name, COALESCE(avatar_url, '') AS avatar_url
		FROM users
		WHERE username = $1
	`

	user, err := databaseutils.ExecuteSingleQuery[models.User](c.sqlTemplate, ctx, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound(Users.Label + " not found")
		}
		return nil, storeError(err)
	}
	return &user, nil
}
