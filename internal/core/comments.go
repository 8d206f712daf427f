package core

import (
	"context"
	"database/sql"
	"errors"

	"github.com/siahsang/ncnews/internal/apperror"
	"github.com/siahsang/ncnews/internal/filter"
	"github.com/siahsang/ncnews/internal/utils/databaseutils"
	"github.com/siahsang/ncnews/internal/validator"
	"github.com/siahsang/ncnews/models"
)

const commentColumns = `comment_id, body, article_id, author, votes, created_at`

type NewComment struct {
	Username string
	Body     string
}

func (c *Core) ListCommentsByArticle(ctx context.Context, articleID int64, p filter.Pagination) ([]models.Comment, error) {
	if err := c.Exists(ctx, Articles, articleID); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + commentColumns + `
		FROM comments
		WHERE article_id = $1
		ORDER BY created_at DESC, comment_id DESC
		LIMIT $2 OFFSET $3
	`

	comments, err := databaseutils.ExecuteQuery[models.Comment](c.sqlTemplate, ctx, query, articleID, p.Limit, p.Offset())
	if err != nil {
		return nil, storeError(err)
	}
	return comments, nil
}

// CreateComment validates the body first, so missing fields are a 400 even for an
// unknown article. It then checks the article before the user so a missing article
// is always the reported failure when both are absent.
func (c *Core) CreateComment(ctx context.Context, articleID int64, in NewComment) (*models.Comment, error) {
	v := validator.New()
	v.CheckNotBlank(in.Username, "username", "must be provided")
	v.CheckNotBlank(in.Body, "body", "must be provided")
	if !v.IsValid() {
		return nil, apperror.BadRequestWithDetails(apperror.MsgMissingFields, v.Errors)
	}

	if err := c.Exists(ctx, Articles, articleID); err != nil {
		return nil, err
	}
	if err := c.Exists(ctx, Users, in.Username); err != nil {
		return nil, err
	}

	insertSQL := `
		INSERT INTO comments (body, article_id, author)
		VALUES ($1, $2, $3)
		RETURNING ` + commentColumns

	comment, err := databaseutils.ExecuteSingleQuery[models.Comment](c.sqlTemplate, ctx, insertSQL, in.Body, articleID, in.Username)
	if err != nil {
		return nil, storeError(err)
	}

	c.log.Info("Comment created", "comment_id", comment.ID, "article_id", articleID, "author", comment.Author)
	return &comment, nil
}

func (c *Core) DeleteComment(ctx context.Context, id int64) error {
	if err := c.Exists(ctx, Comments, id); err != nil {
		return err
	}

	affected, err := databaseutils.Execute(c.sqlTemplate, ctx, `DELETE FROM comments WHERE comment_id = $1`, id)
	if err != nil {
		return storeError(err)
	}
	if affected == 0 {
		return apperror.NotFound("Comment not found")
	}
	return nil
}

func (c *Core) IncrementCommentVotes(ctx context.Context, id int64, delta int) (*models.Comment, error) {
	if err := c.Exists(ctx, Comments, id); err != nil {
		return nil, err
	}

	updateSQL := `
		UPDATE comments
		SET votes = votes + $1
		WHERE comment_id = $2
		RETURNING ` + commentColumns

	comment, err := databaseutils.ExecuteSingleQuery[models.Comment](c.sqlTemplate, ctx, updateSQL, delta, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("Comment not found")
		}
		return nil, storeError(err)
	}
	return &comment, nil
}

// DeleteCommentsForArticle removes every comment on the article and reports how many
// went. It joins the transaction carried by ctx, if any.
func (c *Core) DeleteCommentsForArticle(ctx context.Context, articleID int64) (int64, error) {
	affected, err := databaseutils.Execute(c.sqlTemplate, ctx, `DELETE FROM comments WHERE article_id = $1`, articleID)
	if err != nil {
		return 0, storeError(err)
	}
	return affected, nil
}
