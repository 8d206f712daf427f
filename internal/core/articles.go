package core

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/siahsang/ncnews/internal/apperror"
	"github.com/siahsang/ncnews/internal/filter"
	"github.com/siahsang/ncnews/internal/utils/databaseutils"
	"github.com/siahsang/ncnews/internal/validator"
	"github.com/siahsang/ncnews/models"
)

const DefaultArticleImgURL = "https://images.pexels.com/photos/97050/pexels-photo-97050.jpeg?w=700&h=700"

// sortExpressions maps every sortable column onto the expression used in ORDER BY.
// Only these strings are ever interpolated into listing SQL.
var sortExpressions = map[string]string{
	"created_at":      "a.created_at",
	"author":          "a.author",
	"title":           "a.title",
	"article_id":      "a.article_id",
	"topic":           "a.topic",
	"votes":           "a.votes",
	"article_img_url": "a.article_img_url",
	"comment_count":   "comment_count",
}

var sortDirections = map[filter.Order]string{
	filter.OrderAsc:  "ASC",
	filter.OrderDesc: "DESC",
}

// The count and the page are read from one snapshot.
var snapshotRead = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

const articleColumns = `a.article_id, a.title, a.topic, a.author, a.created_at, a.votes, a.article_img_url`

const selectArticleByIDSQL = `SELECT ` + articleColumns + `, a.body, COUNT(c.comment_id)::INT AS comment_count ` +
	`FROM articles a LEFT JOIN comments c ON c.article_id = a.article_id ` +
	`WHERE a.article_id = $1 GROUP BY a.article_id`

const returningArticle = `RETURNING article_id, title, topic, author, body, created_at, votes, article_img_url, ` +
	`(SELECT COUNT(*) FROM comments c WHERE c.article_id = articles.article_id)::INT AS comment_count`

type ArticlePage struct {
	Articles   []models.Article
	TotalCount int
}

type articleListQuery struct {
	CountSQL  string
	CountArgs []any
	PageSQL   string
	PageArgs  []any
}

// buildArticleListQuery renders the count and page statements for f. User input only
// ever reaches the statements as bind parameters.
func buildArticleListQuery(f filter.ArticleFilter) (articleListQuery, error) {
	sortExpr, ok := sortExpressions[f.SortBy]
	if !ok {
		return articleListQuery{}, apperror.BadRequest(apperror.MsgInvalidSortBy)
	}
	direction, ok := sortDirections[f.Order]
	if !ok {
		return articleListQuery{}, apperror.BadRequest(apperror.MsgInvalidOrder)
	}

	var (
		args       []any
		conditions []string
	)
	nextArg := func(value any) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Topic != "" {
		conditions = append(conditions, "a.topic = "+nextArg(f.Topic))
	}
	if f.Author != "" {
		conditions = append(conditions, "a.author = "+nextArg(f.Author))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	q := articleListQuery{
		CountSQL:  "SELECT COUNT(*)::INT FROM articles a" + where,
		CountArgs: append([]any(nil), args...),
	}

	limit := nextArg(f.Limit)
	offset := nextArg(f.Offset())
	q.PageSQL = "SELECT " + articleColumns + ", COUNT(c.comment_id)::INT AS comment_count " +
		"FROM articles a LEFT JOIN comments c ON c.article_id = a.article_id" + where +
		" GROUP BY a.article_id" +
		fmt.Sprintf(" ORDER BY %s %s, a.article_id ASC LIMIT %s OFFSET %s", sortExpr, direction, limit, offset)
	q.PageArgs = args

	return q, nil
}

// ListArticles returns one page of articles matching f together with the size of the
// whole filtered population. Referenced topic and author must exist.
func (c *Core) ListArticles(ctx context.Context, f filter.ArticleFilter) (*ArticlePage, error) {
	q, err := buildArticleListQuery(f)
	if err != nil {
		return nil, err
	}

	var checks []check
	if f.Topic != "" {
		checks = append(checks, c.existsCheck(Topics, f.Topic))
	}
	if f.Author != "" {
		checks = append(checks, c.existsCheck(Users.Named("Author"), f.Author))
	}
	if err := c.checkAll(ctx, checks...); err != nil {
		return nil, err
	}

	return databaseutils.DoTransactionally(ctx, c.session, snapshotRead, func(txCtx context.Context) (*ArticlePage, error) {
		total, err := databaseutils.ExecuteSingleQuery[int](c.sqlTemplate, txCtx, q.CountSQL, q.CountArgs...)
		if err != nil {
			return nil, storeError(err)
		}

		articles, err := databaseutils.ExecuteQuery[models.Article](c.sqlTemplate, txCtx, q.PageSQL, q.PageArgs...)
		if err != nil {
			return nil, storeError(err)
		}

		return &ArticlePage{Articles: articles, TotalCount: total}, nil
	})
}

func (c *Core) GetArticle(ctx context.Context, id int64) (*models.Article, error) {
	article, err := databaseutils.ExecuteSingleQuery[models.Article](c.sqlTemplate, ctx, selectArticleByIDSQL, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("Article not found")
		}
		return nil, storeError(err)
	}
	return &article, nil
}

type NewArticle struct {
	Title         string
	Topic         string
	Author        string
	Body          string
	ArticleImgURL string
}

func (in NewArticle) validate() error {
	v := validator.New()
	v.CheckNotBlank(in.Title, "title", "must be provided")
	v.CheckNotBlank(in.Topic, "topic", "must be provided")
	v.CheckNotBlank(in.Author, "author", "must be provided")
	v.CheckNotBlank(in.Body, "body", "must be provided")
	if !v.IsValid() {
		return apperror.BadRequestWithDetails(apperror.MsgMissingFields, v.Errors)
	}
	return nil
}

func (c *Core) CreateArticle(ctx context.Context, in NewArticle) (*models.Article, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	err := c.checkAll(ctx,
		c.existsCheck(Topics, in.Topic),
		c.existsCheck(Users.Named("Author"), in.Author),
	)
	if err != nil {
		return nil, err
	}

	imgURL := strings.TrimSpace(in.ArticleImgURL)
	if imgURL == "" {
		imgURL = DefaultArticleImgURL
	}

	const insertSQL = `INSERT INTO articles (title, topic, author, body, article_img_url) VALUES ($1, $2, $3, $4, $5) ` + returningArticle

	article, err := databaseutils.ExecuteSingleQuery[models.Article](c.sqlTemplate, ctx, insertSQL, in.Title, in.Topic, in.Author, in.Body, imgURL)
	if err != nil {
		return nil, storeError(err)
	}

	c.log.Info("Article created", "article_id", article.ID, "topic", article.Topic, "author", article.Author)
	return &article, nil
}

// IncrementArticleVotes adds delta to the article's votes in a single statement.
func (c *Core) IncrementArticleVotes(ctx context.Context, id int64, delta int) (*models.Article, error) {
	if err := c.Exists(ctx, Articles, id); err != nil {
		return nil, err
	}

	const updateSQL = `UPDATE articles SET votes = votes + $1 WHERE article_id = $2 ` + returningArticle

	article, err := databaseutils.ExecuteSingleQuery[models.Article](c.sqlTemplate, ctx, updateSQL, delta, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("Article not found")
		}
		return nil, storeError(err)
	}
	return &article, nil
}

// DeleteArticle removes the article and, first, its comments, in one transaction.
func (c *Core) DeleteArticle(ctx context.Context, id int64) error {
	if err := c.Exists(ctx, Articles, id); err != nil {
		return err
	}

	return c.session.DoTransactionally(ctx, nil, func(txCtx context.Context) error {
		removed, err := c.DeleteCommentsForArticle(txCtx, id)
		if err != nil {
			return err
		}

		affected, err := databaseutils.Execute(c.sqlTemplate, txCtx, `DELETE FROM articles WHERE article_id = $1`, id)
		if err != nil {
			return storeError(err)
		}
		if affected == 0 {
			return apperror.NotFound("Article not found")
		}

		c.log.Info("Article deleted", "article_id", id, "comments_removed", removed)
		return nil
	})
}
