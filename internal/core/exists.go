package core

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"github.com/siahsang/ncnews/internal/apperror"
	"github.com/siahsang/ncnews/internal/utils/databaseutils"
	"golang.org/x/sync/errgroup"
)

// Entity names the physical table and identifying column of a referenced row.
// Label is what error messages call it.
type Entity struct {
	Table string
	Key   string
	Label string
}

var (
	Topics   = Entity{Table: "topics", Key: "slug", Label: "Topic"}
	Users    = Entity{Table: "users", Key: "username", Label: "Username"}
	Articles = Entity{Table: "articles", Key: "article_id", Label: "Article"}
	Comments = Entity{Table: "comments", Key: "comment_id", Label: "Comment"}
)

// Named returns the same entity reported under a different label, e.g. a user
// referenced as an article's author.
func (e Entity) Named(label string) Entity {
	e.Label = label
	return e
}

func (e Entity) existsQuery() string {
	return fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, pq.QuoteIdentifier(e.Table), pq.QuoteIdentifier(e.Key))
}

// Exists fails with NotFound when no row of e is identified by value.
func (c *Core) Exists(ctx context.Context, e Entity, value any) error {
	found, err := c.lookup(ctx, e, value)
	if err != nil {
		return err
	}
	if !found {
		return apperror.NotFound(e.Label + " not found")
	}
	return nil
}

// NotExists fails with Conflict when a row of e is already identified by value.
func (c *Core) NotExists(ctx context.Context, e Entity, value any) error {
	found, err := c.lookup(ctx, e, value)
	if err != nil {
		return err
	}
	if found {
		return apperror.Conflict(e.Label + " already exists")
	}
	return nil
}

func (c *Core) lookup(ctx context.Context, e Entity, value any) (bool, error) {
	found, err := databaseutils.ExecuteSingleQuery[bool](c.sqlTemplate, ctx, e.existsQuery(), value)
	if err != nil {
		return false, storeError(err)
	}
	return found, nil
}

type check func(ctx context.Context) error

func (c *Core) existsCheck(e Entity, value any) check {
	return func(ctx context.Context) error {
		return c.Exists(ctx, e, value)
	}
}

// checkAll runs independent checks concurrently and reports the failure of the
// earliest check in argument order, so the outcome does not depend on timing.
func (c *Core) checkAll(ctx context.Context, checks ...check) error {
	errs := make([]error, len(checks))

	var g errgroup.Group
	for i, chk := range checks {
		i, chk := i, chk
		g.Go(func() error {
			errs[i] = chk(ctx)
			return nil
		})
	}
	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
