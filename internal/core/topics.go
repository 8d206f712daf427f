package core

import (
	"context"

	"github.com/siahsang/ncnews/internal/apperror"
	"github.com/siahsang/ncnews/internal/utils/databaseutils"
	"github.com/siahsang/ncnews/internal/validator"
	"github.com/siahsang/ncnews/models"
)

func (c *Core) ListTopics(ctx context.Context) ([]models.Topic, error) {
	topics, err := databaseutils.ExecuteQuery[models.Topic](c.sqlTemplate, ctx, `SELECT slug, description FROM topics ORDER BY slug`)
	if err != nil {
		return nil, storeError(err)
	}
	return topics, nil
}

type NewTopic struct {
	Slug        string
	Description string
}

func (c *Core) CreateTopic(ctx context.Context, in NewTopic) (*models.Topic, error) {
	v := validator.New()
	v.CheckNotBlank(in.Slug, "slug", "must be provided")
	v.CheckNotBlank(in.Description, "description", "must be provided")
	if !v.IsValid() {
		return nil, apperror.BadRequestWithDetails(apperror.MsgMissingFields, v.Errors)
	}

	if err := c.NotExists(ctx, Topics, in.Slug); err != nil {
		return nil, err
	}

	insertSQL := `
		INSERT INTO topics (slug, description)
		VALUES ($1, $2)
		RETURNING slug, description
	`

	topic, err := databaseutils.ExecuteSingleQuery[models.Topic](c.sqlTemplate, ctx, insertSQL, in.Slug, in.Description)
	if err != nil {
		err = storeError(err)
		if apperror.IsKind(err, apperror.KindConflict) {
			// lost a race with a concurrent insert of the same slug
			return nil, apperror.Conflict(Topics.Label + " already exists")
		}
		return nil, err
	}

	c.log.Info("Topic created", "slug", topic.Slug)
	return &topic, nil
}
