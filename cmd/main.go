package main

import (
	"log/slog"
	"os"

	"github.com/golang-cz/devslog"
	"github.com/jmoiron/sqlx"
	"github.com/siahsang/ncnews/internal/config"
	"github.com/siahsang/ncnews/internal/core"
	"github.com/siahsang/ncnews/internal/utils/databaseutils"
)

type application struct {
	config  *config.Config
	logger  *slog.Logger
	core    *core.Core
	metrics *metrics
}

func main() {
	Execute()
}

func newApplication(cfg *config.Config, logger *slog.Logger, db *sqlx.DB) *application {
	sqlTemplate := databaseutils.NewSQLTemplate(db, cfg.Database.QueryTimeout)
	session := databaseutils.NewSession(db, logger)

	return &application{
		config:  cfg,
		logger:  logger,
		core:    core.NewCore(db, logger, sqlTemplate, session),
		metrics: newMetrics(),
	}
}

func configLogger(debug bool) *slog.Logger {
	if !debug {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	handler := devslog.NewHandler(
		os.Stdout, &devslog.Options{
			HandlerOptions: &slog.HandlerOptions{
				AddSource: true,
				Level:     slog.LevelDebug,
			},
			NewLineAfterLog: false,
		})

	return slog.New(handler)
}
