package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	app.handle(router, http.MethodGet, "/api", app.listEndpoints)

	app.handle(router, http.MethodGet, "/api/topics", app.listTopics)
	app.handle(router, http.MethodPost, "/api/topics", app.createTopic)

	app.handle(router, http.MethodGet, "/api/articles", app.listArticles)
	app.handle(router, http.MethodPost, "/api/articles", app.createArticle)
	app.handle(router, http.MethodGet, "/api/articles/:article_id", app.getArticle)
	app.handle(router, http.MethodPatch, "/api/articles/:article_id", app.updateArticleVotes)
	app.handle(router, http.MethodDelete, "/api/articles/:article_id", app.deleteArticle)
	app.handle(router, http.MethodGet, "/api/articles/:article_id/comments", app.listArticleComments)
	app.handle(router, http.MethodPost, "/api/articles/:article_id/comments", app.createArticleComment)

	app.handle(router, http.MethodPatch, "/api/comments/:comment_id", app.updateCommentVotes)
	app.handle(router, http.MethodDelete, "/api/comments/:comment_id", app.deleteComment)

	app.handle(router, http.MethodGet, "/api/users", app.listUsers)
	app.handle(router, http.MethodGet, "/api/users/:username", app.getUser)

	if app.config.Server.MetricsEnabled {
		router.Handler(http.MethodGet, "/metrics", app.metrics.handler())
	}

	return app.requestID(app.logRequest(app.recoverPanic(app.enableCORS(router))))
}

func (app *application) handle(router *httprouter.Router, method, path string, handler http.HandlerFunc) {
	router.Handler(method, path, app.metrics.instrument(path, handler))
}
