package main

import (
	"encoding/json"
	"net/http"

	"github.com/siahsang/ncnews/internal/core"
	"github.com/siahsang/ncnews/internal/filter"
)

func (app *application) listArticles(w http.ResponseWriter, r *http.Request) {
	articleFilter, err := filter.NewArticleFilter(r.URL.Query())
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	page, err := app.core.ListArticles(r.Context(), articleFilter)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	response := envelope{
		"articles":    page.Articles,
		"total_count": page.TotalCount,
	}
	if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) createArticle(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Title         string `json:"title"`
		Topic         string `json:"topic"`
		Author        string `json:"author"`
		Body          string `json:"body"`
		ArticleImgURL string `json:"article_img_url"`
	}

	if !app.decodeBody(w, r, &input) {
		return
	}

	article, err := app.core.CreateArticle(r.Context(), core.NewArticle{
		Title:         input.Title,
		Topic:         input.Topic,
		Author:        input.Author,
		Body:          input.Body,
		ArticleImgURL: input.ArticleImgURL,
	})
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, envelope{"article": article}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) getArticle(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "article_id")
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	article, err := app.core.GetArticle(r.Context(), id)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"article": article}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) updateArticleVotes(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "article_id")
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	var input struct {
		IncVotes json.RawMessage `json:"inc_votes"`
	}
	if !app.decodeBody(w, r, &input) {
		return
	}

	delta, err := core.ParseVoteDelta(input.IncVotes)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	article, err := app.core.IncrementArticleVotes(r.Context(), id, delta)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, envelope{"article": article}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) deleteArticle(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "article_id")
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	if err := app.core.DeleteArticle(r.Context(), id); err != nil {
		app.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *application) listArticleComments(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "article_id")
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	pagination, err := filter.NewCommentPagination(r.URL.Query())
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	comments, err := app.core.ListCommentsByArticle(r.Context(), id, pagination)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"comments": comments}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) createArticleComment(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "article_id")
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	var input struct {
		Username string `json:"username"`
		Body     string `json:"body"`
	}
	if !app.decodeBody(w, r, &input) {
		return
	}

	comment, err := app.core.CreateComment(r.Context(), id, core.NewComment{
		Username: input.Username,
		Body:     input.Body,
	})
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, envelope{"comment": comment}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}
