package main

import (
	"net/http"

	"github.com/siahsang/ncnews/internal/core"
)

func (app *application) listTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := app.core.ListTopics(r.Context())
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"topics": topics}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) createTopic(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Slug        string `json:"slug"`
		Description string `json:"description"`
	}
	if !app.decodeBody(w, r, &input) {
		return
	}

	topic, err := app.core.CreateTopic(r.Context(), core.NewTopic{
		Slug:        input.Slug,
		Description: input.Description,
	})
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, envelope{"topic": topic}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}
