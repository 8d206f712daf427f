package main

import (
	"encoding/json"
	"net/http"

	"github.com/siahsang/ncnews/internal/core"
)

func (app *application) updateCommentVotes(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "comment_id")
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

	comment, err := app.core.IncrementCommentVotes(r.Context(), id, delta)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, envelope{"comment": comment}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) deleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "comment_id")
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	if err := app.core.DeleteComment(r.Context(), id); err != nil {
		app.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
