package main

import (
	"net/http"
)

func (app *application) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := app.core.ListUsers(r.Context())
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"users": users}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := app.core.GetUserByUsername(r.Context(), app.readStringParam(r, "username"))
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"user": user}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}
