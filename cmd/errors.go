package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/ncnews/internal/apperror"
	"github.com/siahsang/ncnews/internal/web"
)

type AppError struct {
	ErrorStack   error
	ErrorMessage string
	ErrorDetails map[string]string
}

// handleError writes the response for any error returned by the core. Domain errors
// keep their message; everything else becomes an opaque 500.
func (app *application) handleError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.As(err)
	if !ok {
		app.internalErrorResponse(w, r, err)
		return
	}

	status := apperror.HTTPStatus(appErr.Kind, app.config.Server.LegacyConflictStatus)
	app.errorResponse(w, r, status, &AppError{
		ErrorStack:   err,
		ErrorMessage: appErr.Message,
		ErrorDetails: appErr.Details,
	})
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, appError *AppError) {
	app.errorResponse(w, r, http.StatusBadRequest, appError)
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, &AppError{
		ErrorMessage: "Path not found",
	})
}

func (app *application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusMethodNotAllowed, &AppError{
		ErrorMessage: "Method not allowed",
	})
}

func (app *application) internalErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusInternalServerError, &AppError{
		ErrorStack:   err,
		ErrorMessage: "Internal server error",
	})
}

func (app *application) errorResponse(w http.ResponseWriter, r *http.Request, status int, appError *AppError) {
	body := envelope{"msg": appError.ErrorMessage}
	if len(appError.ErrorDetails) > 0 {
		body["details"] = appError.ErrorDetails
	}

	attrs := []slog.Attr{
		slog.Int("status", status),
		slog.String("request_id", web.RequestID(r)),
		slog.String("request_url", r.URL.String()),
		slog.String("request_method", r.Method),
	}

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
		if appError.ErrorStack != nil {
			attrs = append(attrs, slog.String("stack", xerrors.Sprint(appError.ErrorStack)))
		}
	} else if appError.ErrorStack != nil {
		attrs = append(attrs, slog.String("error", appError.ErrorStack.Error()))
	}

	for key, valueData := range appError.ErrorDetails {
		attrs = append(attrs, slog.String(key, valueData))
	}

	app.logger.LogAttrs(r.Context(), level, appError.ErrorMessage, attrs...)

	if err := app.writeJSON(w, status, body, nil); err != nil {
		app.logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (app *application) writeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}

	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(js); err != nil {
		app.logger.Error(err.Error())
		return err
	}

	return nil
}
