package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/ncnews/internal/apperror"
	"github.com/siahsang/ncnews/internal/core"
)

type envelope map[string]any

var errEmptyBody = xerrors.Message("body must not be empty")

func (app *application) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	const maxBytes = 1_048_576 // 1 MB
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {

		var (
			syntaxError           *json.SyntaxError
			unmarshalTypeError    *json.UnmarshalTypeError
			invalidUnmarshalError *json.InvalidUnmarshalError
			maxBytesError         *http.MaxBytesError
		)

		switch {
		case errors.As(err, &syntaxError):
			return xerrors.Newf("body contains badly-formed JSON at (character %d)", syntaxError.Offset)

		case errors.Is(err, io.ErrUnexpectedEOF):
			return xerrors.Newf("body contains badly-formed JSON")

		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return xerrors.Newf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return xerrors.Newf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)

		case errors.Is(err, io.EOF):
			return xerrors.New(errEmptyBody)

		case errors.As(err, &maxBytesError):
			return xerrors.Newf("body must not be larger than %d bytes", maxBytes)

		case errors.As(err, &invalidUnmarshalError):
			panic(err)

		default:
			return xerrors.Newf("error decoding JSON: %w", err)
		}
	}

	if err := decoder.Decode(&struct{}{}); err != nil && !errors.Is(err, io.EOF) {
		return xerrors.Newf("body must contain only a single JSON value")
	}

	return nil
}

// decodeBody reads the request body into dst and answers the request itself when the
// body is unusable. Every body this API accepts has required members, so an empty body
// is reported as missing fields.
func (app *application) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := app.readJSON(w, r, dst)
	if err == nil {
		return true
	}

	if errors.Is(err, errEmptyBody) {
		app.badRequestResponse(w, r, &AppError{ErrorStack: err, ErrorMessage: apperror.MsgMissingFields})
		return false
	}

	app.badRequestResponse(w, r, &AppError{
		ErrorStack:   err,
		ErrorMessage: apperror.MsgInvalidInput,
		ErrorDetails: map[string]string{"body": err.Error()},
	})
	return false
}

func (app *application) readIDParam(r *http.Request, name string) (int64, error) {
	params := httprouter.ParamsFromContext(r.Context())
	return core.ParseID(params.ByName(name))
}

func (app *application) readStringParam(r *http.Request, name string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(name)
}
