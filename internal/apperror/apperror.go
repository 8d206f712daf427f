// Package apperror holds the domain error taxonomy shared by request parsing and the core.
package apperror

import (
	"errors"
	"net/http"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/ncnews/internal/utils/collectionutils"
)

type Kind string

const (
	KindBadRequest Kind = "INVALID_INPUT"
	KindNotFound   Kind = "NOT_FOUND"
	KindConflict   Kind = "DUPLICATE"
)

// Messages shared across packages.
const (
	MsgInvalidQueryParameter = "invalid query parameter"
	MsgInvalidSortBy         = "invalid sort_by column"
	MsgInvalidOrder          = "invalid order value"
	MsgInvalidInput          = "invalid input"
	MsgMissingFields         = "missing required fields"
)

type Error struct {
	Kind    Kind
	Message string
	Details map[string]string
	Origin  error
}

func (e *Error) Error() string {
	if e.Origin != nil {
		return e.Message + ": " + e.Origin.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Origin
}

// New records a stack trace at the call site.
func New(kind Kind, message string) error {
	return xerrors.New(&Error{Kind: kind, Message: message})
}

func BadRequest(message string) error {
	return New(KindBadRequest, message)
}

func BadRequestWithDetails(message string, details map[string]string) error {
	return xerrors.New(&Error{Kind: KindBadRequest, Message: message, Details: details})
}

func NotFound(message string) error {
	return New(KindNotFound, message)
}

func Conflict(message string) error {
	return New(KindConflict, message)
}

// Wrap classifies a lower level error without losing it.
func Wrap(kind Kind, message string, origin error) error {
	return xerrors.New(&Error{Kind: kind, Message: message, Origin: origin})
}

func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func IsKind(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}

var statusByKind = map[Kind]int{
	KindBadRequest: http.StatusBadRequest,
	KindNotFound:   http.StatusNotFound,
	KindConflict:   http.StatusConflict,
}

// HTTPStatus maps a kind onto a status code. legacyConflict reports duplicates
// as 404, which is what older clients of the API were built against.
func HTTPStatus(kind Kind, legacyConflict bool) int {
	if kind == KindConflict && legacyConflict {
		return http.StatusNotFound
	}
	return collectionutils.GetOrDefault(statusByKind, kind, http.StatusInternalServerError)
}
