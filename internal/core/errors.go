package core

import (
	"errors"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/ncnews/internal/apperror"
)

// Postgres error codes the API reports as client errors.
const (
	pqInvalidTextRepresentation = "22P02"
	pqInvalidRowCountInLimit    = "2201W"
	pqInvalidRowCountInOffset   = "2201X"
	pqNumericValueOutOfRange    = "22003"
	pqNotNullViolation          = "23502"
	pqForeignKeyViolation       = "23503"
	pqUniqueViolation           = "23505"
)

// storeError translates driver errors into the application taxonomy; anything it
// does not recognise stays an internal error with a stack trace.
func storeError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperror.As(err); ok {
		return err
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqInvalidTextRepresentation, pqInvalidRowCountInLimit, pqInvalidRowCountInOffset, pqNumericValueOutOfRange:
			return apperror.Wrap(apperror.KindBadRequest, apperror.MsgInvalidInput, err)
		case pqNotNullViolation:
			return apperror.Wrap(apperror.KindBadRequest, apperror.MsgMissingFields, err)
		case pqForeignKeyViolation:
			return apperror.Wrap(apperror.KindNotFound, "referenced resource not found", err)
		case pqUniqueViolation:
			return apperror.Wrap(apperror.KindConflict, "resource already exists", err)
		}
	}

	return xerrors.New(err)
}

// ParseID parses a path identifier. Anything that is not a base 10 integer is
// rejected before it reaches the store.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, apperror.Wrap(apperror.KindBadRequest, apperror.MsgInvalidInput, err)
	}
	return id, nil
}
