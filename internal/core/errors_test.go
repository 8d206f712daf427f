package core

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/siahsang/ncnews/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreError(t *testing.T) {
	tests := []struct {
		code    pq.ErrorCode
		kind    apperror.Kind
		message string
	}{
		{"22P02", apperror.KindBadRequest, apperror.MsgInvalidInput},
		{"2201W", apperror.KindBadRequest, apperror.MsgInvalidInput},
		{"2201X", apperror.KindBadRequest, apperror.MsgInvalidInput},
		{"22003", apperror.KindBadRequest, apperror.MsgInvalidInput},
		{"23502", apperror.KindBadRequest, apperror.MsgMissingFields},
		{"23503", apperror.KindNotFound, "referenced resource not found"},
		{"23505", apperror.KindConflict, "resource already exists"},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			origin := &pq.Error{Code: tt.code}
			err := storeError(origin)

			requireAppError(t, err, tt.kind, tt.message)
			assert.ErrorIs(t, err, origin)
		})
	}
}

func TestStoreError_UnknownCodeStaysInternal(t *testing.T) {
	err := storeError(&pq.Error{Code: "40001"})

	_, ok := apperror.As(err)
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestStoreError_PassesApplicationErrorsThrough(t *testing.T) {
	notFound := apperror.NotFound("Article not found")
	assert.Equal(t, notFound, storeError(notFound))
	assert.NoError(t, storeError(nil))
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	id, err = ParseID("-3")
	require.NoError(t, err)
	assert.Equal(t, int64(-3), id)

	for _, raw := range []string{"banana", "1.5", "", "99999999999999999999"} {
		_, err := ParseID(raw)
		requireAppError(t, err, apperror.KindBadRequest, apperror.MsgInvalidInput)
	}
}

func TestParseVoteDelta(t *testing.T) {
	delta, err := ParseVoteDelta(json.RawMessage(`-100`))
	require.NoError(t, err)
	assert.Equal(t, -100, delta)

	for _, raw := range []string{``, `null`, ` `} {
		_, err := ParseVoteDelta(json.RawMessage(raw))
		requireAppError(t, err, apperror.KindBadRequest, apperror.MsgMissingFields)
	}

	for _, raw := range []string{`"cat"`, `1.5`, `true`, `{}`} {
		_, err := ParseVoteDelta(json.RawMessage(raw))
		requireAppError(t, err, apperror.KindBadRequest, apperror.MsgInvalidInput)
	}
}

func TestErrorsIsThroughStoreError(t *testing.T) {
	boom := errors.New("boom")
	assert.ErrorIs(t, storeError(boom), boom)
}
