package core

import (
	"bytes"
	"encoding/json"

	"github.com/siahsang/ncnews/internal/apperror"
)

// ParseVoteDelta reads the inc_votes member of a request body. An absent or null
// member is a missing field; anything other than a JSON integer is invalid input.
func ParseVoteDelta(raw json.RawMessage) (int, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return 0, apperror.BadRequestWithDetails(apperror.MsgMissingFields, map[string]string{"inc_votes": "must be provided"})
	}

	var delta int
	if err := json.Unmarshal(trimmed, &delta); err != nil {
		return 0, apperror.Wrap(apperror.KindBadRequest, apperror.MsgInvalidInput, err)
	}
	return delta, nil
}
