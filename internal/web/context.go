package web

import (
	"context"
	"net/http"
)

type contextKey string

const requestIDKey = contextKey("request_id")

func AddValueToContext(r *http.Request, key contextKey, value any) *http.Request {
	ctx := context.WithValue(r.Context(), key, value)
	return r.WithContext(ctx)
}

func GetValueFromContext[T any](r *http.Request, key contextKey) (T, bool) {
	val := r.Context().Value(key)
	if val == nil {
		var zero T
		return zero, false
	}
	tVal, ok := val.(T)

	if !ok {
		var zero T
		return zero, false
	}

	return tVal, true
}

func WithRequestID(r *http.Request, id string) *http.Request {
	return AddValueToContext(r, requestIDKey, id)
}

// RequestID returns the id assigned to r, or "" before the request id middleware ran.
func RequestID(r *http.Request) string {
	id, _ := GetValueFromContext[string](r, requestIDKey)
	return id
}
