package testutil

import (
	"net/http"
	"time"

	"docflow/pkg/requestcontext"
)

// WithRequestTime pins the request-scoped clock, as the RequestTime
// middleware would.
func WithRequestTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}

// WithRequestID tags the request context with id.
func WithRequestID(req *http.Request, id string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), id))
}
