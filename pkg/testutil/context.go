// Package testutil provides common helpers for handler and integration tests.
package testutil

import (
	"net/http"
	"time"

	"riskengine/pkg/requestcontext"
)

// WithUserID adds an authenticated user to the request context, simulating
// what the auth middleware does for authenticated requests.
func WithUserID(req *http.Request, userID string) *http.Request {
	return req.WithContext(requestcontext.WithUserID(req.Context(), userID))
}

// WithRequestID adds a correlation ID to the request context.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}

// WithTime pins the request-scoped evaluation time, so tests get
// deterministic evaluated_at values without the middleware chain.
func WithTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}
