package testutil

import (
	"net/http"

	"mcms/pkg/requestcontext"
)

// WithUserEmail marks the request as authenticated for email, the same way
// the auth middleware would.
func WithUserEmail(req *http.Request, email string) *http.Request {
	return req.WithContext(requestcontext.WithUserEmail(req.Context(), email))
}

// WithBearer sets the Authorization header.
func WithBearer(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}
