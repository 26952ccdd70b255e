package api

import (
	"errors"
	"fmt"
	"net/http"
)

// UpstreamError is a business-rule rejection reported by the marketplace
// API. Message carries the API's error string verbatim; pages surface it to
// the user without rewording. Transport failures are NOT UpstreamErrors;
// they come back as plain wrapped errors and are rendered as a generic,
// retryable failure instead.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("upstream request failed with status %d", e.StatusCode)
}

// AsUpstream unwraps an UpstreamError if err carries one
func AsUpstream(err error) (*UpstreamError, bool) {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

// IsAuthLoss reports whether the error means the token is no longer
// accepted upstream. Pages redirect to a public view on auth loss instead of
// leaving the user on a broken privileged one.
func IsAuthLoss(err error) bool {
	ue, ok := AsUpstream(err)
	return ok && ue.StatusCode == http.StatusUnauthorized
}

// IsNotFound reports whether the upstream rejected the request with a 404
func IsNotFound(err error) bool {
	ue, ok := AsUpstream(err)
	return ok && ue.StatusCode == http.StatusNotFound
}
