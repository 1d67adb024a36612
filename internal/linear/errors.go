package linear

import (
	"errors"
	"fmt"
	"strings"
)

// ErrProjectNotFound reports that the direct project lookup succeeded but
// the remote service knows no project under the given id or slug.
var ErrProjectNotFound = errors.New("project not found")

// AuthError reports a missing, invalid, or expired credential. Callers
// clear the credential vault when they see one.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "authentication failed"
}

func (e *AuthError) Unwrap() error { return e.Err }

// NetworkError reports a transport-level failure where no response was
// obtained, including timeouts.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// APIError reports an application-level error list returned by the remote
// service, either as GraphQL errors or a non-2xx HTTP response.
type APIError struct {
	Messages []string
}

func (e *APIError) Error() string {
	if len(e.Messages) == 0 {
		return "API error"
	}
	return "API error: " + strings.Join(e.Messages, "; ")
}
