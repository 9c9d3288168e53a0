package strava

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrMissingCode is returned when the OAuth callback carries no authorization code.
var ErrMissingCode = errors.New("missing code param")

// UpstreamAuthError means the token endpoint refused or failed the code exchange.
// Codes are single-use, so callers must not retry.
type UpstreamAuthError struct {
	StatusCode int
	Err        error
}

func (e *UpstreamAuthError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("strava token exchange failed with status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("strava token exchange failed: %v", e.Err)
}

func (e *UpstreamAuthError) Unwrap() error { return e.Err }

// UpstreamFetchError means the activities endpoint did not answer successfully.
type UpstreamFetchError struct {
	StatusCode int
	Err        error
}

func (e *UpstreamFetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("strava activities request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("strava activities request failed: %v", e.Err)
}

func (e *UpstreamFetchError) Unwrap() error { return e.Err }

// MalformedResponseError means Strava answered 2xx with a payload we cannot use.
type MalformedResponseError struct {
	Operation string
	Reason    string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed strava %s response: %s", e.Operation, e.Reason)
}

// IsUpstream reports whether err originated from the Strava API.
func IsUpstream(err error) bool {
	var authErr *UpstreamAuthError
	var fetchErr *UpstreamFetchError
	var malformed *MalformedResponseError
	return errors.As(err, &authErr) || errors.As(err, &fetchErr) || errors.As(err, &malformed)
}
