package nova

import (
	"errors"
	"fmt"
)

// Common errors returned by the nova client.
var (
	// ErrNoSession indicates the API reported that the request carried no
	// session field at all. AuthorizedRequest always sets one, so seeing
	// this means the request was built without a session on purpose or by
	// mistake; it is never retried.
	ErrNoSession = errors.New("request carried no session key")

	// ErrInvalidSession indicates the API did not recognize the session
	// key, typically because it expired server-side. AuthorizedRequest
	// recovers from this once per send by forcing a fresh login.
	ErrInvalidSession = errors.New("session key is invalid or expired")

	// ErrMalformedResponse indicates the API response body could not be
	// decoded as JSON.
	ErrMalformedResponse = errors.New("malformed response from astrometry API")
)

// Error message markers used by the API to report session problems.
const (
	noSessionMessage            = `no "session" in JSON.`
	invalidSessionMessagePrefix = "no session with key"
)

// APIError represents any API-reported error that is not a session
// problem. The message is the API's errormessage verbatim.
type APIError struct {
	Message string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("astrometry API error: %s", e.Message)
}

// LoginError indicates a login attempt was rejected by the API. It
// carries the raw decoded response for diagnostics.
type LoginError struct {
	Response Response
}

// Error implements the error interface
func (e *LoginError) Error() string {
	return fmt.Sprintf("astrometry login failed: %v", e.Response)
}
