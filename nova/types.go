package nova

import (
	"fmt"
	"strings"
)

// Method represents the HTTP method used for an API request
type Method int

const (
	// MethodGet issues the request as an HTTP GET
	MethodGet Method = iota
	// MethodPost issues the request as an HTTP POST
	MethodPost
)

// ParseMethod converts a method name into a Method. Matching is
// case-insensitive; anything other than "get" or "post" is a
// configuration error.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(s) {
	case "get":
		return MethodGet, nil
	case "post":
		return MethodPost, nil
	default:
		return 0, fmt.Errorf("invalid request method %q: must be get or post", s)
	}
}

// String returns the HTTP verb for a Method
func (m Method) String() string {
	switch m {
	case MethodPost:
		return "POST"
	default:
		return "GET"
	}
}

// Wire-level constants of the nova API contract.
const (
	// payloadField is the single form field carrying the JSON payload
	payloadField = "request-json"
	// apiKeyField is the payload key carrying the account API key on login
	apiKeyField = "apikey"
	// sessionField is the payload key carrying the session key on
	// authorized requests
	sessionField = "session"

	statusSuccess = "success"
	statusError   = "error"
)

// Response is a decoded JSON response from the nova API. Every response
// carries at least a "status" field; error responses additionally carry
// an "errormessage".
type Response map[string]interface{}

// Status returns the value of the response's "status" field, or an empty
// string if absent.
func (r Response) Status() string {
	s, _ := r["status"].(string)
	return s
}

// Succeeded reports whether the response status is "success".
func (r Response) Succeeded() bool {
	return r.Status() == statusSuccess
}

// ErrorMessage returns the "errormessage" field of an error response.
func (r Response) ErrorMessage() string {
	s, _ := r["errormessage"].(string)
	return s
}

// SessionKey returns the "session" field of a login response.
func (r Response) SessionKey() string {
	s, _ := r[sessionField].(string)
	return s
}
