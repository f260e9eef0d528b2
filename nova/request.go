package nova

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

// Request represents a single call to the nova API. A Request is built
// once, sent once with Send, and not reused.
//
// The data and settings mappings are combined and wrapped into the
// request-json form field; they are kept separate to allow general
// settings to be supplied independently of per-call data.
type Request struct {
	url        string
	method     Method
	data       map[string]interface{}
	settings   map[string]interface{}
	header     http.Header
	httpClient *http.Client
	logger     zerolog.Logger
}

// RequestOption configures a Request
type RequestOption func(*Request) error

// WithMethod sets the HTTP method by name ("get" or "post",
// case-insensitive). Invalid names fail request construction.
func WithMethod(method string) RequestOption {
	return func(r *Request) error {
		m, err := ParseMethod(method)
		if err != nil {
			return err
		}
		r.method = m
		return nil
	}
}

// WithData sets the per-call data mapping. The mapping is copied, so
// later changes by the caller do not affect the request.
func WithData(data map[string]interface{}) RequestOption {
	return func(r *Request) error {
		r.data = copyMap(data)
		return nil
	}
}

// WithSettings sets the general settings mapping. The mapping is copied,
// so later changes by the caller do not affect the request.
func WithSettings(settings map[string]interface{}) RequestOption {
	return func(r *Request) error {
		r.settings = copyMap(settings)
		return nil
	}
}

// WithHeader adds a header forwarded verbatim on the underlying HTTP call
func WithHeader(key, value string) RequestOption {
	return func(r *Request) error {
		r.header.Add(key, value)
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client for the request. The default
// is http.DefaultClient; this layer enforces no timeout of its own.
func WithHTTPClient(client *http.Client) RequestOption {
	return func(r *Request) error {
		r.httpClient = client
		return nil
	}
}

// WithLogger sets the logger used for request diagnostics
func WithLogger(logger zerolog.Logger) RequestOption {
	return func(r *Request) error {
		r.logger = logger
		return nil
	}
}

// NewRequest creates a Request targeting the given URL. The method
// defaults to GET.
func NewRequest(requestURL string, opts ...RequestOption) (*Request, error) {
	if requestURL == "" {
		return nil, fmt.Errorf("request URL is required")
	}

	r := &Request{
		url:        requestURL,
		method:     MethodGet,
		data:       map[string]interface{}{},
		settings:   map[string]interface{}{},
		header:     http.Header{},
		httpClient: http.DefaultClient,
		logger:     zerolog.Nop(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// NewPostRequest creates a Request whose method defaults to POST instead
// of GET. The method can still be overridden with WithMethod.
func NewPostRequest(requestURL string, opts ...RequestOption) (*Request, error) {
	return NewRequest(requestURL, append([]RequestOption{WithMethod("post")}, opts...)...)
}

// Send issues the HTTP call and returns the decoded response. API-reported
// errors are classified: ErrNoSession and ErrInvalidSession for session
// problems, *APIError for anything else. A body that fails to decode as
// JSON yields an error wrapping ErrMalformedResponse.
func (r *Request) Send(ctx context.Context) (Response, error) {
	payload, err := r.payload()
	if err != nil {
		return nil, fmt.Errorf("failed to encode request payload: %w", err)
	}

	form := url.Values{payloadField: {payload}}

	req, err := http.NewRequestWithContext(ctx, r.method.String(), r.url, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for key, values := range r.header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	r.logger.Debug().
		Str("method", r.method.String()).
		Str("url", r.url).
		Str("body", string(body)).
		Msg("Received astrometry API response")

	var decoded Response
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedResponse, snippet(body))
	}

	if err := classify(decoded); err != nil {
		return nil, err
	}

	return decoded, nil
}

// payload merges data and settings into one JSON object. Settings win
// over data on key collision.
func (r *Request) payload() (string, error) {
	merged := make(map[string]interface{}, len(r.data)+len(r.settings))
	for key, value := range r.data {
		merged[key] = value
	}
	for key, value := range r.settings {
		merged[key] = value
	}

	encoded, err := json.Marshal(merged)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// setSession sets the session key carried in the request data
func (r *Request) setSession(key string) {
	r.data[sessionField] = key
}

// classify inspects a decoded response and maps API-reported errors to
// typed failures. Successful responses pass through untouched.
func classify(resp Response) error {
	if resp.Status() != statusError {
		return nil
	}

	msg := resp.ErrorMessage()
	switch {
	case msg == noSessionMessage:
		return fmt.Errorf("%w: %s", ErrNoSession, msg)
	case strings.HasPrefix(msg, invalidSessionMessagePrefix):
		return fmt.Errorf("%w: %s", ErrInvalidSession, msg)
	}

	return &APIError{Message: msg}
}

func copyMap(m map[string]interface{}) map[string]interface{} {
	copied := make(map[string]interface{}, len(m))
	for key, value := range m {
		copied[key] = value
	}
	return copied
}

// snippet truncates a response body for inclusion in error messages
func snippet(body []byte) string {
	const max = 200
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
