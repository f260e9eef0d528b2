package nova

import (
	"context"
	"net/http"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/s0up4200/astrometry/config"
)

// Session holds the account API key and the session key derived from it
// by logging in to the Astrometry.net API.
//
// A Session is constructed once and reused across many requests; the
// session key may be refreshed multiple times over its life. The
// logged-in flag is a local cache of belief: the API offers no way to
// check whether a session is still valid server-side.
//
// A Session is safe for concurrent use. Concurrent logins are collapsed
// into a single network call.
type Session struct {
	apiKey     string
	loginURL   string
	httpClient *http.Client
	logger     zerolog.Logger

	group singleflight.Group

	mu         sync.Mutex
	sessionKey string
	loggedIn   bool
}

type sessionSettings struct {
	apiKey     string
	keyFile    string
	loginURL   string
	httpClient *http.Client
}

// SessionOption configures a Session
type SessionOption func(*sessionSettings)

// WithAPIKey provides the API key directly, taking priority over a key
// file and the environment.
func WithAPIKey(key string) SessionOption {
	return func(s *sessionSettings) {
		s.apiKey = key
	}
}

// WithKeyFile provides the path of a file whose contents are the API key
func WithKeyFile(path string) SessionOption {
	return func(s *sessionSettings) {
		s.keyFile = path
	}
}

// WithLoginURL overrides the login endpoint. The default is the hosted
// nova.astrometry.net service.
func WithLoginURL(loginURL string) SessionOption {
	return func(s *sessionSettings) {
		s.loginURL = loginURL
	}
}

// WithSessionHTTPClient sets the HTTP client used for login calls
func WithSessionHTTPClient(client *http.Client) SessionOption {
	return func(s *sessionSettings) {
		s.httpClient = client
	}
}

// NewSession creates a Session, resolving the API key from the
// configured sources in priority order: explicit key, key file, then the
// ASTROMETRY_API_KEY environment variable. Construction fails if no key
// can be resolved.
func NewSession(logger zerolog.Logger, opts ...SessionOption) (*Session, error) {
	settings := sessionSettings{
		loginURL:   config.LoginURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(&settings)
	}

	apiKey, err := config.ResolveAPIKey(settings.apiKey, settings.keyFile)
	if err != nil {
		return nil, err
	}

	return &Session{
		apiKey:     apiKey,
		loginURL:   settings.loginURL,
		httpClient: settings.httpClient,
		logger:     logger,
	}, nil
}

// Login starts a session with the Astrometry.net API by posting the
// account API key to the login endpoint. The obtained session key is
// stored on the Session.
//
// Unless force is true, Login is a no-op when the Session believes it is
// already logged in; the prior session is assumed still valid since the
// API offers no way to check. A *LoginError is returned when the API
// rejects the login.
func (s *Session) Login(ctx context.Context, force bool) error {
	if !force && s.LoggedIn() {
		return nil
	}

	_, err, _ := s.group.Do("login", func() (interface{}, error) {
		return nil, s.login(ctx)
	})
	return err
}

// login performs the actual login round-trip and stores the result
func (s *Session) login(ctx context.Context) error {
	req, err := NewPostRequest(s.loginURL,
		WithData(map[string]interface{}{apiKeyField: s.apiKey}),
		WithHTTPClient(s.httpClient),
		WithLogger(s.logger),
	)
	if err != nil {
		return err
	}

	resp, err := req.Send(ctx)
	if err != nil {
		return err
	}

	if !resp.Succeeded() {
		return &LoginError{Response: resp}
	}

	s.mu.Lock()
	s.sessionKey = resp.SessionKey()
	s.loggedIn = true
	s.mu.Unlock()

	s.logger.Debug().Msg("Logged in to astrometry API")
	return nil
}

// SessionKey returns the current session key. It is empty until the
// first successful Login.
func (s *Session) SessionKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionKey
}

// LoggedIn reports whether the Session believes it holds a valid session
// key.
func (s *Session) LoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loggedIn
}
