// Package nova provides a client for the Astrometry.net plate-solving API.
//
// The API speaks HTTP/JSON with one quirk: every request carries a single
// form field named request-json whose value is a JSON object, and every
// authorized call must include a short-lived session key obtained by
// logging in with the account API key. This package wraps that contract:
// it manages the login/session lifecycle, injects the session key into
// outgoing requests, and recovers once from an expired session.
//
// # Architecture
//
// The package is organized into several components:
//
//   - Session: holds the API key and the session key derived from it,
//     with an idempotent Login
//   - Request: builds, sends and decodes a single API call
//   - AuthorizedRequest: composes a Session with a Request, retrying
//     exactly once when the API reports the session key expired
//   - Errors: structured error types for classification of API failures
//
// # Usage
//
// Create a Session and send an authorized request:
//
//	logger := zerolog.New(os.Stderr)
//	session, err := nova.NewSession(logger, nova.WithKeyFile("~/.astrometry.key"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	req, err := nova.NewAuthorizedRequest(session, config.BaseURL+"/submissions",
//		nova.WithMethod("post"),
//		nova.WithData(map[string]interface{}{"subid": 12345}),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	resp, err := req.Send(context.Background())
//	if err != nil {
//		log.Fatal(err)
//	}
//
// The API key is resolved from an explicit option, a key file, or the
// ASTROMETRY_API_KEY environment variable, in that order.
//
// # Error Handling
//
// API-reported failures are classified into typed errors:
//
//   - ErrNoSession: the request carried no session field at all
//   - ErrInvalidSession: the session key is unknown or expired
//   - ErrMalformedResponse: the body could not be decoded as JSON
//   - *LoginError: the API rejected a login attempt
//   - *APIError: any other API-reported error, message verbatim
//
// Sentinels are matched with errors.Is:
//
//	if errors.Is(err, nova.ErrInvalidSession) {
//		// session expired a second time, give up
//	}
//
// Only ErrInvalidSession is ever retried, and only once per Send, by
// AuthorizedRequest.
package nova
