package nova

import (
	"context"
	"errors"
)

// AuthorizedRequest wraps a Request in an authentication layer, ensuring
// the Session is logged in and the session key is sent alongside the
// request.
//
// The login request, if one is needed, is only sent just before the
// wrapped request itself. When the API reports the session key invalid
// or expired, the request forces a fresh login and retries exactly once;
// a second failure of any kind is returned to the caller.
type AuthorizedRequest struct {
	*Request
	session *Session
}

// NewAuthorizedRequest creates an AuthorizedRequest bound to the given
// Session. It accepts the same options as NewRequest.
func NewAuthorizedRequest(session *Session, requestURL string, opts ...RequestOption) (*AuthorizedRequest, error) {
	req, err := NewRequest(requestURL, opts...)
	if err != nil {
		return nil, err
	}
	return &AuthorizedRequest{Request: req, session: session}, nil
}

// Send guarantees a login, injects the current session key into the
// payload and delegates to the underlying Request. At most one retry is
// made, and only for an invalid or expired session key.
func (r *AuthorizedRequest) Send(ctx context.Context) (Response, error) {
	if err := r.session.Login(ctx, false); err != nil {
		return nil, err
	}
	r.setSession(r.session.SessionKey())

	resp, err := r.Request.Send(ctx)
	if err == nil || !errors.Is(err, ErrInvalidSession) {
		return resp, err
	}

	r.logger.Debug().Msg("Session expired, logging in again")
	if err := r.session.Login(ctx, true); err != nil {
		return nil, err
	}
	r.setSession(r.session.SessionKey())

	return r.Request.Send(ctx)
}
