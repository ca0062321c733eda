package sessions

import "errors"

var (
	// no refresh token was supplied with the request
	ErrMissingToken = errors.New("refresh token required")

	// the token is unknown to storage: never issued, already rotated,
	// or revoked at logout. A rotated token must never be accepted again.
	ErrTokenRevoked = errors.New("refresh token revoked")

	// the stored row had outlived its expiry and was removed
	ErrTokenExpired = errors.New("refresh token expired")
)
