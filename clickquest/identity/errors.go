package identity

import "errors"

var (
	ErrValidation            = errors.New("validation failed")
	ErrDuplicateAccount      = errors.New("user already exists")
	ErrNotFound              = errors.New("user does not exist")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrUnverifiedAccount     = errors.New("email not verified")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
)
