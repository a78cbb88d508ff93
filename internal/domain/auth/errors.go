package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid google credential")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenExpired       = errors.New("token has expired")
	ErrNotAuthenticated   = errors.New("not signed in")
	ErrUserNotFound       = errors.New("user not found")
)
