package auth

import "errors"

// Store-level sentinels returned by UserStore implementations.
var (
	ErrNotFound      = errors.New("auth: not found")
	ErrAlreadyExists = errors.New("auth: already exists")
)

// Operation-level sentinels surfaced to the HTTP layer. Every one of them is
// terminal for the current request.
var (
	ErrDuplicateAccount    = errors.New("auth: account already exists")
	ErrInvalidCredentials  = errors.New("auth: invalid credentials")
	ErrMissingToken        = errors.New("auth: missing token")
	ErrInvalidToken        = errors.New("auth: invalid token")
	ErrExpiredToken        = errors.New("auth: token expired")
	ErrInvalidRefreshToken = errors.New("auth: invalid refresh token")
	ErrPrincipalNotFound   = errors.New("auth: principal not found")
)
