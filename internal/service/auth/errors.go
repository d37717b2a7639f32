package auth

import "errors"

// Errors produced by ValidateToken. Missing-credential and insufficient-
// capability rejections are detected and answered at the middleware layer
// and never travel as errors.
var (
	// ErrInvalidToken indicates the token is malformed or its signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf claim in the future)
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")
)
