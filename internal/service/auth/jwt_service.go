package auth

import (
	"context"
	"time"
)

// JWTService defines operations for managing JWT authentication tokens.
// Token issuance for end users (login/signup) lives outside this service;
// GenerateToken exists for operational tooling and tests.
type JWTService interface {
	// GenerateToken creates a signed JWT access token for the given subject.
	// The isAdmin flag is embedded as the administrative capability claim.
	GenerateToken(ctx context.Context, subject string, isAdmin bool) (string, error)

	// ValidateToken validates the provided token string and extracts the claims.
	// Returns ErrExpiredToken for expired tokens and ErrInvalidToken for
	// malformed tokens or bad signatures.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the per-request identity context derived from a verified
// credential. It lives for a single request and is never persisted.
type Claims struct {
	// Subject identifies who the token was issued for.
	Subject string `json:"sub,omitempty"`

	// IsAdmin carries the administrative capability flag. Operations behind
	// the admin gate require it.
	IsAdmin bool `json:"isAdmin,omitempty"`

	// Standard registered JWT claims
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
