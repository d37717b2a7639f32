package auth

import (
	"fmt"
	"time"
)

// NewTestJWTService creates a JWT service with an injectable clock and no
// clock skew allowance, for deterministic expiry tests. The secret must
// still meet the minimum length requirement.
func NewTestJWTService(secret string, lifetime time.Duration, timeFunc func() time.Time) (JWTService, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 characters")
	}

	if timeFunc == nil {
		timeFunc = time.Now
	}

	return &hmacJWTService{
		signingKey:    []byte(secret),
		tokenLifetime: lifetime,
		timeFunc:      timeFunc,
		clockSkew:     0,
	}, nil
}
