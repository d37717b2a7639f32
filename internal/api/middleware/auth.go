package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/phrazzld/wishlist-api/internal/api/shared"
	"github.com/phrazzld/wishlist-api/internal/service/auth"
)

// Messages returned by the auth gate. These are a stable contract with
// existing clients and must not be reworded.
const (
	msgTokenMissing = "Access token missing."
	msgTokenInvalid = "Invalid or expired token."
	msgForbidden    = "You are not authorized to perform this operation"
)

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// Authenticate converts the request's bearer credential into verified
// identity claims on the request context, or short-circuits with 401.
// A header from which no token can be extracted and a token that fails
// verification produce distinct messages, both 401.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := extractBearerToken(r.Header.Get("Authorization"))
		if !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized, msgTokenMissing)
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			// Expired, malformed, and bad-signature tokens all collapse to
			// the same client-visible message.
			shared.RespondWithError(w, r, http.StatusUnauthorized, msgTokenInvalid)
			return
		}

		ctx := context.WithValue(r.Context(), shared.ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin restricts the route to identities carrying the
// administrative claim. It expects Authenticate to have run first; if no
// identity is present the request is rejected with 403, since an absent
// identity cannot carry the capability.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetClaims(r)
		if !ok || !claims.IsAdmin {
			shared.RespondWithError(w, r, http.StatusForbidden, msgForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetClaims extracts the verified identity claims from the request context.
// Returns the claims and a boolean indicating if they were found.
func GetClaims(r *http.Request) (*auth.Claims, bool) {
	claims, ok := r.Context().Value(shared.ClaimsContextKey).(*auth.Claims)
	return claims, ok && claims != nil
}

// extractBearerToken pulls the token out of an "Authorization: Bearer X"
// header value. Reports false when no token can be extracted.
func extractBearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}

	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	return parts[1], true
}
