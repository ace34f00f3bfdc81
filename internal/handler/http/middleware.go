package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/farhan-shop/shop-api/internal/auth"
)

type contextKey string

const userClaimsKey contextKey = "user_claims"

// Authenticator verifies the bearer token on every request and stores the
// caller's identity in the request context.
func Authenticator(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondWithError(w, http.StatusUnauthorized, "Authorization header is missing")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := tokens.Verify(tokenString)
			if err != nil {
				log.Warn().Err(err).Msg("Rejected request with bad token")
				if errors.Is(err, auth.ErrTokenExpired) {
					respondWithError(w, http.StatusUnauthorized, "Token has expired")
				} else {
					respondWithError(w, http.StatusUnauthorized, "Token is invalid")
				}
				return
			}

			ctx := context.WithValue(r.Context(), userClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the identity the Authenticator stored. The second
// result is false on routes that never went through the middleware.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(userClaimsKey).(*auth.Claims)
	return claims, ok
}

func userIDFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Missing authenticated user")
		return uuid.Nil, false
	}
	return claims.UserID, true
}
