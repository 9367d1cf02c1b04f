package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"docvault/internal/model"
	"docvault/internal/policy"
)

type tokenVerifier interface {
	Verify(tokenString string) (*model.TokenClaims, error)
}

type contextKey string

const claimsContextKey contextKey = "token_claims"

type AuthMiddleware struct {
	tokens tokenVerifier
}

func NewAuthMiddleware(tokens tokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Require guards a route with a capability. The bearer token is verified
// once, the policy decision is applied, and the claims are stored on the
// request context for the handler.
func (m *AuthMiddleware) Require(capability policy.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := m.claimsFromHeader(r)

			if err := policy.Check(claims, capability); err != nil {
				writeDenied(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (m *AuthMiddleware) claimsFromHeader(r *http.Request) *model.TokenClaims {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return nil
	}

	claims, err := m.tokens.Verify(strings.TrimSpace(header[7:]))
	if err != nil {
		return nil
	}
	return claims
}

// ClaimsFromContext returns the verified claims placed by Require.
func ClaimsFromContext(ctx context.Context) (*model.TokenClaims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*model.TokenClaims)
	return claims, ok && claims != nil
}

func writeDenied(w http.ResponseWriter, err error) {
	status := http.StatusUnauthorized
	code := "UNAUTHORIZED"
	message := "missing or invalid token"
	if errors.Is(err, model.ErrForbidden) {
		status = http.StatusForbidden
		code = "FORBIDDEN"
		message = "insufficient permissions"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error:   &model.APIError{Code: code, Message: message},
	})
}
