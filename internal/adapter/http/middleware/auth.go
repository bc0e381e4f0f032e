package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/beetracked/fleet-ops/internal/domain/models"
	"github.com/beetracked/fleet-ops/internal/domain/types"
	wrap "github.com/beetracked/fleet-ops/pkg/logger/wrapper"
)

// demoToken is accepted without verification so the frontend can run
// against a backend with no Cognito pool.
const demoToken = "demo-token"

// OptionalAuth verifies a Bearer token when one is present and injects
// the user into the context. Requests without a token pass through as
// anonymous; session validation decides what they may do.
func (m *Middleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		token, err := extractBearerToken(header)
		if err != nil {
			// Not a Bearer header, ignore it.
			next.ServeHTTP(w, r)
			return
		}

		if token == demoToken {
			next.ServeHTTP(w, r)
			return
		}

		if m.tokens == nil || !m.tokens.Configured() {
			m.log.Warn(ctx, "token received but Cognito is not configured, accepting without verification")
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.tokens.Verify(ctx, token)
		if err != nil || user == nil {
			m.log.Warn(wrap.WithAction(ctx, "optional_auth"), "rejected invalid token")
			errorResponse(w, http.StatusUnauthorized, types.ErrInvalidToken.Error())
			return
		}

		ctx = wrap.WithUserID(ctx, user.Username)
		next.ServeHTTP(w, r.WithContext(models.WithUser(ctx, user)))
	})
}

// --- header parser ---
func extractBearerToken(header string) (string, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", fmt.Errorf("invalid Authorization header format")
	}
	return parts[1], nil
}
