package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"news-app/internal/domain"
	"news-app/internal/service"
)

type contextKey string

const accountContextKey contextKey = "account"

const AccessTokenCookie = "access_token"

// AuthMiddleware guards routes behind a valid access-token cookie and
// makes the verified account available on the request context.
type AuthMiddleware struct {
	authService *service.AuthService
}

func NewAuthMiddleware(authService *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(AccessTokenCookie)
		if err != nil || cookie.Value == "" {
			unauthorized(w)
			return
		}

		account, err := m.authService.VerifyAccess(r.Context(), cookie.Value)
		if err != nil {
			unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), accountContextKey, account)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AccountFromContext returns the account placed on the context by
// RequireAuth.
func AccountFromContext(ctx context.Context) (*domain.Account, bool) {
	account, ok := ctx.Value(accountContextKey).(*domain.Account)
	return account, ok
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": domain.ErrInvalidCredentials.Error()})
}
