package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
)

// TokenVerifier verifies Firebase ID tokens; *auth.Client satisfies it
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type ctxKey struct{ name string }

var ctxKeyUserID = ctxKey{name: "uid"}

// RequireUser middleware validates the bearer ID token from the Authorization
// header and stores the token's UID in the request context.
func RequireUser(verifier TokenVerifier, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeUnauthorized(w, "Unauthorized: bearer token required")
				return
			}

			idToken := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			if idToken == "" {
				writeUnauthorized(w, "Unauthorized: bearer token required")
				return
			}

			token, err := verifier.VerifyIDToken(r.Context(), idToken)
			if err != nil {
				logger.Warn("id token rejected", "path", r.URL.Path, "error", err)
				writeUnauthorized(w, "Unauthorized: invalid token")
				return
			}

			uid := strings.TrimSpace(token.UID)
			if uid == "" {
				writeUnauthorized(w, "Unauthorized: invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUserID, uid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated user's UID, or "" for anonymous requests
func UserID(ctx context.Context) string {
	uid, _ := ctx.Value(ctxKeyUserID).(string)
	return uid
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
