// internal/auth/middleware.go
package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// contextKey is a private type for context keys defined in this package.
type contextKey string

// subjectKey stores the authenticated subject email in the request context.
const subjectKey contextKey = "subject"

// unauthorized writes a JSON 401 body in the same shape the handlers use.
func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	response, _ := json.Marshal(map[string]string{"error": message})
	_, _ = w.Write(response)
}

// Authenticator returns a middleware that rejects requests without a valid
// bearer token and injects the token subject into the request context.
func Authenticator(m *TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "authorization header required")
				return
			}

			headerParts := strings.SplitN(authHeader, " ", 2)
			if len(headerParts) != 2 || !strings.EqualFold(headerParts[0], "bearer") {
				unauthorized(w, "invalid authorization header format")
				return
			}

			email, err := m.Verify(headerParts[1])
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), subjectKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SubjectFromContext extracts the authenticated subject email from the request
// context. The second return value is false if no subject is present.
func SubjectFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(subjectKey).(string)
	return email, ok
}

// ContextWithSubject returns a context carrying the given subject email.
// Intended for tests and internal calls that bypass the HTTP middleware.
func ContextWithSubject(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, subjectKey, email)
}
