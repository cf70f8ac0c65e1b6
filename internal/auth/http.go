package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// ParseFromRequest extracts and validates a Bearer JWT from the Authorization header.
func ParseFromRequest(r *http.Request, secret string) (*Principal, error) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return nil, errors.New("missing authorization")
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, errors.New("invalid authorization header")
	}
	return ParseToken(strings.TrimSpace(parts[1]), secret)
}

// RequireBearer returns middleware that rejects requests without a valid token
// and injects the Principal into the request context.
func RequireBearer(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := ParseFromRequest(r, secret)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("WWW-Authenticate", `Bearer realm="training-log"`)
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "auth error: " + err.Error()})
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}
