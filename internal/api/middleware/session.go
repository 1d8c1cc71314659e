package middleware

import (
	"net/http"
	"strings"

	"github.com/zatekoja/tourism-directory/backend/internal/auth"
)

// SessionResolver maps a bearer token to an identity, returning nil for anonymous callers
type SessionResolver interface {
	Resolve(token string) *auth.Identity
}

// SessionMiddleware attaches the caller's identity to the request context.
// Requests without a valid token continue anonymously.
func SessionMiddleware(resolver SessionResolver, cookieName string) func(http.Handler) http.Handler {
	if cookieName == "" {
		cookieName = "session"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r, cookieName)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			identity := resolver.Resolve(token)
			if identity == nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), identity)))
		})
	}
}

// sessionToken prefers the Authorization header over the session cookie
func sessionToken(r *http.Request, cookieName string) string {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if cookie, err := r.Cookie(cookieName); err == nil {
		return cookie.Value
	}
	return ""
}
