package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/deoxyribo/limeblog/internal/auth"
	"github.com/deoxyribo/limeblog/internal/models"
)

type key string

// UserKey holds the resolved *models.User in the request context.
const UserKey key = "user"

// SessionCookieName is the cookie the web UI stores the token in; the API
// itself reads the Authorization header first.
const SessionCookieName = "limeblog_token"

// Session resolves the request's session token (Bearer header or cookie) to
// a user and stores it in the context. Requests without a valid token pass
// through as anonymous; gating happens in RequireUser.
func Session(a *auth.Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := a.Resolve(TokenFromRequest(r))
			if err != nil {
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			if user != nil {
				r = r.WithContext(context.WithValue(r.Context(), UserKey, user))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireUser rejects anonymous requests with 401. Use inside a Session group.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFromContext(r.Context()) == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"authentication required"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserFromContext returns the resolved user, or nil for anonymous requests.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(UserKey).(*models.User)
	return user
}

// TokenFromRequest extracts the session token from the Authorization header,
// falling back to the web UI cookie. Empty when neither is present.
func TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if c, err := r.Cookie(SessionCookieName); err == nil {
		return c.Value
	}
	return ""
}
