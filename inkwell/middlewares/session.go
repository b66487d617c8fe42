package middlewares

import (
	"context"
	"net/http"

	"inkwell/inkwell/sources/psql/dao"
	"inkwell/inkwell/sources/psql/models"
)

type contextKey string

const UserKey contextKey = "user"

// CookieName is the session cookie. No MaxAge is set on it, so it lives for
// the browser session; the server-side row has its own expiry.
const CookieName = "session"

// Session resolves the session cookie into a *models.User on every request.
// Anything that goes wrong along the way (no cookie, unknown or expired
// token, vanished user) just leaves the request anonymous.
func Session(sessions *dao.SessionDAO, users *dao.UserDAO) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}
			session, err := sessions.GetSessionByToken(r.Context(), cookie.Value)
			if err != nil || session == nil {
				next.ServeHTTP(w, r)
				return
			}
			user, err := users.GetUserByID(r.Context(), session.UserID)
			if err != nil || user == nil {
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth redirects anonymous requests to the login page instead of
// running the wrapped handler.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CurrentUser(r.Context()) == nil {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CurrentUser returns the authenticated user for this request, or nil.
func CurrentUser(ctx context.Context) *models.User {
	user, _ := ctx.Value(UserKey).(*models.User)
	return user
}
