package middleware

import (
	"net/http"
	"strings"

	"quizgame/internal/session"
)

// Routes that need a logged in user. Everything else, unknown paths
// included, reaches the mux as is.
var protectedPaths = []string{
	"/home",
	"/quiz",
	"/question",
	"/results",
}

func isProtected(path string) bool {
	for _, p := range protectedPaths {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// RequireAuth sends anonymous or idle sessions to the login page and puts
// the identity of everyone else into the request context.
func RequireAuth(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := store.Current(r)

			if !isProtected(r.URL.Path) {
				if ok {
					r = r.WithContext(session.WithIdentity(r.Context(), id))
				}
				next.ServeHTTP(w, r)
				return
			}

			if !ok {
				_ = store.Logout(w, r, session.Flash{
					Kind:    session.FlashDanger,
					Message: "Please login to access this page.",
				})
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}

			_ = store.Touch(w, r)
			next.ServeHTTP(w, r.WithContext(session.WithIdentity(r.Context(), id)))
		})
	}
}
