package server

import (
	"context"
	"net/http"
)

type contextKey string

const contextSessionKey contextKey = "session"

// withSession resolves the token cookie into a live session and stashes it
// in the request context. Anonymous requests pass through without one.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(tokenCookie)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}
		sess := h.sessions.session(r.Context(), cookie.Value)
		ctx := context.WithValue(r.Context(), contextSessionKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireUser is the route guard: requests without a resolved current user
// are redirected to the login page.
func (h *Handler) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFromContext(r.Context())
		if sess == nil || sess.store.CurrentUser() == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func sessionFromContext(ctx context.Context) *webSession {
	sess, _ := ctx.Value(contextSessionKey).(*webSession)
	return sess
}
