package middleware

import (
	"context"
	"net/http"

	"kegiatan-kampus/internal/http/respond"
	"kegiatan-kampus/internal/models"
	"kegiatan-kampus/internal/security"
	"kegiatan-kampus/internal/service"
)

type userKey struct{}

func WithUser(ctx context.Context, u *models.SessionUser) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// UserFromContext returns the session user loaded by Session, if any.
func UserFromContext(ctx context.Context) (*models.SessionUser, bool) {
	u, ok := ctx.Value(userKey{}).(*models.SessionUser)
	return u, ok && u != nil
}

// Session resolves the request's session cookie once and stores the user in
// the request context. Requests without a session pass through untouched.
func Session(sm *security.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := sm.Current(r)
			if err != nil {
				respond.Error(w, r, err)
				return
			}
			if user != nil {
				r = r.WithContext(WithUser(r.Context(), user))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireLogin answers 401 when the request has no session.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); !ok {
			respond.Error(w, r, service.ErrNoSession)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole answers 403 unless the session role equals role exactly.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := UserFromContext(r.Context())
			if !ok || u.Role != role {
				respond.Error(w, r, service.ErrWrongRole)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Chain applies mws so that the first one runs first.
func Chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
