package middleware

import (
	"context"
	"net/http"

	"dulce-dosis-web/internal/ports/session"
)

type ctxKey string

const sessionKey ctxKey = "session"

// SessionContext carga la sesión de la cookie y la deja en el contexto.
// Si no hay sesión el request sigue igual; los handlers decidirán si exigen auth.
func SessionContext(mgr session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if mgr == nil {
				next.ServeHTTP(w, r)
				return
			}

			st, err := mgr.Load(r)
			if err != nil || !st.Authenticated() {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, st)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetSession(ctx context.Context) (session.State, bool) {
	v := ctx.Value(sessionKey)
	if v == nil {
		return session.State{}, false
	}
	st, ok := v.(session.State)
	return st, ok && st.Authenticated()
}

// WithSession se usa en tests de handlers para simular un usuario logueado.
func WithSession(ctx context.Context, st session.State) context.Context {
	return context.WithValue(ctx, sessionKey, st)
}

// RequireSession redirige a loginPath cuando no hay token.
func RequireSession(loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := GetSession(r.Context()); !ok {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
