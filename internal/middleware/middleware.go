package middleware

import (
	"context"
	"log"
	"net/http"
	"time"

	"miniblog/internal/database"
	"miniblog/internal/models"
	"miniblog/internal/service"
	"miniblog/internal/session"
)

type Middleware func(http.Handler) http.Handler

type ctxKey int

const userKey ctxKey = 0

// WithUser binds the resolved identity to the context.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFrom returns the authenticated user, or nil for anonymous clients.
func UserFrom(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}

// RequestConn gives every request its own lazily acquired database
// connection and releases it on every exit path.
func RequestConn(db *database.DB) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, rc := db.NewRequestContext(r.Context())
			defer rc.Release()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentUser resolves the session cookie to a user record at the start of
// every request. Resolution failures mean anonymous, never an error page.
func CurrentUser(authService service.AuthService) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := session.TokenFromRequest(r)

			user, err := authService.CurrentUser(r.Context(), token)
			if err != nil {
				log.Printf("failed to resolve current user: %v", err)
			}

			if user != nil {
				r = r.WithContext(WithUser(r.Context(), user))
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireLogin guards a handler: anonymous callers are redirected to the
// login view and the handler never runs. Wrap every protected route with it.
func RequireLogin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if UserFrom(r.Context()) == nil {
			http.Redirect(w, r, "/auth/login", http.StatusFound)
			return
		}

		next(w, r)
	}
}

func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s (%s)", r.Method, r.URL.Path, time.Since(start))
	})
}

func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
