package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/trackr/api/internal/auth"
	"github.com/trackr/api/internal/models"
	appErr "github.com/trackr/api/pkg/errors"
)

type principalKeyType string

const PrincipalKey principalKeyType = "principal"

// PrincipalResolver turns a bearer token into the user it was issued for.
type PrincipalResolver interface {
	Principal(ctx context.Context, token string) (*models.User, error)
}

// Auth requires a valid Bearer token and stores the resolved user in the
// request context.
func Auth(resolver PrincipalResolver) func(http.Handler) http.Handler {
	return authenticate(resolver, true)
}

// OptionalAuth resolves a Bearer token when one is sent and lets anonymous
// requests through. A missing, malformed or rejected token is treated as
// anonymous; lookup failures other than unauthorized still fail the request.
func OptionalAuth(resolver PrincipalResolver) func(http.Handler) http.Handler {
	return authenticate(resolver, false)
}

func authenticate(resolver PrincipalResolver, required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ah := r.Header.Get("Authorization")
			if ah == "" && !required {
				next.ServeHTTP(w, r)
				return
			}
			if !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
				if !required {
					next.ServeHTTP(w, r)
					return
				}
				writeError(w, appErr.New(appErr.CodeUnauthorized, "missing bearer token"))
				return
			}
			user, err := resolver.Principal(r.Context(), strings.TrimSpace(ah[len("Bearer "):]))
			if err != nil {
				if !required && appErr.IsCode(err, appErr.CodeUnauthorized) {
					next.ServeHTTP(w, r)
					return
				}
				writeError(w, err)
				return
			}
			ctx := context.WithValue(r.Context(), PrincipalKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects principals whose role is not one of roles. It must run
// after Auth.
func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetPrincipal(r.Context())
			if user == nil {
				writeError(w, appErr.New(appErr.CodeUnauthorized, "authentication required"))
				return
			}
			if !auth.HasRole(user.EffectiveRole(), roles...) {
				writeError(w, appErr.New(appErr.CodeForbidden, "insufficient role"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetPrincipal returns the authenticated user, or nil for anonymous requests.
func GetPrincipal(ctx context.Context) *models.User {
	user, ok := ctx.Value(PrincipalKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// WithPrincipal returns a copy of ctx carrying user.
func WithPrincipal(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, PrincipalKey, user)
}
