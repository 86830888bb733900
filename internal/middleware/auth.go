package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/skillsync-hq/skillsync-backend/internal/models"
	"github.com/skillsync-hq/skillsync-backend/internal/services"
)

type contextKey string

const (
	principalIDKey   contextKey = "principal_id"
	principalKindKey contextKey = "principal_kind"
)

// RequireAuth gates a route on a valid session token for the given kind.
// The token is read from the kind's cookie first, then from the
// Authorization bearer header. On success the principal id and kind are
// attached to the request context.
func RequireAuth(tokens *services.TokenService, kind models.Kind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ""
			if cookie, err := r.Cookie(services.CookieName(kind)); err == nil {
				token = cookie.Value
			}
			if token == "" {
				if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
					token = strings.TrimPrefix(auth, "Bearer ")
				}
			}
			if token == "" {
				unauthorized(w, "Unauthorized - no token provided")
				return
			}

			principalID, err := tokens.Verify(kind, token)
			if err != nil {
				switch {
				case errors.Is(err, services.ErrTokenExpired):
					unauthorized(w, "Unauthorized - token expired")
				case errors.Is(err, services.ErrTokenInvalid):
					unauthorized(w, "Unauthorized - invalid token")
				default:
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					w.Write([]byte(`{"success":false,"msg":"Authentication error"}`))
				}
				return
			}

			ctx := context.WithValue(r.Context(), principalIDKey, principalID)
			ctx = context.WithValue(ctx, principalKindKey, kind)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"success":false,"msg":"` + msg + `"}`))
}

// PrincipalID returns the authenticated principal id, or "" when the request
// did not pass RequireAuth.
func PrincipalID(ctx context.Context) string {
	id, _ := ctx.Value(principalIDKey).(string)
	return id
}

// PrincipalKind returns the authenticated principal kind.
func PrincipalKind(ctx context.Context) models.Kind {
	kind, _ := ctx.Value(principalKindKey).(models.Kind)
	return kind
}
