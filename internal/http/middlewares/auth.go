package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dropDatabas3/partnerdesk/internal/domain/repository"
	"github.com/dropDatabas3/partnerdesk/internal/http/apierrors"
	"github.com/dropDatabas3/partnerdesk/internal/observability/logger"
	"github.com/dropDatabas3/partnerdesk/internal/token"
)

type identityKey struct{}

// WithIdentity injects the resolved user into the context. The identity is
// immutable for the remainder of the request.
func WithIdentity(ctx context.Context, u *repository.User) context.Context {
	return context.WithValue(ctx, identityKey{}, u)
}

// IdentityFrom returns the authenticated user resolved by Authenticate, or
// nil on unauthenticated requests.
func IdentityFrom(ctx context.Context) *repository.User {
	if u, ok := ctx.Value(identityKey{}).(*repository.User); ok {
		return u
	}
	return nil
}

// bearerToken extracts the token from "Authorization: Bearer <t>",
// tolerating case variations in the scheme.
func bearerToken(r *http.Request) string {
	ah := strings.TrimSpace(r.Header.Get("Authorization"))
	if ah == "" {
		return ""
	}
	if i := strings.IndexByte(ah, ' '); i > 0 && strings.EqualFold(ah[:i], "Bearer") {
		return strings.TrimSpace(ah[i+1:])
	}
	return ""
}

// Authenticate validates the bearer access token, loads the user it names
// and checks the active flag. On success the resolved identity is stored
// in the context; the role check is a separate, per-route concern
// (RequireRole).
func Authenticate(tokens *token.Service, users repository.UserRepository) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token"`)
				apierrors.WriteError(w, apierrors.ErrMissingToken)
				return
			}

			claims, err := tokens.VerifyAccess(raw)
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token"`)
				if errors.Is(err, token.ErrExpired) {
					apierrors.WriteError(w, apierrors.ErrTokenExpired)
					return
				}
				apierrors.WriteError(w, apierrors.ErrInvalidToken)
				return
			}

			u, err := users.GetByID(r.Context(), claims.Subject)
			if err != nil {
				if repository.IsNotFound(err) {
					apierrors.WriteError(w, apierrors.ErrUserNotFound)
					return
				}
				logger.From(r.Context()).Error("identity lookup failed", logger.Err(err))
				apierrors.WriteError(w, apierrors.ErrInternal)
				return
			}
			if !u.Active {
				apierrors.WriteError(w, apierrors.ErrUserInactive)
				return
			}

			ctx := WithIdentity(r.Context(), u)
			// enrich the request logger with the resolved identity
			ctx = logger.ToContext(ctx, logger.From(ctx).With(
				logger.UserID(u.ID),
				logger.Role(u.Role.String()),
			))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a route on an explicit allow-list. Membership is an
// exact test; there is no hierarchy between roles. Must be mounted after
// Authenticate.
func RequireRole(allowed ...repository.Role) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u := IdentityFrom(r.Context())
			if u == nil {
				apierrors.WriteError(w, apierrors.ErrUnauthorized)
				return
			}
			if !u.Role.In(allowed...) {
				apierrors.WriteError(w, apierrors.ErrInsufficientPermissions)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
