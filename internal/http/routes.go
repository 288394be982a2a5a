// Package http assembles the API router: middleware stack, route table and
// the per-route role allow-lists.
package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dropDatabas3/partnerdesk/internal/domain/repository"
	adminctl "github.com/dropDatabas3/partnerdesk/internal/http/controllers/admin"
	authctl "github.com/dropDatabas3/partnerdesk/internal/http/controllers/auth"
	healthctl "github.com/dropDatabas3/partnerdesk/internal/http/controllers/health"
	postsctl "github.com/dropDatabas3/partnerdesk/internal/http/controllers/posts"
	"github.com/dropDatabas3/partnerdesk/internal/http/apierrors"
	"github.com/dropDatabas3/partnerdesk/internal/http/middlewares"
	"github.com/dropDatabas3/partnerdesk/internal/rate"
	"github.com/dropDatabas3/partnerdesk/internal/token"
)

// RouterDeps bundles everything the route table needs.
type RouterDeps struct {
	Auth   *authctl.Controllers
	Posts  *postsctl.Controller
	Admin  *adminctl.UsersController
	Health *healthctl.Controller

	Tokens *token.Service
	Users  repository.UserRepository

	// LoginLimiter throttles /v1/auth/login by client IP. Nil disables it.
	LoginLimiter rate.Limiter
}

// NewRouter builds the API router.
//
// Role gating is declared here, per route group, so the whole permission
// surface is readable in one place:
//
//	posts read            any authenticated role (MEMBER sees published only)
//	posts create/update   OWNER, ADMIN, STAFF
//	posts delete          OWNER, ADMIN
//	admin users           OWNER, ADMIN
func NewRouter(deps RouterDeps) stdhttp.Handler {
	r := chi.NewRouter()

	r.Use(middlewares.WithRequestID())
	r.Use(middlewares.WithLogging())
	r.Use(middlewares.WithMetrics())

	r.NotFound(func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
		apierrors.WriteError(w, apierrors.ErrNotFound)
	})
	r.MethodNotAllowed(func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
		apierrors.WriteError(w, apierrors.ErrMethodNotAllowed)
	})

	// Operational endpoints, unauthenticated.
	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)
	r.Method(stdhttp.MethodGet, "/metrics", promhttp.Handler())

	authenticate := middlewares.Authenticate(deps.Tokens, deps.Users)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(middlewares.WithRateLimit(deps.LoginLimiter)).
				Post("/login", deps.Auth.Login.Login)
			r.Post("/refresh", deps.Auth.Refresh.Refresh)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Post("/logout", deps.Auth.Logout.Logout)
				r.Get("/me", deps.Auth.Me.Me)
			})
		})

		r.Route("/posts", func(r chi.Router) {
			r.Use(authenticate)

			r.Get("/", deps.Posts.List)
			r.Get("/{id}", deps.Posts.Get)

			r.Group(func(r chi.Router) {
				r.Use(middlewares.RequireRole(
					repository.RoleOwner, repository.RoleAdmin, repository.RoleStaff,
				))
				r.Post("/", deps.Posts.Create)
				r.Put("/{id}", deps.Posts.Update)
			})

			r.With(middlewares.RequireRole(repository.RoleOwner, repository.RoleAdmin)).
				Delete("/{id}", deps.Posts.Delete)
		})

		r.Route("/admin/users", func(r chi.Router) {
			r.Use(authenticate)
			r.Use(middlewares.RequireRole(repository.RoleOwner, repository.RoleAdmin))

			r.Get("/", deps.Admin.List)
			r.Post("/", deps.Admin.Create)
			r.Get("/{id}", deps.Admin.Get)
			r.Put("/{id}", deps.Admin.Update)
			r.Delete("/{id}", deps.Admin.Delete)
		})
	})

	return r
}
