// Package health contains the liveness and readiness controllers.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/dropDatabas3/partnerdesk/internal/http/apierrors"
	"github.com/dropDatabas3/partnerdesk/internal/observability/logger"
)

// Pinger is the slice of the store the readiness check needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

const readyTimeout = 2 * time.Second

// Controller handles /healthz and /readyz.
type Controller struct {
	store   Pinger
	version string
}

// NewController creates a health controller.
func NewController(store Pinger, version string) *Controller {
	return &Controller{store: store, version: version}
}

// Healthz handles GET /healthz. It reports process liveness only and never
// touches dependencies.
func (c *Controller) Healthz(w http.ResponseWriter, r *http.Request) {
	apierrors.WriteSuccess(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": c.version,
	})
}

// Readyz handles GET /readyz. It fails when the backing store is
// unreachable so load balancers stop routing here.
func (c *Controller) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := c.store.Ping(ctx); err != nil {
		logger.From(r.Context()).Warn("readiness check failed", logger.Err(err))
		apierrors.WriteError(w, apierrors.ErrServiceUnavailable)
		return
	}
	apierrors.WriteSuccess(w, http.StatusOK, map[string]string{
		"status":  "ready",
		"version": c.version,
	})
}
