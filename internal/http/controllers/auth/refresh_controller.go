package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	dto "github.com/dropDatabas3/partnerdesk/internal/http/dto/auth"
	"github.com/dropDatabas3/partnerdesk/internal/http/apierrors"
	svc "github.com/dropDatabas3/partnerdesk/internal/http/services/auth"
	"github.com/dropDatabas3/partnerdesk/internal/observability/logger"
)

// RefreshController handles the token refresh endpoint.
type RefreshController struct {
	service svc.RefreshService
}

// NewRefreshController creates a refresh controller.
func NewRefreshController(service svc.RefreshService) *RefreshController {
	return &RefreshController{service: service}
}

// Refresh handles POST /v1/auth/refresh.
func (c *RefreshController) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("RefreshController.Refresh"))

	r.Body = http.MaxBytesReader(w, r.Body, maxAuthBodySize)
	defer r.Body.Close()

	var req dto.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.WriteError(w, apierrors.ErrInvalidJSON)
		return
	}

	result, err := c.service.Refresh(ctx, req)
	if err != nil {
		log.Debug("refresh failed", logger.Err(err))
		writeRefreshError(w, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	apierrors.WriteSuccess(w, http.StatusOK, result)
}

func writeRefreshError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, svc.ErrMissingRefreshToken):
		apierrors.WriteError(w, apierrors.ErrMissingRefreshToken)

	case errors.Is(err, svc.ErrInvalidRefreshToken):
		apierrors.WriteError(w, apierrors.ErrInvalidRefreshToken)

	default:
		apierrors.WriteError(w, apierrors.ErrInternal)
	}
}
