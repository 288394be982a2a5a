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

const maxAuthBodySize = 64 * 1024 // 64KB

// LoginController handles the login endpoint.
type LoginController struct {
	service svc.LoginService
}

// NewLoginController creates a login controller.
func NewLoginController(service svc.LoginService) *LoginController {
	return &LoginController{service: service}
}

// Login handles POST /v1/auth/login.
func (c *LoginController) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("LoginController.Login"))

	r.Body = http.MaxBytesReader(w, r.Body, maxAuthBodySize)
	defer r.Body.Close()

	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.WriteError(w, apierrors.ErrInvalidJSON)
		return
	}

	result, err := c.service.Login(ctx, req)
	if err != nil {
		log.Debug("login failed", logger.Err(err))
		writeLoginError(w, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	apierrors.WriteSuccess(w, http.StatusOK, result)
}

func writeLoginError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, svc.ErrMissingFields):
		apierrors.WriteError(w, apierrors.ErrValidation.WithMessage("email and password are required"))

	case errors.Is(err, svc.ErrInvalidCredentials):
		apierrors.WriteError(w, apierrors.ErrInvalidCredentials)

	case errors.Is(err, svc.ErrAccountInactive):
		apierrors.WriteError(w, apierrors.ErrAccountInactive)

	case errors.Is(err, svc.ErrTokenIssueFailed):
		apierrors.WriteError(w, apierrors.ErrInternal)

	default:
		apierrors.WriteError(w, apierrors.ErrInternal)
	}
}
