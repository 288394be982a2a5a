package auth

import (
	"net/http"

	dto "github.com/dropDatabas3/partnerdesk/internal/http/dto/auth"
	"github.com/dropDatabas3/partnerdesk/internal/http/apierrors"
	"github.com/dropDatabas3/partnerdesk/internal/http/middlewares"
)

// MeController returns the authenticated user's own profile.
type MeController struct{}

// NewMeController creates a me controller.
func NewMeController() *MeController {
	return &MeController{}
}

// Me handles GET /v1/auth/me.
func (c *MeController) Me(w http.ResponseWriter, r *http.Request) {
	u := middlewares.IdentityFrom(r.Context())
	if u == nil {
		apierrors.WriteError(w, apierrors.ErrUnauthorized)
		return
	}
	apierrors.WriteSuccess(w, http.StatusOK, dto.NewUserResponse(u))
}
