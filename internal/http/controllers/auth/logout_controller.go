package auth

import (
	"net/http"

	"github.com/dropDatabas3/partnerdesk/internal/audit"
	"github.com/dropDatabas3/partnerdesk/internal/http/apierrors"
	"github.com/dropDatabas3/partnerdesk/internal/http/middlewares"
)

// LogoutController handles the logout endpoint.
//
// Tokens are stateless and there is no revocation store, so logout is an
// acknowledgement: the client discards its tokens and the server records
// the event. An already-issued token stays technically valid until expiry.
type LogoutController struct{}

// NewLogoutController creates a logout controller.
func NewLogoutController() *LogoutController {
	return &LogoutController{}
}

// Logout handles POST /v1/auth/logout.
func (c *LogoutController) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if u := middlewares.IdentityFrom(ctx); u != nil {
		audit.Log(ctx, "logout", map[string]any{"user_id": u.ID})
	}
	w.Header().Set("Cache-Control", "no-store")
	apierrors.WriteSuccess(w, http.StatusOK, map[string]string{"message": "logged out"})
}
