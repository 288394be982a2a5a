// Package auth contains the authentication controllers.
package auth

import (
	svc "github.com/dropDatabas3/partnerdesk/internal/http/services/auth"
)

// Controllers groups the auth domain controllers.
type Controllers struct {
	Login   *LoginController
	Refresh *RefreshController
	Logout  *LogoutController
	Me      *MeController
}

// NewControllers creates the auth controller aggregate.
func NewControllers(login svc.LoginService, refresh svc.RefreshService) *Controllers {
	return &Controllers{
		Login:   NewLoginController(login),
		Refresh: NewRefreshController(refresh),
		Logout:  NewLogoutController(),
		Me:      NewMeController(),
	}
}
