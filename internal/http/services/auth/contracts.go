// Package auth implements the login and refresh flows.
package auth

import (
	"context"
	"errors"

	dto "github.com/dropDatabas3/partnerdesk/internal/http/dto/auth"
)

// LoginService authenticates credentials and mints a token pair.
type LoginService interface {
	Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error)
}

// RefreshService exchanges a refresh token for a fresh access token.
type RefreshService interface {
	Refresh(ctx context.Context, in dto.RefreshRequest) (*dto.RefreshResponse, error)
}

// Service errors, mapped to API errors by the controllers.
var (
	ErrMissingFields       = errors.New("missing required fields")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAccountInactive     = errors.New("account inactive")
	ErrMissingRefreshToken = errors.New("missing refresh token")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrTokenIssueFailed    = errors.New("failed to issue token")
)
