package auth

import (
	"context"
	"strings"

	"github.com/dropDatabas3/partnerdesk/internal/audit"
	"github.com/dropDatabas3/partnerdesk/internal/domain/repository"
	dto "github.com/dropDatabas3/partnerdesk/internal/http/dto/auth"
	"github.com/dropDatabas3/partnerdesk/internal/metrics"
	"github.com/dropDatabas3/partnerdesk/internal/observability/logger"
	"github.com/dropDatabas3/partnerdesk/internal/security/password"
	"github.com/dropDatabas3/partnerdesk/internal/token"
)

// LoginDeps contains the login service dependencies.
type LoginDeps struct {
	Users  repository.UserRepository
	Tokens *token.Service
}

type loginService struct {
	deps LoginDeps
}

// NewLoginService creates the password login service.
//
// There is no lockout and no failure counter: consecutive failed attempts
// are unbounded. Throttling, when enabled, is the rate-limit middleware's
// concern and keys on IP, not on the account.
func NewLoginService(deps LoginDeps) LoginService {
	return &loginService{deps: deps}
}

func (s *loginService) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.login"),
		logger.Op("Login"),
	)

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Email == "" || in.Password == "" {
		return nil, ErrMissingFields
	}

	u, err := s.deps.Users.GetByEmail(ctx, in.Email)
	if err != nil {
		if repository.IsNotFound(err) {
			log.Debug("user not found", logger.Email(in.Email))
			metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	log = log.With(logger.UserID(u.ID))

	if !u.Active {
		log.Info("login rejected, account inactive")
		metrics.LoginAttemptsTotal.WithLabelValues("inactive").Inc()
		audit.Log(ctx, "login.inactive", map[string]any{"user_id": u.ID})
		return nil, ErrAccountInactive
	}

	if !password.Verify(in.Password, u.PasswordHash) {
		log.Debug("password check failed")
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		audit.Log(ctx, "login.failed", map[string]any{"user_id": u.ID})
		return nil, ErrInvalidCredentials
	}

	pair, err := s.deps.Tokens.Issue(u)
	if err != nil {
		log.Error("token issue failed", logger.Err(err))
		return nil, ErrTokenIssueFailed
	}

	metrics.LoginAttemptsTotal.WithLabelValues("ok").Inc()
	metrics.TokensIssuedTotal.WithLabelValues("login").Inc()
	audit.Log(ctx, "login.ok", map[string]any{"user_id": u.ID, "role": u.Role.String()})
	log.Info("login ok", logger.Role(u.Role.String()))

	return &dto.LoginResponse{
		User:         dto.NewUserResponse(u),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}
