package auth

import (
	"context"
	"strings"

	"github.com/dropDatabas3/partnerdesk/internal/audit"
	"github.com/dropDatabas3/partnerdesk/internal/domain/repository"
	dto "github.com/dropDatabas3/partnerdesk/internal/http/dto/auth"
	"github.com/dropDatabas3/partnerdesk/internal/metrics"
	"github.com/dropDatabas3/partnerdesk/internal/observability/logger"
	"github.com/dropDatabas3/partnerdesk/internal/token"
)

// RefreshDeps contains the refresh service dependencies.
type RefreshDeps struct {
	Users  repository.UserRepository
	Tokens *token.Service
}

type refreshService struct {
	deps RefreshDeps
}

// NewRefreshService creates the token refresh service.
//
// The refresh token is NOT rotated: the same token stays valid until its
// natural expiry and only a new access token is minted. This keeps the
// flow stateless at the cost of a replay window bounded by the refresh
// TTL — a documented limitation of the design, not an oversight.
func NewRefreshService(deps RefreshDeps) RefreshService {
	return &refreshService{deps: deps}
}

func (s *refreshService) Refresh(ctx context.Context, in dto.RefreshRequest) (*dto.RefreshResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.refresh"),
		logger.Op("Refresh"),
	)

	if strings.TrimSpace(in.RefreshToken) == "" {
		return nil, ErrMissingRefreshToken
	}

	claims, err := s.deps.Tokens.VerifyRefresh(in.RefreshToken)
	if err != nil {
		log.Debug("refresh token rejected", logger.Err(err))
		return nil, ErrInvalidRefreshToken
	}

	// Re-read the user so the new access token carries the CURRENT stored
	// role and a deactivated or deleted user cannot refresh.
	u, err := s.deps.Users.GetByID(ctx, claims.Subject)
	if err != nil {
		if repository.IsNotFound(err) {
			log.Debug("refresh for missing user", logger.UserID(claims.Subject))
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	if !u.Active {
		log.Info("refresh for inactive user", logger.UserID(u.ID))
		audit.Log(ctx, "refresh.inactive", map[string]any{"user_id": u.ID})
		return nil, ErrInvalidRefreshToken
	}

	access, err := s.deps.Tokens.IssueAccess(u)
	if err != nil {
		log.Error("token issue failed", logger.Err(err))
		return nil, ErrTokenIssueFailed
	}

	metrics.TokensIssuedTotal.WithLabelValues("refresh").Inc()
	audit.Log(ctx, "refresh.ok", map[string]any{"user_id": u.ID})

	return &dto.RefreshResponse{
		AccessToken: access,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.deps.Tokens.AccessTTL().Seconds()),
	}, nil
}
