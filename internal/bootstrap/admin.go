// Package bootstrap seeds the first administrator account so a fresh
// deployment is administrable without manual database surgery.
package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/dropDatabas3/partnerdesk/internal/config"
	"github.com/dropDatabas3/partnerdesk/internal/domain/repository"
	"github.com/dropDatabas3/partnerdesk/internal/observability/logger"
	"github.com/dropDatabas3/partnerdesk/internal/security/password"
)

// EnsureAdmin creates the bootstrap OWNER account when no OWNER or ADMIN
// exists yet. It is a no-op on an already-administered system, and also
// when no bootstrap credentials are configured (a deliberate opt-out for
// setups that seed users out of band).
func EnsureAdmin(ctx context.Context, users repository.UserRepository, cfg *config.Config) error {
	log := logger.L().With(logger.Component("bootstrap"))

	n, err := users.CountByRoles(ctx, repository.RoleOwner, repository.RoleAdmin)
	if err != nil {
		return fmt.Errorf("bootstrap: counting admins: %w", err)
	}
	if n > 0 {
		return nil
	}

	email := strings.ToLower(strings.TrimSpace(cfg.Bootstrap.AdminEmail))
	if email == "" || cfg.Bootstrap.AdminPassword == "" {
		log.Warn("no admin accounts exist and no bootstrap credentials are configured")
		return nil
	}

	hash, err := password.Hash(password.Default, cfg.Bootstrap.AdminPassword)
	if err != nil {
		return fmt.Errorf("bootstrap: hashing password: %w", err)
	}

	u, err := users.Create(ctx, repository.CreateUserInput{
		Email:        email,
		PasswordHash: hash,
		Name:         cfg.Bootstrap.AdminName,
		Role:         repository.RoleOwner,
		Active:       true,
	})
	if err != nil {
		// Concurrent instances may race on the insert; losing is fine.
		if repository.IsDuplicate(err) {
			return nil
		}
		return fmt.Errorf("bootstrap: creating admin: %w", err)
	}

	log.Info("bootstrap admin created", logger.UserID(u.ID), logger.Email(u.Email))
	return nil
}
