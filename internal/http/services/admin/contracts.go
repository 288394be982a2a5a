// Package admin implements the user administration flows.
package admin

import (
	"context"
	"errors"

	"github.com/dropDatabas3/partnerdesk/internal/domain/repository"
	dto "github.com/dropDatabas3/partnerdesk/internal/http/dto/admin"
	authdto "github.com/dropDatabas3/partnerdesk/internal/http/dto/auth"
)

// ListQuery carries the parsed list parameters. Page is 1-based.
type ListQuery struct {
	Role   string
	Active *bool
	Query  string
	Page   int
	Limit  int
}

// UsersService exposes the admin user operations.
type UsersService interface {
	List(ctx context.Context, q ListQuery) (*dto.ListUsersResponse, error)
	Get(ctx context.Context, id string) (*authdto.UserResponse, error)
	Create(ctx context.Context, in dto.CreateUserRequest) (*authdto.UserResponse, error)
	Update(ctx context.Context, caller *repository.User, id string, in dto.UpdateUserRequest) (*authdto.UserResponse, error)
	Delete(ctx context.Context, caller *repository.User, id string) error
}

// Service errors, mapped to API errors by the controllers.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")

	// ErrSelfTarget means an admin tried to delete or deactivate their own
	// account, which would risk locking the system out of administration.
	ErrSelfTarget = errors.New("operation targets the calling account")
)

// ValidationError reports per-field input problems.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "validation failed" }
