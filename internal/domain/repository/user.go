package repository

import (
	"context"
	"time"
)

// User represents a system user. Email is unique and stored lowercased.
// An inactive user can never obtain a new session.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateUserInput contains the data to create a user.
// PasswordHash must already be an argon2id PHC string.
type CreateUserInput struct {
	Email        string
	PasswordHash string
	Name         string
	Role         Role
	Active       bool
}

// UpdateUserInput contains the updatable fields of a user.
// Nil pointers mean "leave unchanged".
type UpdateUserInput struct {
	Name         *string
	Role         *Role
	Active       *bool
	PasswordHash *string
}

// ListUsersFilter narrows and pages a user listing.
type ListUsersFilter struct {
	Role   *Role
	Active *bool
	Query  string // optional email/name substring
	Limit  int    // default 20, max 100
	Offset int
}

// UserRepository defines operations over users.
type UserRepository interface {
	// Create inserts a new user. Returns ErrDuplicate on email conflict.
	Create(ctx context.Context, in CreateUserInput) (*User, error)

	// GetByID returns the user or ErrNotFound.
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByEmail returns the user or ErrNotFound. Email is matched lowercased.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Update applies the non-nil fields of in. Returns ErrNotFound if the
	// user does not exist.
	Update(ctx context.Context, id string, in UpdateUserInput) (*User, error)

	// Delete removes the user. Returns ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error

	// List returns a page of users plus the unpaged total.
	List(ctx context.Context, f ListUsersFilter) ([]User, int, error)

	// CountByRoles returns how many users hold any of the given roles.
	// Used by the admin bootstrap check.
	CountByRoles(ctx context.Context, roles ...Role) (int, error)
}
