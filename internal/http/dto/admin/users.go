// Package dto defines the wire shapes for the admin user endpoints.
package dto

import (
	authdto "github.com/dropDatabas3/partnerdesk/internal/http/dto/auth"
)

// CreateUserRequest is the POST /v1/admin/users body.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role"`
	Active   *bool  `json:"active,omitempty"` // defaults to true
}

// UpdateUserRequest is the PUT /v1/admin/users/{id} body. Omitted fields
// stay unchanged.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Role     *string `json:"role,omitempty"`
	Active   *bool   `json:"active,omitempty"`
	Password *string `json:"password,omitempty"`
}

// ListUsersResponse is the data payload of a user listing.
type ListUsersResponse struct {
	Items []authdto.UserResponse `json:"items"`
	Page  int                    `json:"page"`
	Limit int                    `json:"limit"`
	Total int                    `json:"total"`
}
