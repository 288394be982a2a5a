// Package dto defines the wire shapes for the post endpoints.
package dto

import (
	"time"

	"github.com/dropDatabas3/partnerdesk/internal/domain/repository"
)

// CreatePostRequest is the POST /v1/posts body.
type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Status  string `json:"status,omitempty"` // defaults to DRAFT
}

// UpdatePostRequest is the PUT /v1/posts/{id} body. Omitted fields stay
// unchanged.
type UpdatePostRequest struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
	Status  *string `json:"status,omitempty"`
}

// PostResponse is the public projection of a post.
type PostResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	AuthorID  string    `json:"authorId"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewPostResponse projects a domain post onto the wire shape.
func NewPostResponse(p *repository.Post) PostResponse {
	return PostResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Status:    p.Status.String(),
		AuthorID:  p.AuthorID,
		CreatedBy: p.CreatedBy,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ListPostsResponse is the data payload of a post listing.
type ListPostsResponse struct {
	Items []PostResponse `json:"items"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
	Total int            `json:"total"`
}
