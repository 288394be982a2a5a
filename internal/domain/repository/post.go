package repository

import (
	"context"
	"time"
)

// PostStatus is the closed set of post lifecycle states. Transitions are
// unconstrained beyond membership in the enum.
type PostStatus string

const (
	PostDraft     PostStatus = "DRAFT"
	PostPublished PostStatus = "PUBLISHED"
	PostArchived  PostStatus = "ARCHIVED"
)

// Valid reports whether s is one of the known statuses.
func (s PostStatus) Valid() bool {
	switch s {
	case PostDraft, PostPublished, PostArchived:
		return true
	}
	return false
}

func (s PostStatus) String() string { return string(s) }

// Post is an affiliate content entry. AuthorID is the user the post is
// attributed to; CreatedBy is who actually created the record (an admin may
// create on behalf of someone else).
type Post struct {
	ID        string
	Title     string
	Content   string
	Status    PostStatus
	AuthorID  string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreatePostInput contains the data to create a post.
type CreatePostInput struct {
	Title     string
	Content   string
	Status    PostStatus
	AuthorID  string
	CreatedBy string
}

// UpdatePostInput contains the updatable fields of a post.
// Nil pointers mean "leave unchanged".
type UpdatePostInput struct {
	Title   *string
	Content *string
	Status  *PostStatus
}

// ListPostsFilter narrows and pages a post listing.
type ListPostsFilter struct {
	Status   *PostStatus
	AuthorID string
	Limit    int // default 20, max 100
	Offset   int
}

// PostRepository defines operations over posts.
type PostRepository interface {
	// Create inserts a new post.
	Create(ctx context.Context, in CreatePostInput) (*Post, error)

	// GetByID returns the post or ErrNotFound.
	GetByID(ctx context.Context, id string) (*Post, error)

	// Update applies the non-nil fields of in. Returns ErrNotFound if the
	// post does not exist.
	Update(ctx context.Context, id string, in UpdatePostInput) (*Post, error)

	// Delete removes the post. Returns ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error

	// List returns a page of posts plus the unpaged total, newest first.
	List(ctx context.Context, f ListPostsFilter) ([]Post, int, error)
}
