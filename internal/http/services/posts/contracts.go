// Package posts implements the post CRUD flows, including the per-role
// visibility and ownership rules that sit above the repository.
package posts

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dropDatabas3/partnerdesk/internal/domain/repository"
	dto "github.com/dropDatabas3/partnerdesk/internal/http/dto/posts"
)

// ListQuery carries the parsed list parameters. Page is 1-based.
type ListQuery struct {
	Status string
	Author string
	Page   int
	Limit  int
}

// Service exposes the post operations. Every method takes the resolved
// caller so visibility and ownership rules are applied in one place.
type Service interface {
	Create(ctx context.Context, caller *repository.User, in dto.CreatePostRequest) (*dto.PostResponse, error)
	Get(ctx context.Context, caller *repository.User, id string) (*dto.PostResponse, error)
	List(ctx context.Context, caller *repository.User, q ListQuery) (*dto.ListPostsResponse, error)
	Update(ctx context.Context, caller *repository.User, id string, in dto.UpdatePostRequest) (*dto.PostResponse, error)
	Delete(ctx context.Context, caller *repository.User, id string) error
}

// Service errors, mapped to API errors by the controllers.
var (
	// ErrPostNotFound covers both genuinely missing posts and posts the
	// caller is not allowed to see, so existence is never leaked.
	ErrPostNotFound = errors.New("post not found")

	// ErrNotOwner means the caller's role only permits editing own posts
	// and the target belongs to someone else.
	ErrNotOwner = errors.New("post belongs to another author")
)

// ValidationError reports per-field input problems.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("validation failed: %s", strings.Join(keys, ", "))
}
