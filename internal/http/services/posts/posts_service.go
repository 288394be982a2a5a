package posts

import (
	"context"
	"strings"

	"github.com/dropDatabas3/partnerdesk/internal/audit"
	"github.com/dropDatabas3/partnerdesk/internal/domain/repository"
	dto "github.com/dropDatabas3/partnerdesk/internal/http/dto/posts"
	"github.com/dropDatabas3/partnerdesk/internal/observability/logger"
)

const (
	maxTitleLen   = 200
	maxContentLen = 50_000

	defaultPageSize = 20
	maxPageSize     = 100
)

type service struct {
	posts repository.PostRepository
}

// NewService creates the post service on top of the given repository.
func NewService(posts repository.PostRepository) Service {
	return &service{posts: posts}
}

func (s *service) Create(ctx context.Context, caller *repository.User, in dto.CreatePostRequest) (*dto.PostResponse, error) {
	fields := map[string]string{}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		fields["title"] = "title is required"
	} else if len(title) > maxTitleLen {
		fields["title"] = "title is too long"
	}
	if len(in.Content) > maxContentLen {
		fields["content"] = "content is too long"
	}

	status := repository.PostDraft
	if in.Status != "" {
		st, ok := parseStatus(in.Status)
		if !ok {
			fields["status"] = "status must be one of DRAFT, PUBLISHED, ARCHIVED"
		} else {
			status = st
		}
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	// Posts are always attributed to their creator; there is no
	// create-on-behalf-of on this endpoint.
	p, err := s.posts.Create(ctx, repository.CreatePostInput{
		Title:     title,
		Content:   in.Content,
		Status:    status,
		AuthorID:  caller.ID,
		CreatedBy: caller.ID,
	})
	if err != nil {
		return nil, err
	}

	logger.From(ctx).Info("post created",
		logger.Layer("service"),
		logger.Component("posts"),
		logger.PostID(p.ID),
	)
	audit.Log(ctx, "post.create", map[string]any{"post_id": p.ID, "status": p.Status.String()})

	resp := dto.NewPostResponse(p)
	return &resp, nil
}

func (s *service) Get(ctx context.Context, caller *repository.User, id string) (*dto.PostResponse, error) {
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if !visibleTo(caller, p) {
		// Indistinguishable from a missing post on purpose.
		return nil, ErrPostNotFound
	}
	resp := dto.NewPostResponse(p)
	return &resp, nil
}

func (s *service) List(ctx context.Context, caller *repository.User, q ListQuery) (*dto.ListPostsResponse, error) {
	f := repository.ListPostsFilter{AuthorID: q.Author}

	if q.Status != "" {
		st, ok := parseStatus(q.Status)
		if !ok {
			return nil, &ValidationError{Fields: map[string]string{
				"status": "status must be one of DRAFT, PUBLISHED, ARCHIVED",
			}}
		}
		f.Status = &st
	}

	// MEMBERs only ever see published content, whatever they asked for.
	if caller.Role == repository.RoleMember {
		published := repository.PostPublished
		f.Status = &published
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	f.Limit = limit
	f.Offset = (page - 1) * limit

	items, total, err := s.posts.List(ctx, f)
	if err != nil {
		return nil, err
	}

	out := make([]dto.PostResponse, 0, len(items))
	for i := range items {
		out = append(out, dto.NewPostResponse(&items[i]))
	}
	return &dto.ListPostsResponse{Items: out, Page: page, Limit: limit, Total: total}, nil
}

func (s *service) Update(ctx context.Context, caller *repository.User, id string, in dto.UpdatePostRequest) (*dto.PostResponse, error) {
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	// STAFF may only touch their own posts; OWNER and ADMIN edit any.
	if caller.Role == repository.RoleStaff && p.AuthorID != caller.ID {
		return nil, ErrNotOwner
	}

	fields := map[string]string{}
	upd := repository.UpdatePostInput{}
	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		switch {
		case t == "":
			fields["title"] = "title must not be empty"
		case len(t) > maxTitleLen:
			fields["title"] = "title is too long"
		default:
			upd.Title = &t
		}
	}
	if in.Content != nil {
		if len(*in.Content) > maxContentLen {
			fields["content"] = "content is too long"
		} else {
			upd.Content = in.Content
		}
	}
	if in.Status != nil {
		st, ok := parseStatus(*in.Status)
		if !ok {
			fields["status"] = "status must be one of DRAFT, PUBLISHED, ARCHIVED"
		} else {
			upd.Status = &st
		}
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	p, err = s.posts.Update(ctx, id, upd)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	audit.Log(ctx, "post.update", map[string]any{"post_id": p.ID})

	resp := dto.NewPostResponse(p)
	return &resp, nil
}

func (s *service) Delete(ctx context.Context, caller *repository.User, id string) error {
	if err := s.posts.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return ErrPostNotFound
		}
		return err
	}
	audit.Log(ctx, "post.delete", map[string]any{"post_id": id})
	return nil
}

// visibleTo reports whether the caller may read the post. OWNER, ADMIN and
// STAFF see everything; MEMBER sees published posts only.
func visibleTo(caller *repository.User, p *repository.Post) bool {
	if caller.Role != repository.RoleMember {
		return true
	}
	return p.Status == repository.PostPublished
}

func parseStatus(s string) (repository.PostStatus, bool) {
	st := repository.PostStatus(s)
	return st, st.Valid()
}
