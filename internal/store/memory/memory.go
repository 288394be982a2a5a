// Package memory implements the domain repositories in process memory.
// It backs unit tests and the dev-mode storage driver; it is not meant for
// production use.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/partnerdesk/internal/domain/repository"
)

// Store holds both repositories behind one mutex.
type Store struct {
	mu    sync.RWMutex
	users map[string]repository.User
	posts map[string]repository.Post
	now   func() time.Time
}

func New() *Store {
	return &Store{
		users: make(map[string]repository.User),
		posts: make(map[string]repository.Post),
		now:   time.Now,
	}
}

// Users returns the UserRepository view of the store.
func (s *Store) Users() repository.UserRepository { return (*userRepo)(s) }

// Posts returns the PostRepository view of the store.
func (s *Store) Posts() repository.PostRepository { return (*postRepo)(s) }

// Ping always succeeds; the store lives in process.
func (s *Store) Ping(context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close() {}

// ---- users ----

type userRepo Store

func (r *userRepo) Create(_ context.Context, in repository.CreateUserInput) (*repository.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(in.Email))
	for _, u := range r.users {
		if u.Email == email {
			return nil, repository.ErrDuplicate
		}
	}
	if !in.Role.Valid() {
		return nil, repository.ErrInvalidInput
	}
	now := r.now().UTC()
	u := repository.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: in.PasswordHash,
		Name:         in.Name,
		Role:         in.Role,
		Active:       in.Active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.users[u.ID] = u
	out := u
	return &out, nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*repository.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := u
	return &out, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*repository.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range r.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) Update(_ context.Context, id string, in repository.UpdateUserInput) (*repository.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Role != nil {
		if !in.Role.Valid() {
			return nil, repository.ErrInvalidInput
		}
		u.Role = *in.Role
	}
	if in.Active != nil {
		u.Active = *in.Active
	}
	if in.PasswordHash != nil {
		u.PasswordHash = *in.PasswordHash
	}
	u.UpdatedAt = r.now().UTC()
	r.users[id] = u
	out := u
	return &out, nil
}

func (r *userRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *userRepo) List(_ context.Context, f repository.ListUsersFilter) ([]repository.User, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []repository.User
	for _, u := range r.users {
		if f.Role != nil && u.Role != *f.Role {
			continue
		}
		if f.Active != nil && u.Active != *f.Active {
			continue
		}
		if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
			if !strings.Contains(u.Email, q) && !strings.Contains(strings.ToLower(u.Name), q) {
				continue
			}
		}
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return page(all, f.Limit, f.Offset)
}

func (r *userRepo) CountByRoles(_ context.Context, roles ...repository.Role) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, u := range r.users {
		if u.Role.In(roles...) {
			n++
		}
	}
	return n, nil
}

// ---- posts ----

type postRepo Store

func (r *postRepo) Create(_ context.Context, in repository.CreatePostInput) (*repository.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !in.Status.Valid() {
		return nil, repository.ErrInvalidInput
	}
	now := r.now().UTC()
	p := repository.Post{
		ID:        uuid.NewString(),
		Title:     in.Title,
		Content:   in.Content,
		Status:    in.Status,
		AuthorID:  in.AuthorID,
		CreatedBy: in.CreatedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.posts[p.ID] = p
	out := p
	return &out, nil
}

func (r *postRepo) GetByID(_ context.Context, id string) (*repository.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := p
	return &out, nil
}

func (r *postRepo) Update(_ context.Context, id string, in repository.UpdatePostInput) (*repository.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Content != nil {
		p.Content = *in.Content
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, repository.ErrInvalidInput
		}
		p.Status = *in.Status
	}
	p.UpdatedAt = r.now().UTC()
	r.posts[id] = p
	out := p
	return &out, nil
}

func (r *postRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *postRepo) List(_ context.Context, f repository.ListPostsFilter) ([]repository.Post, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []repository.Post
	for _, p := range r.posts {
		if f.Status != nil && p.Status != *f.Status {
			continue
		}
		if f.AuthorID != "" && p.AuthorID != f.AuthorID {
			continue
		}
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return page(all, f.Limit, f.Offset)
}

// page applies limit/offset with the repository defaults (20, max 100).
func page[T any](all []T, limit, offset int) ([]T, int, error) {
	total := len(all)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []T{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}
