package admin

import (
	"context"
	"strings"

	"github.com/dropDatabas3/partnerdesk/internal/audit"
	"github.com/dropDatabas3/partnerdesk/internal/domain/repository"
	dto "github.com/dropDatabas3/partnerdesk/internal/http/dto/admin"
	authdto "github.com/dropDatabas3/partnerdesk/internal/http/dto/auth"
	"github.com/dropDatabas3/partnerdesk/internal/observability/logger"
	"github.com/dropDatabas3/partnerdesk/internal/security/password"
)

const (
	minPasswordLen = 8
	maxNameLen     = 120

	defaultPageSize = 20
	maxPageSize     = 100
)

type usersService struct {
	users  repository.UserRepository
	hasher password.Params
}

// NewUsersService creates the admin user service.
func NewUsersService(users repository.UserRepository) UsersService {
	return &usersService{users: users, hasher: password.Default}
}

func (s *usersService) List(ctx context.Context, q ListQuery) (*dto.ListUsersResponse, error) {
	f := repository.ListUsersFilter{
		Active: q.Active,
		Query:  strings.TrimSpace(q.Query),
	}
	if q.Role != "" {
		r, ok := repository.ParseRole(q.Role)
		if !ok {
			return nil, &ValidationError{Fields: map[string]string{"role": "unknown role"}}
		}
		f.Role = &r
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

	items, total, err := s.users.List(ctx, f)
	if err != nil {
		return nil, err
	}

	out := make([]authdto.UserResponse, 0, len(items))
	for i := range items {
		out = append(out, authdto.NewUserResponse(&items[i]))
	}
	return &dto.ListUsersResponse{Items: out, Page: page, Limit: limit, Total: total}, nil
}

func (s *usersService) Get(ctx context.Context, id string) (*authdto.UserResponse, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	resp := authdto.NewUserResponse(u)
	return &resp, nil
}

func (s *usersService) Create(ctx context.Context, in dto.CreateUserRequest) (*authdto.UserResponse, error) {
	fields := map[string]string{}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		fields["email"] = "a valid email is required"
	}
	if len(in.Password) < minPasswordLen {
		fields["password"] = "password must be at least 8 characters"
	}
	name := strings.TrimSpace(in.Name)
	if len(name) > maxNameLen {
		fields["name"] = "name is too long"
	}
	role, ok := repository.ParseRole(in.Role)
	if !ok {
		fields["role"] = "role must be one of OWNER, ADMIN, STAFF, MEMBER"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	hash, err := password.Hash(s.hasher, in.Password)
	if err != nil {
		return nil, err
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}

	u, err := s.users.Create(ctx, repository.CreateUserInput{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
		Active:       active,
	})
	if err != nil {
		if repository.IsDuplicate(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	logger.From(ctx).Info("user created",
		logger.Layer("service"),
		logger.Component("admin.users"),
		logger.UserID(u.ID),
		logger.Role(u.Role.String()),
	)
	audit.Log(ctx, "user.create", map[string]any{"user_id": u.ID, "role": u.Role.String()})

	resp := authdto.NewUserResponse(u)
	return &resp, nil
}

func (s *usersService) Update(ctx context.Context, caller *repository.User, id string, in dto.UpdateUserRequest) (*authdto.UserResponse, error) {
	fields := map[string]string{}
	upd := repository.UpdateUserInput{}

	if in.Name != nil {
		n := strings.TrimSpace(*in.Name)
		if len(n) > maxNameLen {
			fields["name"] = "name is too long"
		} else {
			upd.Name = &n
		}
	}
	if in.Role != nil {
		r, ok := repository.ParseRole(*in.Role)
		if !ok {
			fields["role"] = "role must be one of OWNER, ADMIN, STAFF, MEMBER"
		} else {
			upd.Role = &r
		}
	}
	if in.Active != nil {
		upd.Active = in.Active
	}
	if in.Password != nil {
		if len(*in.Password) < minPasswordLen {
			fields["password"] = "password must be at least 8 characters"
		} else {
			hash, err := password.Hash(s.hasher, *in.Password)
			if err != nil {
				return nil, err
			}
			upd.PasswordHash = &hash
		}
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	// An admin must not demote or deactivate their own account; that path
	// can leave the system without anyone able to administer it.
	if caller != nil && caller.ID == id {
		if upd.Role != nil && *upd.Role != caller.Role {
			return nil, ErrSelfTarget
		}
		if upd.Active != nil && !*upd.Active {
			return nil, ErrSelfTarget
		}
	}

	u, err := s.users.Update(ctx, id, upd)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	audit.Log(ctx, "user.update", map[string]any{"user_id": u.ID})

	resp := authdto.NewUserResponse(u)
	return &resp, nil
}

func (s *usersService) Delete(ctx context.Context, caller *repository.User, id string) error {
	if caller != nil && caller.ID == id {
		return ErrSelfTarget
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}
	audit.Log(ctx, "user.delete", map[string]any{"user_id": id})
	return nil
}
