package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/partnerdesk/internal/domain/repository"
)

func TestUserCRUD(t *testing.T) {
	ctx := context.Background()
	s := New()
	users := s.Users()

	u, err := users.Create(ctx, repository.CreateUserInput{
		Email:        "Admin@Example.com",
		PasswordHash: "phc",
		Name:         "Admin",
		Role:         repository.RoleAdmin,
		Active:       true,
	})
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", u.Email, "email is case-normalized")

	_, err = users.Create(ctx, repository.CreateUserInput{
		Email: "admin@example.com", PasswordHash: "x", Role: repository.RoleStaff, Active: true,
	})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	got, err := users.GetByEmail(ctx, "ADMIN@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	inactive := false
	upd, err := users.Update(ctx, u.ID, repository.UpdateUserInput{Active: &inactive})
	require.NoError(t, err)
	assert.False(t, upd.Active)

	require.NoError(t, users.Delete(ctx, u.ID))
	_, err = users.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, users.Delete(ctx, u.ID), repository.ErrNotFound)
}

func TestUserListFilters(t *testing.T) {
	ctx := context.Background()
	s := New()
	users := s.Users()

	mk := func(email string, role repository.Role, active bool) {
		_, err := users.Create(ctx, repository.CreateUserInput{
			Email: email, PasswordHash: "x", Role: role, Active: active,
		})
		require.NoError(t, err)
	}
	mk("a@x.com", repository.RoleAdmin, true)
	mk("b@x.com", repository.RoleStaff, true)
	mk("c@x.com", repository.RoleStaff, false)
	mk("d@y.com", repository.RoleMember, true)

	staff := repository.RoleStaff
	got, total, err := users.List(ctx, repository.ListUsersFilter{Role: &staff})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, got, 2)

	active := true
	got, total, err = users.List(ctx, repository.ListUsersFilter{Role: &staff, Active: &active})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "b@x.com", got[0].Email)

	_, total, err = users.List(ctx, repository.ListUsersFilter{Query: "@x.com"})
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	n, err := users.CountByRoles(ctx, repository.RoleOwner, repository.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPostCRUDAndPaging(t *testing.T) {
	ctx := context.Background()
	s := New()
	posts := s.Posts()

	for i := 0; i < 25; i++ {
		status := repository.PostPublished
		if i%2 == 0 {
			status = repository.PostDraft
		}
		_, err := posts.Create(ctx, repository.CreatePostInput{
			Title: "t", Content: "c", Status: status, AuthorID: "u1", CreatedBy: "u1",
		})
		require.NoError(t, err)
	}

	got, total, err := posts.List(ctx, repository.ListPostsFilter{})
	require.NoError(t, err)
	assert.Equal(t, 25, total)
	assert.Len(t, got, 20, "default page size")

	got, total, err = posts.List(ctx, repository.ListPostsFilter{Limit: 10, Offset: 20})
	require.NoError(t, err)
	assert.Equal(t, 25, total)
	assert.Len(t, got, 5)

	pub := repository.PostPublished
	_, total, err = posts.List(ctx, repository.ListPostsFilter{Status: &pub})
	require.NoError(t, err)
	assert.Equal(t, 12, total)

	_, err = posts.Create(ctx, repository.CreatePostInput{Status: repository.PostStatus("BOGUS")})
	assert.ErrorIs(t, err, repository.ErrInvalidInput)
}
