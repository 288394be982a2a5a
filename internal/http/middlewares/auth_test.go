package middlewares

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/partnerdesk/internal/domain/repository"
	"github.com/dropDatabas3/partnerdesk/internal/store/memory"
	"github.com/dropDatabas3/partnerdesk/internal/token"
)

type gateFixture struct {
	users  repository.UserRepository
	tokens *token.Service
	now    time.Time
}

func newGateFixture(t *testing.T) *gateFixture {
	t.Helper()
	f := &gateFixture{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	tokens, err := token.New(
		[]byte("test-access-secret-0123456789ab"),
		[]byte("test-refresh-secret-0123456789a"),
		token.WithClock(func() time.Time { return f.now }),
	)
	require.NoError(t, err)
	f.tokens = tokens
	f.users = memory.New().Users()
	return f
}

func (f *gateFixture) addUser(t *testing.T, role repository.Role, active bool) *repository.User {
	t.Helper()
	u, err := f.users.Create(context.Background(), repository.CreateUserInput{
		Email:        string(role) + "@example.com",
		PasswordHash: "irrelevant",
		Role:         role,
		Active:       active,
	})
	require.NoError(t, err)
	return u
}

// okHandler records the identity the middleware resolved.
func okHandler(got **repository.User) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = IdentityFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func errCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code
}

func TestAuthenticateMissingToken(t *testing.T) {
	f := newGateFixture(t)
	var got *repository.User
	h := Authenticate(f.tokens, f.users)(okHandler(&got))

	for _, auth := range []string{"", "Basic abc", "Bearer"} {
		req := httptest.NewRequest(http.MethodGet, "/v1/posts", nil)
		if auth != "" {
			req.Header.Set("Authorization", auth)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "MISSING_TOKEN", errCode(t, rec))
		assert.Nil(t, got)
	}
}

func TestAuthenticateInvalidToken(t *testing.T) {
	f := newGateFixture(t)
	var got *repository.User
	h := Authenticate(f.tokens, f.users)(okHandler(&got))

	req := httptest.NewRequest(http.MethodGet, "/v1/posts", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_TOKEN", errCode(t, rec))
}

func TestAuthenticateExpiredToken(t *testing.T) {
	f := newGateFixture(t)
	u := f.addUser(t, repository.RoleStaff, true)

	raw, err := f.tokens.IssueAccess(u)
	require.NoError(t, err)

	f.now = f.now.Add(16 * time.Minute) // past the 15m access TTL

	var got *repository.User
	h := Authenticate(f.tokens, f.users)(okHandler(&got))
	req := httptest.NewRequest(http.MethodGet, "/v1/posts", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "TOKEN_EXPIRED", errCode(t, rec))
}

func TestAuthenticateDeletedUser(t *testing.T) {
	f := newGateFixture(t)
	u := f.addUser(t, repository.RoleStaff, true)

	raw, err := f.tokens.IssueAccess(u)
	require.NoError(t, err)
	require.NoError(t, f.users.Delete(context.Background(), u.ID))

	var got *repository.User
	h := Authenticate(f.tokens, f.users)(okHandler(&got))
	req := httptest.NewRequest(http.MethodGet, "/v1/posts", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "USER_NOT_FOUND", errCode(t, rec))
}

func TestAuthenticateInactiveUser(t *testing.T) {
	f := newGateFixture(t)
	u := f.addUser(t, repository.RoleStaff, true)

	raw, err := f.tokens.IssueAccess(u)
	require.NoError(t, err)

	// Deactivation takes effect on the very next request, even though the
	// token itself is still cryptographically valid.
	inactive := false
	_, err = f.users.Update(context.Background(), u.ID, repository.UpdateUserInput{Active: &inactive})
	require.NoError(t, err)

	var got *repository.User
	h := Authenticate(f.tokens, f.users)(okHandler(&got))
	req := httptest.NewRequest(http.MethodGet, "/v1/posts", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "USER_INACTIVE", errCode(t, rec))
}

func TestAuthenticateResolvesIdentity(t *testing.T) {
	f := newGateFixture(t)
	u := f.addUser(t, repository.RoleStaff, true)

	raw, err := f.tokens.IssueAccess(u)
	require.NoError(t, err)

	var got *repository.User
	h := Authenticate(f.tokens, f.users)(okHandler(&got))
	req := httptest.NewRequest(http.MethodGet, "/v1/posts", nil)
	req.Header.Set("Authorization", "bearer "+raw) // scheme is case-insensitive
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, repository.RoleStaff, got.Role)
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name    string
		role    repository.Role
		allowed []repository.Role
		want    int
	}{
		{"staff on staff route", repository.RoleStaff, []repository.Role{repository.RoleOwner, repository.RoleAdmin, repository.RoleStaff}, http.StatusOK},
		{"staff on admin-only route", repository.RoleStaff, []repository.Role{repository.RoleOwner, repository.RoleAdmin}, http.StatusForbidden},
		{"member on staff route", repository.RoleMember, []repository.Role{repository.RoleOwner, repository.RoleAdmin, repository.RoleStaff}, http.StatusForbidden},
		{"owner on admin route", repository.RoleOwner, []repository.Role{repository.RoleOwner, repository.RoleAdmin}, http.StatusOK},
		{"admin on admin route", repository.RoleAdmin, []repository.Role{repository.RoleOwner, repository.RoleAdmin}, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := RequireRole(tc.allowed...)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			u := &repository.User{ID: "u1", Role: tc.role, Active: true}
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			req = req.WithContext(WithIdentity(req.Context(), u))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tc.want, rec.Code)
			if tc.want == http.StatusForbidden {
				assert.Equal(t, "INSUFFICIENT_PERMISSIONS", errCode(t, rec))
			}
		})
	}
}

func TestRequireRoleWithoutIdentity(t *testing.T) {
	h := RequireRole(repository.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", errCode(t, rec))
}
