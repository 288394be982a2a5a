package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/partnerdesk/internal/domain/repository"
	adminctl "github.com/dropDatabas3/partnerdesk/internal/http/controllers/admin"
	authctl "github.com/dropDatabas3/partnerdesk/internal/http/controllers/auth"
	healthctl "github.com/dropDatabas3/partnerdesk/internal/http/controllers/health"
	postsctl "github.com/dropDatabas3/partnerdesk/internal/http/controllers/posts"
	adminsvc "github.com/dropDatabas3/partnerdesk/internal/http/services/admin"
	authsvc "github.com/dropDatabas3/partnerdesk/internal/http/services/auth"
	postssvc "github.com/dropDatabas3/partnerdesk/internal/http/services/posts"
	"github.com/dropDatabas3/partnerdesk/internal/security/password"
	"github.com/dropDatabas3/partnerdesk/internal/store/memory"
	"github.com/dropDatabas3/partnerdesk/internal/token"
)

type apiFixture struct {
	handler http.Handler
	store   *memory.Store
	tokens  *token.Service
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	tokens, err := token.New(
		[]byte("test-access-secret-0123456789ab"),
		[]byte("test-refresh-secret-0123456789a"),
	)
	require.NoError(t, err)

	st := memory.New()

	loginSvc := authsvc.NewLoginService(authsvc.LoginDeps{Users: st.Users(), Tokens: tokens})
	refreshSvc := authsvc.NewRefreshService(authsvc.RefreshDeps{Users: st.Users(), Tokens: tokens})

	handler := NewRouter(RouterDeps{
		Auth:   authctl.NewControllers(loginSvc, refreshSvc),
		Posts:  postsctl.NewController(postssvc.NewService(st.Posts())),
		Admin:  adminctl.NewUsersController(adminsvc.NewUsersService(st.Users())),
		Health: healthctl.NewController(st, "test"),
		Tokens: tokens,
		Users:  st.Users(),
	})

	return &apiFixture{handler: handler, store: st, tokens: tokens}
}

func (f *apiFixture) addUser(t *testing.T, email string, role repository.Role) *repository.User {
	t.Helper()
	hash, err := password.Hash(password.Params{Memory: 8 * 1024, Time: 1, Parallelism: 1, KeyLen: 32}, "test-password-1")
	require.NoError(t, err)
	u, err := f.store.Users().Create(context.Background(), repository.CreateUserInput{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	})
	require.NoError(t, err)
	return u
}

func (f *apiFixture) request(t *testing.T, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func (f *apiFixture) accessTokenFor(t *testing.T, u *repository.User) string {
	t.Helper()
	raw, err := f.tokens.IssueAccess(u)
	require.NoError(t, err)
	return raw
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.True(t, envelope.Success)
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Error.Code
}

func TestLoginAndMeFlow(t *testing.T) {
	f := newAPIFixture(t)
	f.addUser(t, "staff@example.com", repository.RoleStaff)

	rec := f.request(t, http.MethodPost, "/v1/auth/login", "", map[string]string{
		"email":    "staff@example.com",
		"password": "test-password-1",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var login struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
		User         struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	decodeData(t, rec, &login)
	assert.Equal(t, "STAFF", login.User.Role)
	require.NotEmpty(t, login.AccessToken)

	rec = f.request(t, http.MethodGet, "/v1/auth/me", login.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var me struct {
		Email string `json:"email"`
	}
	decodeData(t, rec, &me)
	assert.Equal(t, "staff@example.com", me.Email)
}

func TestLoginBadCredentialsOverWire(t *testing.T) {
	f := newAPIFixture(t)
	f.addUser(t, "staff@example.com", repository.RoleStaff)

	rec := f.request(t, http.MethodPost, "/v1/auth/login", "", map[string]string{
		"email":    "staff@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, rec))
}

func TestRefreshOverWire(t *testing.T) {
	f := newAPIFixture(t)
	f.addUser(t, "staff@example.com", repository.RoleStaff)

	rec := f.request(t, http.MethodPost, "/v1/auth/login", "", map[string]string{
		"email": "staff@example.com", "password": "test-password-1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var login struct {
		RefreshToken string `json:"refreshToken"`
	}
	decodeData(t, rec, &login)

	rec = f.request(t, http.MethodPost, "/v1/auth/refresh", "", map[string]string{
		"refreshToken": login.RefreshToken,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var refreshed struct {
		AccessToken string `json:"accessToken"`
	}
	decodeData(t, rec, &refreshed)
	assert.NotEmpty(t, refreshed.AccessToken)

	// missing field is a 400, not a 401
	rec = f.request(t, http.MethodPost, "/v1/auth/refresh", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "MISSING_REFRESH_TOKEN", errorCode(t, rec))
}

func TestPostRoleMatrixOverWire(t *testing.T) {
	f := newAPIFixture(t)
	staff := f.addUser(t, "staff@example.com", repository.RoleStaff)
	member := f.addUser(t, "member@example.com", repository.RoleMember)
	admin := f.addUser(t, "admin@example.com", repository.RoleAdmin)

	staffTok := f.accessTokenFor(t, staff)
	memberTok := f.accessTokenFor(t, member)
	adminTok := f.accessTokenFor(t, admin)

	// staff creates a draft attributed to themselves
	rec := f.request(t, http.MethodPost, "/v1/posts", staffTok, map[string]string{
		"title": "Draft news", "content": "soon",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID       string `json:"id"`
		AuthorID string `json:"authorId"`
		Status   string `json:"status"`
	}
	decodeData(t, rec, &created)
	assert.Equal(t, staff.ID, created.AuthorID)
	assert.Equal(t, "DRAFT", created.Status)

	// member cannot create
	rec = f.request(t, http.MethodPost, "/v1/posts", memberTok, map[string]string{
		"title": "nope", "content": "nope",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "INSUFFICIENT_PERMISSIONS", errorCode(t, rec))

	// member cannot see the draft
	rec = f.request(t, http.MethodGet, "/v1/posts/"+created.ID, memberTok, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// staff cannot delete, even their own post
	rec = f.request(t, http.MethodDelete, "/v1/posts/"+created.ID, staffTok, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "INSUFFICIENT_PERMISSIONS", errorCode(t, rec))

	// admin publishes it, member can now read it
	rec = f.request(t, http.MethodPut, "/v1/posts/"+created.ID, adminTok, map[string]string{
		"status": "PUBLISHED",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.request(t, http.MethodGet, "/v1/posts/"+created.ID, memberTok, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// admin deletes
	rec = f.request(t, http.MethodDelete, "/v1/posts/"+created.ID, adminTok, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.request(t, http.MethodGet, "/v1/posts/"+created.ID, adminTok, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	f := newAPIFixture(t)
	staff := f.addUser(t, "staff@example.com", repository.RoleStaff)
	owner := f.addUser(t, "owner@example.com", repository.RoleOwner)

	rec := f.request(t, http.MethodGet, "/v1/admin/users", f.accessTokenFor(t, staff), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.request(t, http.MethodGet, "/v1/admin/users", f.accessTokenFor(t, owner), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// unauthenticated request never reaches the role check
	rec = f.request(t, http.MethodGet, "/v1/admin/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "MISSING_TOKEN", errorCode(t, rec))
}

func TestAdminUserLifecycleOverWire(t *testing.T) {
	f := newAPIFixture(t)
	admin := f.addUser(t, "admin@example.com", repository.RoleAdmin)
	adminTok := f.accessTokenFor(t, admin)

	rec := f.request(t, http.MethodPost, "/v1/admin/users", adminTok, map[string]any{
		"email": "new@example.com", "password": "longenough1", "role": "MEMBER",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID string `json:"id"`
	}
	decodeData(t, rec, &created)

	// duplicate email conflicts
	rec = f.request(t, http.MethodPost, "/v1/admin/users", adminTok, map[string]any{
		"email": "new@example.com", "password": "longenough1", "role": "MEMBER",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "EMAIL_EXISTS", errorCode(t, rec))

	// self-deletion is rejected
	rec = f.request(t, http.MethodDelete, "/v1/admin/users/"+admin.ID, adminTok, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.request(t, http.MethodDelete, "/v1/admin/users/"+created.ID, adminTok, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.request(t, http.MethodDelete, "/v1/admin/users/"+created.ID, adminTok, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthEndpoints(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.request(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.request(t, http.MethodGet, "/readyz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUnknownRouteEnvelope(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.request(t, http.MethodGet, "/v1/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, rec))
}
