package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/partnerdesk/internal/domain/repository"
)

var (
	accessSecret  = []byte("test-access-secret-0123456789ab")
	refreshSecret = []byte("test-refresh-secret-0123456789a")
)

func testUser() *repository.User {
	return &repository.User{
		ID:     "u1",
		Email:  "staff@example.com",
		Role:   repository.RoleStaff,
		Active: true,
	}
}

func newService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	s, err := New(accessSecret, refreshSecret, opts...)
	require.NoError(t, err)
	return s
}

func TestNewRejectsBadSecrets(t *testing.T) {
	_, err := New(nil, refreshSecret)
	require.Error(t, err)

	_, err = New(accessSecret, accessSecret)
	require.Error(t, err)
}

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	s := newService(t)
	pair, err := s.Issue(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(15*60), pair.ExpiresIn)

	// the gate must resolve the same identity embedded at issuance
	claims, err := s.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "staff@example.com", claims.Email)
	assert.Equal(t, "STAFF", claims.Role)

	rc, err := s.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", rc.Subject)
}

func TestVerifyExpired(t *testing.T) {
	now := time.Now()
	s := newService(t, WithClock(func() time.Time { return now }))

	pair, err := s.Issue(testUser())
	require.NoError(t, err)

	// jump past the access TTL plus leeway
	now = now.Add(16*time.Minute + time.Minute)
	_, err = s.VerifyAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpired)

	// refresh token (7d) is still fine
	_, err = s.VerifyRefresh(pair.RefreshToken)
	assert.NoError(t, err)

	// and past the refresh TTL it expires too
	now = now.Add(7 * 24 * time.Hour)
	_, err = s.VerifyRefresh(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestVerifyWrongSecret(t *testing.T) {
	s := newService(t)
	other, err := New([]byte("another-access-secret-xxxxxxxxx"), refreshSecret)
	require.NoError(t, err)

	pair, err := other.Issue(testUser())
	require.NoError(t, err)

	_, err = s.VerifyAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestVerifyWrongClass(t *testing.T) {
	s := newService(t)
	pair, err := s.Issue(testUser())
	require.NoError(t, err)

	// a refresh token presented as an access token fails: distinct secrets
	_, err = s.VerifyAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = s.VerifyRefresh(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestVerifyMalformed(t *testing.T) {
	s := newService(t)
	for _, raw := range []string{"", "garbage", "a.b.c"} {
		_, err := s.VerifyAccess(raw)
		assert.ErrorIs(t, err, ErrInvalid, "raw=%q", raw)
	}
}

func TestWithTTLs(t *testing.T) {
	s := newService(t, WithTTLs(time.Minute, time.Hour))
	pair, err := s.Issue(testUser())
	require.NoError(t, err)
	assert.Equal(t, int64(60), pair.ExpiresIn)
	assert.Equal(t, time.Minute, s.AccessTTL())
}
