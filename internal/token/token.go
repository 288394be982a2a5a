// Package token implements the two-class (access/refresh) JWT service.
//
// Tokens are HS256-signed with a distinct secret per class, so a leaked
// refresh secret cannot forge access tokens and vice versa. There is no
// revocation store: validity is entirely signature + expiry (stateless).
package token

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	"github.com/dropDatabas3/partnerdesk/internal/domain/repository"
)

var (
	// ErrExpired indicates the token's expiry has elapsed.
	ErrExpired = errors.New("token expired")

	// ErrInvalid indicates a bad signature, malformed payload or wrong
	// token class.
	ErrInvalid = errors.New("token invalid")
)

const (
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour

	// leeway tolerated when validating exp/nbf
	clockSkew = 30 * time.Second
)

// Claims is the session claim minted at issue time: identity plus role,
// derived from the user record and never re-read until refresh.
type Claims struct {
	jwtv5.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Pair holds the two tokens minted at login.
type Pair struct {
	AccessToken  string
	RefreshToken string
	// ExpiresIn is the access token lifetime in seconds, for the response.
	ExpiresIn int64
}

// Service issues and verifies signed session tokens. It owns no state
// beyond its secrets; it is a pure function of secret + claims + clock.
type Service struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration

	// now is swappable for tests
	now func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithTTLs overrides the default 15m/7d lifetimes.
func WithTTLs(access, refresh time.Duration) Option {
	return func(s *Service) {
		if access > 0 {
			s.accessTTL = access
		}
		if refresh > 0 {
			s.refreshTTL = refresh
		}
	}
}

// WithClock overrides the clock. Tests only.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a token service. The two secrets must differ.
func New(accessSecret, refreshSecret []byte, opts ...Option) (*Service, error) {
	if len(accessSecret) == 0 || len(refreshSecret) == 0 {
		return nil, errors.New("token: empty secret")
	}
	if string(accessSecret) == string(refreshSecret) {
		return nil, errors.New("token: access and refresh secrets must differ")
	}
	s := &Service{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessTTL:     DefaultAccessTTL,
		refreshTTL:    DefaultRefreshTTL,
		now:           time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// AccessTTL returns the configured access token lifetime.
func (s *Service) AccessTTL() time.Duration { return s.accessTTL }

// Issue mints an access/refresh pair for the given user. Both tokens carry
// the same claim shape; only TTL and signing secret differ.
func (s *Service) Issue(u *repository.User) (Pair, error) {
	access, err := s.sign(u, s.accessSecret, s.accessTTL)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := s.sign(u, s.refreshSecret, s.refreshTTL)
	if err != nil {
		return Pair{}, err
	}
	return Pair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.accessTTL / time.Second),
	}, nil
}

// IssueAccess mints a new access token only, for the refresh flow. The
// presented refresh token is not rotated (see the service docs for the
// replay-window trade-off).
func (s *Service) IssueAccess(u *repository.User) (string, error) {
	return s.sign(u, s.accessSecret, s.accessTTL)
}

// VerifyAccess validates an access token and returns its claims.
// Fails with ErrExpired when the expiry elapsed, ErrInvalid otherwise.
func (s *Service) VerifyAccess(raw string) (*Claims, error) {
	return s.verify(raw, s.accessSecret)
}

// VerifyRefresh validates a refresh token and returns its claims.
func (s *Service) VerifyRefresh(raw string) (*Claims, error) {
	return s.verify(raw, s.refreshSecret)
}

func (s *Service) sign(u *repository.User, secret []byte, ttl time.Duration) (string, error) {
	now := s.now().UTC()
	claims := Claims{
		RegisteredClaims: jwtv5.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwtv5.NewNumericDate(now),
			NotBefore: jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(ttl)),
		},
		Email: u.Email,
		Role:  u.Role.String(),
	}
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	tk.Header["typ"] = "JWT"
	return tk.SignedString(secret)
}

func (s *Service) verify(raw string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	tk, err := jwtv5.ParseWithClaims(raw, claims,
		func(t *jwtv5.Token) (any, error) { return secret, nil },
		jwtv5.WithValidMethods([]string{"HS256"}),
		jwtv5.WithLeeway(clockSkew),
		jwtv5.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}
	if !tk.Valid || claims.Subject == "" {
		return nil, ErrInvalid
	}
	return claims, nil
}
