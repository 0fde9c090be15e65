package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/toonami2907/showcase-api/internal/ids"
)

// Service owns the credential lifecycle: signup, login and refresh-token
// exchange. It is the component that enforces the single-active-refresh-token
// invariant; all session state lives in the UserStore, accessed per request.
type Service struct {
	store UserStore
	codec *Codec
	now   func() time.Time
}

// ServiceOption configures Service behavior.
type ServiceOption func(*Service)

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) ServiceOption {
	return func(s *Service) {
		if fn != nil {
			s.now = fn
		}
	}
}

// NewService constructs the session manager on top of a store and codec.
func NewService(store UserStore, codec *Codec, opts ...ServiceOption) *Service {
	svc := &Service{
		store: store,
		codec: codec,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// TokenPair carries the freshly issued tokens and their expirations.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// Session is the result of a successful signup or login.
type Session struct {
	Tokens TokenPair
	User   Profile
}

// Signup creates a new account and opens its first session. Fails with
// ErrDuplicateAccount when the email is already taken. The user row and its
// refresh token are written in a single Create, so returned tokens always
// have a stored counterpart.
func (s *Service) Signup(ctx context.Context, name, email, password string) (Session, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return Session{}, ErrInvalidCredentials
	}

	_, err := s.store.FindByEmail(ctx, email)
	if err == nil {
		return Session{}, ErrDuplicateAccount
	}
	if !errors.Is(err, ErrNotFound) {
		return Session{}, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return Session{}, err
	}

	now := s.now().UTC()
	user := &User{
		ID:           ids.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	pair, err := s.mintPair(user.ID)
	if err != nil {
		return Session{}, err
	}
	user.RefreshToken = pair.RefreshToken

	if err := s.store.Create(ctx, user); err != nil {
		// Unique-email race between the lookup above and the insert.
		if errors.Is(err, ErrAlreadyExists) {
			return Session{}, ErrDuplicateAccount
		}
		return Session{}, err
	}
	return Session{Tokens: pair, User: user.Profile()}, nil
}

// Login verifies credentials and opens a new session. An unknown email and a
// wrong password yield the same ErrInvalidCredentials so callers cannot
// enumerate accounts. Persisting the new refresh token overwrites the single
// slot and revokes any previously issued refresh token for this account.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return Session{}, ErrInvalidCredentials
	}

	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}
	if err := VerifyPassword(user.PasswordHash, password); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	pair, err := s.mintPair(user.ID)
	if err != nil {
		return Session{}, err
	}
	user.RefreshToken = pair.RefreshToken
	user.UpdatedAt = s.now().UTC()

	if err := s.store.Save(ctx, user); err != nil {
		return Session{}, err
	}
	return Session{Tokens: pair, User: user.Profile()}, nil
}

// Refresh exchanges a refresh token for a new access token. The presented
// token must verify cryptographically, belong to an existing account and be
// byte-equal to that account's stored refresh token — a token superseded by a
// newer login is rejected even when its signature is still valid. The refresh
// token itself is not rotated: it stays usable until the next login replaces
// it.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, time.Time, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return "", time.Time{}, ErrMissingToken
	}

	subject, err := s.codec.Verify(refreshToken, TokenKindRefresh)
	if err != nil {
		return "", time.Time{}, ErrInvalidRefreshToken
	}

	user, err := s.store.Find(ctx, subject)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", time.Time{}, ErrInvalidRefreshToken
		}
		return "", time.Time{}, err
	}
	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		return "", time.Time{}, ErrInvalidRefreshToken
	}

	return s.codec.IssueAccess(user.ID)
}

// Authenticate resolves an access token into its principal. Used by the HTTP
// auth gate; token failures keep their codec sentinel so the gate can log
// expiry separately, a vanished account maps to ErrPrincipalNotFound.
func (s *Service) Authenticate(ctx context.Context, accessToken string) (User, error) {
	subject, err := s.codec.Verify(accessToken, TokenKindAccess)
	if err != nil {
		return User{}, err
	}
	user, err := s.store.Find(ctx, subject)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrPrincipalNotFound
		}
		return User{}, err
	}
	return *user, nil
}

func (s *Service) mintPair(userID string) (TokenPair, error) {
	access, accessExp, err := s.codec.IssueAccess(userID)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, refreshExp, err := s.codec.IssueRefresh(userID)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}
