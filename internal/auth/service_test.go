package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestService(t *testing.T) (*Service, *InMemoryStore) {
	t.Helper()
	codec, err := NewCodec("access-secret", "refresh-secret")
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	store := NewInMemoryStore()
	return NewService(store, codec), store
}

func TestSignupCreatesPrincipalWithStoredRefreshToken(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	session, err := svc.Signup(ctx, "A", "a@x.com", "Passw0rd")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if session.User.ID == "" || session.User.Name != "A" || session.User.Email != "a@x.com" {
		t.Fatalf("unexpected profile: %+v", session.User)
	}
	if session.Tokens.AccessToken == "" || session.Tokens.RefreshToken == "" {
		t.Fatal("expected both tokens issued")
	}

	user, err := store.Find(ctx, session.User.ID)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if user.RefreshToken != session.Tokens.RefreshToken {
		t.Fatal("stored refresh token does not match the returned one")
	}
	if user.PasswordHash == "Passw0rd" || user.PasswordHash == "" {
		t.Fatal("password must be stored hashed")
	}

	// The stored refresh token verifies against the codec.
	if _, err := svc.codec.Verify(user.RefreshToken, TokenKindRefresh); err != nil {
		t.Fatalf("stored refresh token does not verify: %v", err)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, "A", "a@x.com", "Passw0rd"); err != nil {
		t.Fatalf("Signup: %v", err)
	}
	// Replaying the identical signup fails, regardless of password.
	if _, err := svc.Signup(ctx, "A", "a@x.com", "Passw0rd"); !errors.Is(err, ErrDuplicateAccount) {
		t.Fatalf("expected ErrDuplicateAccount, got %v", err)
	}
	if _, err := svc.Signup(ctx, "B", "A@X.COM", "OtherPass1"); !errors.Is(err, ErrDuplicateAccount) {
		t.Fatalf("expected ErrDuplicateAccount for case-variant email, got %v", err)
	}
}

func TestLoginDoesNotLeakWhichCheckFailed(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, "A", "a@x.com", "Passw0rd"); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	_, errUnknown := svc.Login(ctx, "nobody@x.com", "Passw0rd")
	_, errWrongPass := svc.Login(ctx, "a@x.com", "WrongPass1")
	if !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", errUnknown)
	}
	if !errors.Is(errWrongPass, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errWrongPass)
	}
	if errUnknown.Error() != errWrongPass.Error() {
		t.Fatal("unknown email and wrong password must be indistinguishable")
	}
}

func TestLoginRevokesPriorRefreshToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Signup(ctx, "A", "a@x.com", "Passw0rd")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	second, err := svc.Login(ctx, "a@x.com", "Passw0rd")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if first.Tokens.RefreshToken == second.Tokens.RefreshToken {
		t.Fatal("login must issue a fresh refresh token")
	}

	// The superseded refresh token is cryptographically valid but revoked.
	if _, _, err := svc.Refresh(ctx, first.Tokens.RefreshToken); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken for superseded token, got %v", err)
	}

	// The current one is accepted and yields a new access token.
	access, expiresAt, err := svc.Refresh(ctx, second.Tokens.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if access == "" || !expiresAt.After(time.Now()) {
		t.Fatalf("unexpected refresh result: %q %v", access, expiresAt)
	}
}

func TestRefreshDoesNotRotateRefreshToken(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	session, err := svc.Signup(ctx, "A", "a@x.com", "Passw0rd")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}

	if _, _, err := svc.Refresh(ctx, session.Tokens.RefreshToken); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	// The same refresh token stays usable until the next login.
	if _, _, err := svc.Refresh(ctx, session.Tokens.RefreshToken); err != nil {
		t.Fatalf("second Refresh: %v", err)
	}
	user, err := store.Find(ctx, session.User.ID)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if user.RefreshToken != session.Tokens.RefreshToken {
		t.Fatal("refresh must not rotate the stored refresh token")
	}
}

func TestRefreshRejections(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.Refresh(ctx, ""); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
	if _, _, err := svc.Refresh(ctx, "garbage"); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}

	// An access token presented as a refresh token is rejected.
	session, err := svc.Signup(ctx, "A", "a@x.com", "Passw0rd")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if _, _, err := svc.Refresh(ctx, session.Tokens.AccessToken); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}

	// A valid token whose stored slot was cleared is rejected the same way.
	user, _ := store.Find(ctx, session.User.ID)
	user.RefreshToken = ""
	if err := store.Save(ctx, user); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, _, err := svc.Refresh(ctx, session.Tokens.RefreshToken); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken for cleared slot, got %v", err)
	}
}

func TestAuthenticateResolvesPrincipal(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	session, err := svc.Signup(ctx, "A", "a@x.com", "Passw0rd")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}

	user, err := svc.Authenticate(ctx, session.Tokens.AccessToken)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user.ID != session.User.ID {
		t.Fatalf("unexpected principal: %s", user.ID)
	}

	if _, err := svc.Authenticate(ctx, session.Tokens.RefreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("refresh token at the gate: expected ErrInvalidToken, got %v", err)
	}

	// Deleted account: token still verifies but resolution fails.
	store.mu.Lock()
	delete(store.users, session.User.ID)
	store.mu.Unlock()
	if _, err := svc.Authenticate(ctx, session.Tokens.AccessToken); !errors.Is(err, ErrPrincipalNotFound) {
		t.Fatalf("expected ErrPrincipalNotFound, got %v", err)
	}
}
