package auth

import (
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/deoxyribo/limeblog/internal/models"
	"github.com/deoxyribo/limeblog/internal/store"
)

func newTestAuthorizer(t *testing.T, ttl time.Duration) (*Authorizer, *store.UserStore) {
	t.Helper()
	fs := afero.NewMemMapFs()
	users := store.NewUserStore(fs, "data")

	salt, err := NewSalt()
	if err != nil {
		t.Fatalf("NewSalt: %v", err)
	}
	err = users.Save([]models.User{{
		Username:     "alice",
		DisplayName:  "Alice",
		PasswordHash: HashPassword("hunter2", salt),
		Salt:         salt,
	}})
	if err != nil {
		t.Fatalf("seed users: %v", err)
	}
	return NewAuthorizer(users, []byte("test-secret"), ttl), users
}

func TestLoginAndResolve(t *testing.T) {
	a, _ := newTestAuthorizer(t, time.Hour)

	token, err := a.Login("alice", "hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("Login returned empty token")
	}

	user, err := a.Resolve(token)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if user == nil || user.Username != "alice" {
		t.Errorf("Resolve: got %+v, want alice", user)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	a, _ := newTestAuthorizer(t, time.Hour)

	if _, err := a.Login("alice", "wrong"); err != ErrInvalidCredentials {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
}

func TestLogin_UnknownUserSameError(t *testing.T) {
	a, _ := newTestAuthorizer(t, time.Hour)

	_, errUnknown := a.Login("nobody", "hunter2")
	_, errWrong := a.Login("alice", "wrong")
	if errUnknown != ErrInvalidCredentials || errWrong != ErrInvalidCredentials {
		t.Fatalf("got %v and %v, want ErrInvalidCredentials twice", errUnknown, errWrong)
	}
	// A caller must not be able to tell the two apart.
	if errUnknown.Error() != errWrong.Error() {
		t.Error("unknown-user and wrong-password errors differ")
	}
}

func TestResolve_Anonymous(t *testing.T) {
	a, _ := newTestAuthorizer(t, time.Hour)

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		user, err := a.Resolve(tok)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", tok, err)
		}
		if user != nil {
			t.Errorf("Resolve(%q) = %+v, want anonymous", tok, user)
		}
	}
}

func TestResolve_ExpiredToken(t *testing.T) {
	a, _ := newTestAuthorizer(t, -time.Minute)

	token, err := a.Login("alice", "hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	user, err := a.Resolve(token)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if user != nil {
		t.Error("expired token resolved to a user")
	}
}

func TestResolve_DeletedUser(t *testing.T) {
	a, users := newTestAuthorizer(t, time.Hour)

	token, err := a.Login("alice", "hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := users.Save([]models.User{}); err != nil {
		t.Fatalf("clear users: %v", err)
	}
	user, err := a.Resolve(token)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if user != nil {
		t.Error("token for deleted user resolved to a user")
	}
}

func TestLogout_RevokesToken(t *testing.T) {
	a, _ := newTestAuthorizer(t, time.Hour)

	token, err := a.Login("alice", "hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	a.Logout(token)

	user, err := a.Resolve(token)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if user != nil {
		t.Error("revoked token still resolves")
	}
}

func TestLoadOrCreateSecret_Persists(t *testing.T) {
	fs := afero.NewMemMapFs()

	first, err := LoadOrCreateSecret(fs, "data")
	if err != nil {
		t.Fatalf("LoadOrCreateSecret: %v", err)
	}
	if len(first) != 64 {
		t.Errorf("secret length: got %d, want 64 hex chars", len(first))
	}
	second, err := LoadOrCreateSecret(fs, "data")
	if err != nil {
		t.Fatalf("LoadOrCreateSecret (second): %v", err)
	}
	if string(first) != string(second) {
		t.Error("secret changed between loads")
	}
}
