package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/afero"

	"github.com/deoxyribo/limeblog/internal/models"
	"github.com/deoxyribo/limeblog/internal/store"
)

// ErrInvalidCredentials is returned for both unknown users and wrong
// passwords so a caller cannot tell the two apart.
var ErrInvalidCredentials = errors.New("invalid username or password")

// SecretKeyFileName is the signing key file under the data dir.
const SecretKeyFileName = ".secret_key"

// ==========================
// Authorizer
// ==========================

// Authorizer issues and resolves session tokens backed by the credential
// store. Tokens are HS256 JWTs carrying only the username and an expiry;
// Logout adds a token to an in-memory revocation set that is pruned as
// entries expire.
type Authorizer struct {
	users  *store.UserStore
	secret []byte
	ttl    time.Duration

	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewAuthorizer(users *store.UserStore, secret []byte, ttl time.Duration) *Authorizer {
	return &Authorizer{
		users:   users,
		secret:  secret,
		ttl:     ttl,
		revoked: make(map[string]time.Time),
	}
}

// ==========================
// Login
// ==========================

// Login verifies the password against the stored salt and hash and returns a
// signed session token bound to the username.
func (a *Authorizer) Login(username, password string) (string, error) {
	username = strings.TrimSpace(username)
	user, err := a.users.GetByUsername(username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !VerifyPassword(password, user.PasswordHash, user.Salt) {
		return "", ErrInvalidCredentials
	}

	exp := time.Now().Add(a.ttl)
	claims := jwt.MapClaims{
		"username": user.Username,
		"exp":      exp.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ==========================
// Resolve
// ==========================

// Resolve maps a session token back to its user record. A missing, expired,
// revoked, or otherwise invalid token resolves to anonymous (nil user, nil
// error); only credential-store failures surface as errors.
func (a *Authorizer) Resolve(tokenStr string) (*models.User, error) {
	if tokenStr == "" || a.isRevoked(tokenStr) {
		return nil, nil
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, nil
	}
	username, _ := claims["username"].(string)
	if username == "" {
		return nil, nil
	}

	user, err := a.users.GetByUsername(username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// User deleted since the token was issued.
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// ==========================
// Logout
// ==========================

// Logout invalidates the token until its natural expiry.
func (a *Authorizer) Logout(tokenStr string) {
	if tokenStr == "" {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pruneLocked()
	a.revoked[tokenStr] = time.Now().Add(a.ttl)
}

func (a *Authorizer) isRevoked(tokenStr string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pruneLocked()
	_, ok := a.revoked[tokenStr]
	return ok
}

func (a *Authorizer) pruneLocked() {
	now := time.Now()
	for tok, exp := range a.revoked {
		if now.After(exp) {
			delete(a.revoked, tok)
		}
	}
}

// ==========================
// Secret key
// ==========================

// LoadOrCreateSecret returns the persistent signing key from
// <dataDir>/.secret_key, generating a random 32-byte key on first use so
// sessions survive restarts.
func LoadOrCreateSecret(fs afero.Fs, dataDir string) ([]byte, error) {
	path := filepath.Join(dataDir, SecretKeyFileName)
	ok, err := afero.Exists(fs, path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if ok {
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return []byte(strings.TrimSpace(string(data))), nil
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("generate secret key: %w", err)
	}
	key := hex.EncodeToString(raw)
	if err := fs.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dataDir, err)
	}
	if err := afero.WriteFile(fs, path, []byte(key), 0o600); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	return []byte(key), nil
}
