package store

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"github.com/deoxyribo/limeblog/internal/models"
)

// ==========================
// UserStore
// ==========================

// UserStore is a thin accessor over users.json. The running server only ever
// reads it; Save exists for the offline CLI (seed, users create).
type UserStore struct {
	fs   afero.Fs
	path string
	mu   sync.Mutex
}

func NewUserStore(fs afero.Fs, dataDir string) *UserStore {
	return &UserStore{
		fs:   fs,
		path: filepath.Join(dataDir, UsersFileName),
	}
}

// ==========================
// List Users
// ==========================

func (s *UserStore) List() ([]models.User, error) {
	users := []models.User{}
	if err := readJSONFile(s.fs, s.path, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ==========================
// Get By Username
// ==========================

func (s *UserStore) GetByUsername(username string) (models.User, error) {
	users, err := s.List()
	if err != nil {
		return models.User{}, err
	}
	for _, u := range users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, fmt.Errorf("user %q: %w", username, ErrNotFound)
}

// ==========================
// Save (offline tooling only)
// ==========================

// Save rewrites the whole user list. Runtime handlers never call this.
func (s *UserStore) Save(users []models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSONFile(s.fs, s.path, users)
}
