// Package store implements the file-backed persistence layer: posts and
// users live in indented JSON files that are reloaded and fully rewritten
// on every mutation, and uploaded hero images live as blobs next to them.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/deoxyribo/limeblog/internal/metrics"
)

// ErrNotFound is returned when a slug or username does not exist.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned (wrapped) when required input fields are missing.
var ErrValidation = errors.New("validation failed")

// PostsFileName and UsersFileName are the collection files under the data dir.
const (
	PostsFileName = "posts.json"
	UsersFileName = "users.json"
)

// readJSONFile decodes path into out. A missing file leaves out untouched,
// so callers start from an empty collection.
func readJSONFile(fs afero.Fs, path string, out interface{}) error {
	ok, err := afero.Exists(fs, path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if !ok {
		return nil
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// writeJSONFile rewrites path with the indented JSON encoding of v.
// The content goes to a temp file first and is renamed over the original so
// a crash mid-write cannot leave a half-written collection behind.
func writeJSONFile(fs afero.Fs, path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	tmp := path + ".tmp"
	if err := afero.WriteFile(fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := fs.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	metrics.IncStoreRewrite(filepath.Base(path))
	return nil
}
