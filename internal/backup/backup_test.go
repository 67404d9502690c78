package backup

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/deoxyribo/limeblog/internal/store"
)

func TestSnapshot(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, filepath.Join("data", store.PostsFileName), []byte("[]"), 0o644); err != nil {
		t.Fatalf("seed posts.json: %v", err)
	}

	r, err := New(fs, "data", "@daily")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r.Snapshot()

	infos, err := afero.ReadDir(fs, filepath.Join("data", backupsDirName))
	if err != nil {
		t.Fatalf("read backups dir: %v", err)
	}
	var found bool
	for _, fi := range infos {
		if strings.HasPrefix(fi.Name(), store.PostsFileName+".") {
			found = true
			data, err := afero.ReadFile(fs, filepath.Join("data", backupsDirName, fi.Name()))
			if err != nil {
				t.Fatalf("read snapshot: %v", err)
			}
			if string(data) != "[]" {
				t.Errorf("snapshot content: got %q", data)
			}
		}
		if strings.HasPrefix(fi.Name(), store.UsersFileName+".") {
			t.Error("snapshot of missing users.json created")
		}
	}
	if !found {
		t.Error("no posts.json snapshot written")
	}
}

func TestNew_BadSchedule(t *testing.T) {
	fs := afero.NewMemMapFs()
	if _, err := New(fs, "data", "not a cron expression"); err == nil {
		t.Error("want error for invalid schedule")
	}
}

func TestPrune(t *testing.T) {
	fs := afero.NewMemMapFs()
	dir := filepath.Join("data", backupsDirName)
	for i := 0; i < keepPerFile+5; i++ {
		name := fmt.Sprintf("%s.20250101T%06dZ", store.PostsFileName, i)
		if err := afero.WriteFile(fs, filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("seed snapshot: %v", err)
		}
	}
	// Snapshots of another file are not counted against the limit.
	other := store.UsersFileName + ".20250101T000000Z"
	if err := afero.WriteFile(fs, filepath.Join(dir, other), []byte("x"), 0o644); err != nil {
		t.Fatalf("seed snapshot: %v", err)
	}

	r := &Runner{fs: fs, dataDir: "data"}
	if err := r.prune(store.PostsFileName); err != nil {
		t.Fatalf("prune: %v", err)
	}

	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		t.Fatalf("read backups dir: %v", err)
	}
	var kept []string
	for _, fi := range infos {
		if strings.HasPrefix(fi.Name(), store.PostsFileName+".") {
			kept = append(kept, fi.Name())
		}
	}
	if len(kept) != keepPerFile {
		t.Fatalf("kept %d snapshots, want %d", len(kept), keepPerFile)
	}
	// Oldest ones go first.
	for _, name := range kept {
		if name < fmt.Sprintf("%s.20250101T%06dZ", store.PostsFileName, 5) {
			t.Errorf("old snapshot %s survived prune", name)
		}
	}
	if ok, _ := afero.Exists(fs, filepath.Join(dir, other)); !ok {
		t.Error("unrelated snapshot removed")
	}
}
