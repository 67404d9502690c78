// Package backup periodically snapshots the JSON data files. The
// whole-collection rewrite persistence has an accepted crash window where a
// partial write corrupts the file; timestamped copies bound the damage.
package backup

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/afero"

	"github.com/deoxyribo/limeblog/internal/store"
)

// keepPerFile is how many snapshots of each data file are retained.
const keepPerFile = 10

const backupsDirName = "backups"

// Runner copies posts.json and users.json into <data>/backups on a cron
// schedule.
type Runner struct {
	fs      afero.Fs
	dataDir string
	cron    *cron.Cron
}

func New(fs afero.Fs, dataDir, schedule string) (*Runner, error) {
	r := &Runner{fs: fs, dataDir: dataDir, cron: cron.New()}
	if _, err := r.cron.AddFunc(schedule, r.Snapshot); err != nil {
		return nil, fmt.Errorf("parse backup schedule %q: %w", schedule, err)
	}
	return r, nil
}

func (r *Runner) Start() { r.cron.Start() }

func (r *Runner) Stop() { r.cron.Stop() }

// Snapshot copies each data file that exists into the backups dir and prunes
// old copies. Failures are logged, never fatal; the next run tries again.
func (r *Runner) Snapshot() {
	ts := time.Now().UTC().Format("20060102T150405Z")
	for _, name := range []string{store.PostsFileName, store.UsersFileName} {
		if err := r.snapshotFile(name, ts); err != nil {
			slog.Error("backup failed", "file", name, "error", err)
			continue
		}
		if err := r.prune(name); err != nil {
			slog.Error("backup prune failed", "file", name, "error", err)
		}
	}
}

func (r *Runner) snapshotFile(name, ts string) error {
	src := filepath.Join(r.dataDir, name)
	ok, err := afero.Exists(r.fs, src)
	if err != nil || !ok {
		return err
	}
	data, err := afero.ReadFile(r.fs, src)
	if err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}
	dir := filepath.Join(r.dataDir, backupsDirName)
	if err := r.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	dst := filepath.Join(dir, name+"."+ts)
	if err := afero.WriteFile(r.fs, dst, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}
	slog.Info("backup written", "file", name, "snapshot", dst)
	return nil
}

// prune removes the oldest snapshots of name beyond keepPerFile. Snapshot
// names embed a UTC timestamp, so lexicographic order is age order.
func (r *Runner) prune(name string) error {
	dir := filepath.Join(r.dataDir, backupsDirName)
	infos, err := afero.ReadDir(r.fs, dir)
	if err != nil {
		return err
	}
	var snaps []string
	for _, fi := range infos {
		if !fi.IsDir() && strings.HasPrefix(fi.Name(), name+".") {
			snaps = append(snaps, fi.Name())
		}
	}
	if len(snaps) <= keepPerFile {
		return nil
	}
	sort.Strings(snaps)
	for _, old := range snaps[:len(snaps)-keepPerFile] {
		if err := r.fs.Remove(filepath.Join(dir, old)); err != nil {
			return err
		}
	}
	return nil
}
