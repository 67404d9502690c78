package store

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/deoxyribo/limeblog/internal/models"
)

func newTestPostStore(t *testing.T) (*PostStore, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	s := NewPostStore(fs, "data", "uploads")
	return s, fs
}

func TestCreateAndGet(t *testing.T) {
	s, _ := newTestPostStore(t)
	ctx := context.Background()

	post, err := s.Create(ctx, PostInput{
		Title: "Hello, World!",
		Body:  "Some body text.",
		Tags:  []string{"go", "web"},
	}, "Alice")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if post.Slug != "hello-world" {
		t.Errorf("slug: got %q, want %q", post.Slug, "hello-world")
	}
	if post.Author != "Alice" {
		t.Errorf("author: got %q", post.Author)
	}
	if post.Created != post.Updated {
		t.Errorf("created %q != updated %q on create", post.Created, post.Updated)
	}
	if _, err := time.Parse(time.RFC3339, post.Created); err != nil {
		t.Errorf("created not RFC 3339: %v", err)
	}
	if post.ReadTime != 1 {
		t.Errorf("read_time: got %d, want 1", post.ReadTime)
	}

	got, err := s.GetBySlug(ctx, "hello-world")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if got.Title != post.Title || got.Body != post.Body {
		t.Errorf("round-trip mismatch: %+v", got)
	}
}

func TestCreate_Validation(t *testing.T) {
	s, _ := newTestPostStore(t)
	ctx := context.Background()

	cases := []PostInput{
		{Title: "", Body: "body"},
		{Title: "title", Body: ""},
		{Title: "   ", Body: "body"},
	}
	for _, in := range cases {
		if _, err := s.Create(ctx, in, "Alice"); !errors.Is(err, ErrValidation) {
			t.Errorf("Create(%+v): got %v, want ErrValidation", in, err)
		}
	}
}

func TestCreate_SlugCollision(t *testing.T) {
	s, _ := newTestPostStore(t)
	ctx := context.Background()

	first, err := s.Create(ctx, PostInput{Title: "Same Title", Body: "a"}, "Alice")
	if err != nil {
		t.Fatalf("first Create: %v", err)
	}
	second, err := s.Create(ctx, PostInput{Title: "Same Title", Body: "b"}, "Alice")
	if err != nil {
		t.Fatalf("second Create: %v", err)
	}
	if first.Slug == second.Slug {
		t.Fatalf("duplicate slug %q", first.Slug)
	}
	if !strings.HasPrefix(second.Slug, "same-title-") {
		t.Errorf("collision slug %q lacks base prefix", second.Slug)
	}
}

func TestTeaserDerivation(t *testing.T) {
	s, _ := newTestPostStore(t)
	ctx := context.Background()

	long := strings.Repeat("x", 300)
	post, err := s.Create(ctx, PostInput{Title: "Long", Body: long}, "Alice")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	want := strings.Repeat("x", 200) + "..."
	if post.Teaser != want {
		t.Errorf("derived teaser: got %d chars, want 200+ellipsis", len(post.Teaser))
	}

	post, err = s.Create(ctx, PostInput{Title: "Short", Body: "tiny", Teaser: "custom"}, "Alice")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if post.Teaser != "custom" {
		t.Errorf("supplied teaser overridden: got %q", post.Teaser)
	}
}

func TestReadTime(t *testing.T) {
	cases := []struct {
		words int
		want  int
	}{
		{0, 1},
		{50, 1},
		{200, 1},
		{300, 2},
		{1000, 5},
	}
	for _, tc := range cases {
		body := strings.TrimSpace(strings.Repeat("word ", tc.words))
		if got := ReadTime(body); got != tc.want {
			t.Errorf("ReadTime(%d words): got %d, want %d", tc.words, got, tc.want)
		}
	}
}

func TestUpdate_PreservesSlugAndCreated(t *testing.T) {
	s, _ := newTestPostStore(t)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	post, err := s.Create(ctx, PostInput{Title: "Original", Body: "body"}, "Alice")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	s.now = func() time.Time { return base.Add(time.Hour) }
	updated, err := s.Update(ctx, post.Slug, PostInput{Title: "Renamed", Body: "new body"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.Slug != post.Slug {
		t.Errorf("slug changed on update: %q -> %q", post.Slug, updated.Slug)
	}
	if updated.Created != post.Created {
		t.Errorf("created changed on update: %q -> %q", post.Created, updated.Created)
	}
	if updated.Updated == post.Updated {
		t.Error("updated timestamp not advanced")
	}
	if updated.Title != "Renamed" || updated.Body != "new body" {
		t.Errorf("fields not applied: %+v", updated)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	s, _ := newTestPostStore(t)

	_, err := s.Update(context.Background(), "missing", PostInput{Title: "t", Body: "b"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestDelete_Idempotent(t *testing.T) {
	s, _ := newTestPostStore(t)
	ctx := context.Background()

	post, err := s.Create(ctx, PostInput{Title: "Doomed", Body: "body"}, "Alice")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.Delete(ctx, post.Slug); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.GetBySlug(ctx, post.Slug); !errors.Is(err, ErrNotFound) {
		t.Errorf("post still present after delete: %v", err)
	}
	// Second delete of the same slug succeeds.
	if err := s.Delete(ctx, post.Slug); err != nil {
		t.Errorf("repeat Delete: %v", err)
	}
	if err := s.Delete(ctx, "never-existed"); err != nil {
		t.Errorf("Delete unknown slug: %v", err)
	}
}

func TestImageLifecycle(t *testing.T) {
	s, fs := newTestPostStore(t)
	ctx := context.Background()

	post, err := s.Create(ctx, PostInput{
		Title: "Pictured",
		Body:  "body",
		Image: &ImageUpload{Filename: "photo.png", Data: []byte("png-bytes")},
	}, "Alice")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if post.Image != post.Slug+".png" {
		t.Errorf("image name: got %q, want %q", post.Image, post.Slug+".png")
	}

	data, err := afero.ReadFile(fs, filepath.Join("uploads", post.Image))
	if err != nil {
		t.Fatalf("read image: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("image content: got %q", data)
	}

	// No extension on the client filename defaults to .jpg.
	post2, err := s.Create(ctx, PostInput{
		Title: "Bare Name",
		Body:  "body",
		Image: &ImageUpload{Filename: "upload", Data: []byte("jpg-bytes")},
	}, "Alice")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if post2.Image != post2.Slug+".jpg" {
		t.Errorf("default extension: got %q", post2.Image)
	}

	if err := s.Delete(ctx, post.Slug); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if ok, _ := afero.Exists(fs, filepath.Join("uploads", post.Image)); ok {
		t.Error("image file survives post delete")
	}
}

func TestPersistenceFormat(t *testing.T) {
	s, fs := newTestPostStore(t)
	ctx := context.Background()

	if _, err := s.Create(ctx, PostInput{Title: "On Disk", Body: "body"}, "Alice"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	raw, err := afero.ReadFile(fs, filepath.Join("data", PostsFileName))
	if err != nil {
		t.Fatalf("read posts.json: %v", err)
	}

	var decoded []map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("posts.json not a JSON array: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("got %d posts on disk, want 1", len(decoded))
	}
	for _, key := range []string{"title", "slug", "body", "teaser", "author", "created", "updated", "read_time"} {
		if _, ok := decoded[0][key]; !ok {
			t.Errorf("posts.json missing field %q", key)
		}
	}
	if !strings.Contains(string(raw), "\n  ") {
		t.Error("posts.json not indented")
	}

	// A fresh store over the same filesystem sees the data.
	s2 := NewPostStore(fs, "data", "uploads")
	posts, err := s2.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(posts) != 1 || posts[0].Title != "On Disk" {
		t.Errorf("reload mismatch: %+v", posts)
	}
}

func TestList_EmptyWhenFileMissing(t *testing.T) {
	s, _ := newTestPostStore(t)

	posts, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("got %d posts, want 0", len(posts))
	}
}

func TestReplace(t *testing.T) {
	s, _ := newTestPostStore(t)

	seeded := []models.Post{
		{Title: "A", Slug: "a", Body: "a", Created: "2025-01-01T00:00:00Z", Updated: "2025-01-01T00:00:00Z", ReadTime: 1},
		{Title: "B", Slug: "b", Body: "b", Created: "2025-01-02T00:00:00Z", Updated: "2025-01-02T00:00:00Z", ReadTime: 1},
	}
	if err := s.Replace(seeded); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	posts, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("got %d posts, want 2", len(posts))
	}
}
