package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"

	"github.com/deoxyribo/limeblog/internal/metrics"
	"github.com/deoxyribo/limeblog/internal/models"
	"github.com/deoxyribo/limeblog/internal/slug"
)

// teaserLen is the number of body characters used when no teaser is supplied.
const teaserLen = 200

// wordsPerMinute is the reading speed assumed for read_time.
const wordsPerMinute = 200

// ==========================
// PostStore
// ==========================

// PostStore owns the post collection in posts.json and the uploaded hero
// images next to it. Every mutation reloads the whole file, applies the
// change in memory, and rewrites the whole file; the mutex serializes those
// read-modify-write cycles within this process. Writers in other processes
// still race (last writer wins).
type PostStore struct {
	fs       afero.Fs
	path     string
	uploads  string
	mu       sync.Mutex
	validate *validator.Validate
	now      func() time.Time
}

// ImageUpload is an optional hero image attached to a create or update.
// Filename supplies the extension only; the stored name is derived from the slug.
type ImageUpload struct {
	Filename string
	Data     []byte
}

// PostInput carries the caller-supplied fields for Create and Update.
type PostInput struct {
	Title          string `validate:"required"`
	Tags           []string
	Teaser         string
	Body           string `validate:"required"`
	YouTubeURL     string
	GitHubURL      string
	HuggingFaceURL string
	TwitterURL     string
	ArxivURL       string
	Image          *ImageUpload
}

// ==========================
// Constructor
// ==========================

func NewPostStore(fs afero.Fs, dataDir, uploadsDir string) *PostStore {
	return &PostStore{
		fs:       fs,
		path:     filepath.Join(dataDir, PostsFileName),
		uploads:  uploadsDir,
		validate: validator.New(),
		now:      time.Now,
	}
}

// ==========================
// List
// ==========================

// List returns every post, unsorted. Ordering is the caller's concern.
func (s *PostStore) List(ctx context.Context) ([]models.Post, error) {
	return s.load()
}

// ==========================
// Get By Slug
// ==========================

func (s *PostStore) GetBySlug(ctx context.Context, postSlug string) (models.Post, error) {
	posts, err := s.load()
	if err != nil {
		return models.Post{}, err
	}
	for _, p := range posts {
		if p.Slug == postSlug {
			return p, nil
		}
	}
	return models.Post{}, fmt.Errorf("post %q: %w", postSlug, ErrNotFound)
}

// ==========================
// Create Post
// ==========================

// Create validates in, derives teaser/read_time/slug/timestamps, appends the
// post, writes the optional image blob, and persists the full collection.
func (s *PostStore) Create(ctx context.Context, in PostInput, author string) (models.Post, error) {
	in = trimInput(in)
	if err := s.validate.Struct(in); err != nil {
		return models.Post{}, fmt.Errorf("%w: title and body are required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.load()
	if err != nil {
		return models.Post{}, err
	}

	existing := make(map[string]bool, len(posts))
	for _, p := range posts {
		existing[p.Slug] = true
	}
	postSlug := slug.Allocate(in.Title, existing)

	imageName := ""
	if in.Image != nil && in.Image.Filename != "" {
		imageName, err = s.writeImage(postSlug, in.Image)
		if err != nil {
			return models.Post{}, err
		}
	}

	now := s.now().UTC().Format(time.RFC3339)
	post := models.Post{
		Title:          in.Title,
		Slug:           postSlug,
		Tags:           in.Tags,
		Teaser:         MakeTeaser(in.Body, in.Teaser),
		Body:           in.Body,
		Image:          imageName,
		YouTubeURL:     in.YouTubeURL,
		GitHubURL:      in.GitHubURL,
		HuggingFaceURL: in.HuggingFaceURL,
		TwitterURL:     in.TwitterURL,
		ArxivURL:       in.ArxivURL,
		Author:         author,
		Created:        now,
		Updated:        now,
		ReadTime:       ReadTime(in.Body),
	}

	posts = append(posts, post)
	if err := writeJSONFile(s.fs, s.path, posts); err != nil {
		return models.Post{}, err
	}
	metrics.IncPostMutation("create")
	return post, nil
}

// ==========================
// Update Post
// ==========================

// Update replaces the caller-supplied fields of the post named by postSlug.
// Slug and created timestamp are preserved; teaser and read_time are
// recomputed; updated is stamped with the current time. An absent image
// leaves the stored image untouched.
func (s *PostStore) Update(ctx context.Context, postSlug string, in PostInput) (models.Post, error) {
	in = trimInput(in)
	if err := s.validate.Struct(in); err != nil {
		return models.Post{}, fmt.Errorf("%w: title and body are required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.load()
	if err != nil {
		return models.Post{}, err
	}

	idx := -1
	for i, p := range posts {
		if p.Slug == postSlug {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Post{}, fmt.Errorf("post %q: %w", postSlug, ErrNotFound)
	}

	post := posts[idx]
	post.Title = in.Title
	post.Tags = in.Tags
	post.Teaser = MakeTeaser(in.Body, in.Teaser)
	post.Body = in.Body
	post.YouTubeURL = in.YouTubeURL
	post.GitHubURL = in.GitHubURL
	post.HuggingFaceURL = in.HuggingFaceURL
	post.TwitterURL = in.TwitterURL
	post.ArxivURL = in.ArxivURL
	post.Updated = s.now().UTC().Format(time.RFC3339)
	post.ReadTime = ReadTime(in.Body)

	if in.Image != nil && in.Image.Filename != "" {
		imageName, err := s.writeImage(post.Slug, in.Image)
		if err != nil {
			return models.Post{}, err
		}
		post.Image = imageName
	}

	posts[idx] = post
	if err := writeJSONFile(s.fs, s.path, posts); err != nil {
		return models.Post{}, err
	}
	metrics.IncPostMutation("update")
	return post, nil
}

// ==========================
// Delete Post
// ==========================

// Delete removes the post and its image file. Deleting an unknown slug is a
// no-op, not an error.
func (s *PostStore) Delete(ctx context.Context, postSlug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.load()
	if err != nil {
		return err
	}

	idx := -1
	for i, p := range posts {
		if p.Slug == postSlug {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	if img := posts[idx].Image; img != "" {
		if err := s.fs.Remove(filepath.Join(s.uploads, img)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove image %s: %w", img, err)
		}
	}

	posts = append(posts[:idx], posts[idx+1:]...)
	if err := writeJSONFile(s.fs, s.path, posts); err != nil {
		return err
	}
	metrics.IncPostMutation("delete")
	return nil
}

// ==========================
// Replace (offline tooling only)
// ==========================

// Replace rewrites the whole post collection. The seed command uses it to
// install demo content with back-dated timestamps; runtime handlers never
// call this.
func (s *PostStore) Replace(posts []models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSONFile(s.fs, s.path, posts)
}

// ==========================
// Helpers
// ==========================

func (s *PostStore) load() ([]models.Post, error) {
	posts := []models.Post{}
	if err := readJSONFile(s.fs, s.path, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// writeImage stores the upload as <slug><ext> under the uploads dir.
// The extension comes from the client filename, defaulting to .jpg.
func (s *PostStore) writeImage(postSlug string, img *ImageUpload) (string, error) {
	ext := filepath.Ext(img.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	name := postSlug + ext
	if err := s.fs.MkdirAll(s.uploads, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", s.uploads, err)
	}
	if err := afero.WriteFile(s.fs, filepath.Join(s.uploads, name), img.Data, 0o644); err != nil {
		return "", fmt.Errorf("write image %s: %w", name, err)
	}
	return name, nil
}

func trimInput(in PostInput) PostInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Teaser = strings.TrimSpace(in.Teaser)
	in.Body = strings.TrimSpace(in.Body)
	return in
}

// MakeTeaser returns the supplied teaser when non-empty, otherwise the first
// 200 characters of the body with an ellipsis when truncated.
func MakeTeaser(body, teaser string) string {
	if teaser != "" {
		return teaser
	}
	r := []rune(body)
	if len(r) > teaserLen {
		return string(r[:teaserLen]) + "..."
	}
	return body
}

// ReadTime estimates reading minutes at 200 words per minute, at least 1.
func ReadTime(body string) int {
	words := len(strings.Fields(body))
	minutes := (words + wordsPerMinute/2) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}
