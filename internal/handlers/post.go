package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/deoxyribo/limeblog/internal/middleware"
	"github.com/deoxyribo/limeblog/internal/store"
)

// ==========================
// Post Handler
// ==========================

type PostHandler struct {
	Posts *store.PostStore
}

// ==========================
// List Posts
// ==========================

// ListPosts returns every post, newest first. An optional ?tag= query
// restricts the result to posts carrying that tag.
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Posts.List(r.Context())
	if err != nil {
		slog.Error("list posts failed", "error", err)
		JSONError(w, "failed to fetch posts", http.StatusInternalServerError)
		return
	}

	if tag := r.URL.Query().Get("tag"); tag != "" {
		filtered := posts[:0]
		for _, p := range posts {
			for _, t := range p.Tags {
				if t == tag {
					filtered = append(filtered, p)
					break
				}
			}
		}
		posts = filtered
	}

	// RFC 3339 timestamps sort lexicographically.
	sort.Slice(posts, func(i, j int) bool { return posts[i].Created > posts[j].Created })

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(posts)
}

// ==========================
// Get Post By Slug
// ==========================

func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := h.Posts.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			JSONError(w, "post not found", http.StatusNotFound)
			return
		}
		slog.Error("get post failed", "slug", slug, "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(post)
}

// ==========================
// Create Post
// ==========================

func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	input, err := parsePostInput(r)
	if err != nil {
		JSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	user := middleware.UserFromContext(r.Context())
	post, err := h.Posts.Create(r.Context(), input, user.AuthorName())
	if err != nil {
		if errors.Is(err, store.ErrValidation) {
			JSONValidationError(w, "title and body are required", nil, http.StatusBadRequest)
			return
		}
		slog.Error("create post failed", "error", err)
		JSONError(w, "failed to create post", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(post)
}

// ==========================
// Update Post
// ==========================

func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	input, err := parsePostInput(r)
	if err != nil {
		JSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	post, err := h.Posts.Update(r.Context(), slug, input)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrValidation):
			JSONValidationError(w, "title and body are required", nil, http.StatusBadRequest)
		case errors.Is(err, store.ErrNotFound):
			JSONError(w, "post not found", http.StatusNotFound)
		default:
			slog.Error("update post failed", "slug", slug, "error", err)
			JSONError(w, "failed to update post", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(post)
}

// ==========================
// Delete Post
// ==========================

// DeletePost removes the post and its image. Idempotent: unknown slugs
// return 204 as well.
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	if err := h.Posts.Delete(r.Context(), slug); err != nil {
		slog.Error("delete post failed", "slug", slug, "error", err)
		JSONError(w, "failed to delete post", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ==========================
// Input parsing
// ==========================

// parsePostInput accepts either a JSON body or a multipart form (the editor
// submits multipart so it can carry an image file).
func parsePostInput(r *http.Request) (store.PostInput, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "multipart/form-data" {
		return parseMultipartInput(r)
	}

	var input struct {
		Title          string   `json:"title"`
		Tags           []string `json:"tags"`
		Teaser         string   `json:"teaser"`
		Body           string   `json:"body"`
		YouTubeURL     string   `json:"youtube_url"`
		GitHubURL      string   `json:"github_url"`
		HuggingFaceURL string   `json:"huggingface_url"`
		TwitterURL     string   `json:"twitter_url"`
		ArxivURL       string   `json:"arxiv_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		return store.PostInput{}, errors.New("invalid json")
	}
	return store.PostInput{
		Title:          input.Title,
		Tags:           input.Tags,
		Teaser:         input.Teaser,
		Body:           input.Body,
		YouTubeURL:     input.YouTubeURL,
		GitHubURL:      input.GitHubURL,
		HuggingFaceURL: input.HuggingFaceURL,
		TwitterURL:     input.TwitterURL,
		ArxivURL:       input.ArxivURL,
	}, nil
}

func parseMultipartInput(r *http.Request) (store.PostInput, error) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return store.PostInput{}, errors.New("invalid multipart form")
	}

	input := store.PostInput{
		Title:          r.FormValue("title"),
		Tags:           strings.Fields(r.FormValue("tags")),
		Teaser:         r.FormValue("teaser"),
		Body:           r.FormValue("body"),
		YouTubeURL:     strings.TrimSpace(r.FormValue("youtube_url")),
		GitHubURL:      strings.TrimSpace(r.FormValue("github_url")),
		HuggingFaceURL: strings.TrimSpace(r.FormValue("huggingface_url")),
		TwitterURL:     strings.TrimSpace(r.FormValue("twitter_url")),
		ArxivURL:       strings.TrimSpace(r.FormValue("arxiv_url")),
	}

	file, header, err := r.FormFile("image")
	if err == nil && header != nil && header.Filename != "" {
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return store.PostInput{}, errors.New("failed to read image upload")
		}
		input.Image = &store.ImageUpload{Filename: header.Filename, Data: data}
	} else if err != nil && !errors.Is(err, http.ErrMissingFile) {
		return store.PostInput{}, errors.New("invalid image upload")
	}

	return input, nil
}
