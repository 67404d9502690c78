package main

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed templates
var templatesFS embed.FS

const (
	cookieName  = "limeblog_token"
	defaultPort = "3000"
	defaultAPI  = "http://localhost:8001"
	envWebPort  = "LIMEBLOG_WEB_PORT"
	envAPIURL   = "LIMEBLOG_API_URL"
)

func main() {
	port := getEnv(envWebPort, defaultPort)
	apiBase := getEnv(envAPIURL, defaultAPI)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	// Public pages
	r.Get("/", homepage(apiBase))
	r.Get("/post/{slug}", postDetail(apiBase))
	r.Get("/login", loginForm)
	r.Post("/login", loginSubmit(apiBase))
	r.Get("/logout", logout(apiBase))
	r.Get("/uploads/*", proxyUploads(apiBase))

	// Author pages
	r.Group(func(r chi.Router) {
		r.Use(requireAuth(apiBase))
		r.Get("/new", editorForm(apiBase, false))
		r.Post("/new", editorSubmit(apiBase, false))
		r.Get("/edit/{slug}", editorForm(apiBase, true))
		r.Post("/edit/{slug}", editorSubmit(apiBase, true))
		r.Post("/delete/{slug}", deletePost(apiBase))
	})

	log.Printf("Web UI running on http://localhost:%s (API: %s)", port, apiBase)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatal(err)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// post mirrors the API's post JSON for template rendering.
type post struct {
	Title          string   `json:"title"`
	Slug           string   `json:"slug"`
	Tags           []string `json:"tags"`
	Teaser         string   `json:"teaser"`
	Body           string   `json:"body"`
	Image          string   `json:"image"`
	YouTubeURL     string   `json:"youtube_url"`
	GitHubURL      string   `json:"github_url"`
	HuggingFaceURL string   `json:"huggingface_url"`
	TwitterURL     string   `json:"twitter_url"`
	ArxivURL       string   `json:"arxiv_url"`
	Author         string   `json:"author"`
	Created        string   `json:"created"`
	Updated        string   `json:"updated"`
	ReadTime       int      `json:"read_time"`
}

// requireAuth redirects to /login if the cookie is missing or the API rejects it.
func requireAuth(apiBase string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := r.Cookie(cookieName)
			if err != nil || token.Value == "" {
				http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.Path), http.StatusFound)
				return
			}
			_, status, _ := apiGet(apiBase, "/auth/me", token.Value)
			if status == http.StatusUnauthorized {
				clearAuthAndRedirectToLogin(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func homepage(apiBase string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tag := r.URL.Query().Get("tag")
		path := "/posts"
		if tag != "" {
			path += "?tag=" + url.QueryEscape(tag)
		}

		data, status, err := apiGet(apiBase, path, cookieToken(r))
		if err != nil || status != http.StatusOK {
			renderTemplate(w, "index.html", map[string]interface{}{"Error": "Cannot reach API"})
			return
		}

		var posts []post
		if err := json.Unmarshal(data, &posts); err != nil {
			renderTemplate(w, "index.html", map[string]interface{}{"Error": "Invalid posts response"})
			return
		}

		// Tag cloud comes from the unfiltered collection.
		allTags := posts
		if tag != "" {
			if data, status, err := apiGet(apiBase, "/posts", cookieToken(r)); err == nil && status == http.StatusOK {
				_ = json.Unmarshal(data, &allTags)
			}
		}
		tagSet := map[string]bool{}
		for _, p := range allTags {
			for _, t := range p.Tags {
				tagSet[t] = true
			}
		}
		tags := make([]string, 0, len(tagSet))
		for t := range tagSet {
			tags = append(tags, t)
		}
		sort.Strings(tags)

		var featured *post
		grid := posts
		if len(posts) > 0 {
			featured = &posts[0]
			grid = posts[1:]
		}

		renderTemplate(w, "index.html", map[string]interface{}{
			"Featured":  featured,
			"Posts":     grid,
			"AllTags":   tags,
			"ActiveTag": tag,
			"LoggedIn":  loggedIn(apiBase, r),
		})
	}
}

func postDetail(apiBase string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		data, status, err := apiGet(apiBase, "/posts/"+url.PathEscape(slug), cookieToken(r))
		if err != nil || status != http.StatusOK {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		var p post
		if err := json.Unmarshal(data, &p); err != nil {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		renderTemplate(w, "post.html", map[string]interface{}{
			"Post":     p,
			"LoggedIn": loggedIn(apiBase, r),
		})
	}
}

func loginForm(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	renderTemplate(w, "login.html", nil)
}

func loginSubmit(apiBase string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		username := strings.TrimSpace(r.FormValue("username"))
		password := r.FormValue("password")

		body, _ := json.Marshal(map[string]string{"username": username, "password": password})
		data, status, err := apiPost(apiBase, "/auth/login", "", "application/json", strings.NewReader(string(body)))
		if err != nil {
			renderTemplate(w, "login.html", map[string]interface{}{"Error": "Cannot reach API: " + err.Error()})
			return
		}
		if status != http.StatusOK {
			renderTemplate(w, "login.html", map[string]interface{}{"Error": "Invalid username or password."})
			return
		}

		var out struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(data, &out); err != nil || out.Token == "" {
			renderTemplate(w, "login.html", map[string]interface{}{"Error": "Invalid login response"})
			return
		}

		next := r.URL.Query().Get("next")
		if next == "" || !strings.HasPrefix(next, "/") {
			next = "/"
		}
		http.SetCookie(w, &http.Cookie{
			Name:     cookieName,
			Value:    out.Token,
			Path:     "/",
			MaxAge:   24 * 3600,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		http.Redirect(w, r, next, http.StatusFound)
	}
}

func logout(apiBase string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if tok := cookieToken(r); tok != "" {
			_, _, _ = apiPost(apiBase, "/auth/logout", tok, "", nil)
		}
		http.SetCookie(w, &http.Cookie{Name: cookieName, Value: "", Path: "/", MaxAge: -1})
		http.Redirect(w, r, "/", http.StatusFound)
	}
}

// editorForm renders the new-post or edit-post form.
func editorForm(apiBase string, editing bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := map[string]interface{}{"LoggedIn": true, "TagsJoined": ""}
		if editing {
			slug := chi.URLParam(r, "slug")
			body, status, err := apiGet(apiBase, "/posts/"+url.PathEscape(slug), cookieToken(r))
			if err != nil || status != http.StatusOK {
				http.Redirect(w, r, "/", http.StatusFound)
				return
			}
			var p post
			if err := json.Unmarshal(body, &p); err != nil {
				http.Redirect(w, r, "/", http.StatusFound)
				return
			}
			data["Post"] = p
			data["TagsJoined"] = strings.Join(p.Tags, " ")
		}
		renderTemplate(w, "editor.html", data)
	}
}

// editorSubmit streams the multipart form straight through to the API so the
// image upload is forwarded without buffering a re-encode.
func editorSubmit(apiBase string, editing bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tok := cookieToken(r)
		var (
			data   []byte
			status int
			err    error
		)
		if editing {
			slug := chi.URLParam(r, "slug")
			data, status, err = apiSend(apiBase, "PUT", "/posts/"+url.PathEscape(slug), tok, r.Header.Get("Content-Type"), r.Body)
		} else {
			data, status, err = apiPost(apiBase, "/posts", tok, r.Header.Get("Content-Type"), r.Body)
		}
		if err != nil {
			http.Error(w, "cannot reach API", http.StatusBadGateway)
			return
		}
		if status == http.StatusUnauthorized {
			clearAuthAndRedirectToLogin(w, r)
			return
		}
		if status != http.StatusOK && status != http.StatusCreated {
			var errResp struct {
				Error string `json:"error"`
			}
			_ = json.Unmarshal(data, &errResp)
			renderTemplate(w, "editor.html", map[string]interface{}{
				"Error":      errResp.Error,
				"LoggedIn":   true,
				"TagsJoined": "",
			})
			return
		}

		var p post
		if err := json.Unmarshal(data, &p); err != nil {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		http.Redirect(w, r, "/post/"+url.PathEscape(p.Slug), http.StatusFound)
	}
}

func deletePost(apiBase string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		_, status, err := apiSend(apiBase, "DELETE", "/posts/"+url.PathEscape(slug), cookieToken(r), "", nil)
		if err == nil && status == http.StatusUnauthorized {
			clearAuthAndRedirectToLogin(w, r)
			return
		}
		http.Redirect(w, r, "/", http.StatusFound)
	}
}

// proxyUploads forwards hero image requests to the API.
func proxyUploads(apiBase string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "*")
		resp, err := http.Get(apiBase + "/uploads/" + name)
		if err != nil {
			http.Error(w, "cannot reach API", http.StatusBadGateway)
			return
		}
		defer resp.Body.Close()
		if ct := resp.Header.Get("Content-Type"); ct != "" {
			w.Header().Set("Content-Type", ct)
		}
		w.WriteHeader(resp.StatusCode)
		_, _ = io.Copy(w, resp.Body)
	}
}

// clearAuthAndRedirectToLogin clears the token cookie and redirects to login
// with next=current path. Used when the API returns 401.
func clearAuthAndRedirectToLogin(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{Name: cookieName, Value: "", Path: "/", MaxAge: -1})
	next := r.URL.Path
	if r.URL.RawQuery != "" {
		next += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, "/login?next="+url.QueryEscape(next), http.StatusFound)
}

func cookieToken(r *http.Request) string {
	if c, err := r.Cookie(cookieName); err == nil {
		return c.Value
	}
	return ""
}

// loggedIn reports whether the request's cookie resolves to a user.
func loggedIn(apiBase string, r *http.Request) bool {
	tok := cookieToken(r)
	if tok == "" {
		return false
	}
	_, status, err := apiGet(apiBase, "/auth/me", tok)
	return err == nil && status == http.StatusOK
}

// apiGet performs GET to the API with a bearer token.
func apiGet(apiBase, path, token string) ([]byte, int, error) {
	return apiSend(apiBase, "GET", path, token, "", nil)
}

// apiPost performs POST to the API with token, content type, and body.
func apiPost(apiBase, path, token, contentType string, body io.Reader) ([]byte, int, error) {
	return apiSend(apiBase, "POST", path, token, contentType, body)
}

func apiSend(apiBase, method, path, token, contentType string, body io.Reader) ([]byte, int, error) {
	req, err := http.NewRequest(method, apiBase+path, body)
	if err != nil {
		return nil, 0, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return data, resp.StatusCode, nil
}

var youtubeID = regexp.MustCompile(`(?:v=|youtu\.be/|/embed/|/shorts/)([\w-]{11})`)

// youtubeThumb extracts a YouTube video ID and returns its thumbnail URL.
func youtubeThumb(u string) string {
	if m := youtubeID.FindStringSubmatch(u); m != nil {
		return fmt.Sprintf("https://img.youtube.com/vi/%s/hqdefault.jpg", m[1])
	}
	return ""
}

func renderTemplate(w http.ResponseWriter, name string, data interface{}) {
	funcs := template.FuncMap{"youtubeThumb": youtubeThumb}
	content, err := templatesFS.ReadFile("templates/" + name)
	if err != nil {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if name == "login.html" {
		t := template.Must(template.New("").Funcs(funcs).Parse(string(content)))
		_ = t.ExecuteTemplate(w, "login", data)
		return
	}

	layout, _ := templatesFS.ReadFile("templates/layout.html")
	t := template.Must(template.New("").Funcs(funcs).Parse(string(layout)))
	t = template.Must(t.New("").Parse(string(content)))
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		log.Printf("template execute: %v", err)
	}
}
