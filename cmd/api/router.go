package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/afero"

	"github.com/deoxyribo/limeblog/internal/auth"
	"github.com/deoxyribo/limeblog/internal/config"
	"github.com/deoxyribo/limeblog/internal/handlers"
	"github.com/deoxyribo/limeblog/internal/middleware"
	"github.com/deoxyribo/limeblog/internal/store"
)

// newRouter wires the middleware chain and routes. Separated from main so
// integration tests can build the full router against an in-memory fs.
func newRouter(cfg config.Config, fs afero.Fs, posts *store.PostStore, users *store.UserStore, authorizer *auth.Authorizer) http.Handler {
	r := chi.NewRouter()

	useTLS := cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""

	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(useTLS))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.Session(authorizer))

	postHandler := &handlers.PostHandler{Posts: posts}
	authHandler := &handlers.AuthHandler{Auth: authorizer}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if _, err := users.List(); err != nil {
			handlers.JSONError(w, "data dir not readable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ready"))
	})
	r.Handle("/metrics", promhttp.Handler())

	loginLimiter := middleware.AuthRateLimiter()
	r.With(loginLimiter.Middleware, middleware.MaxBytes(middleware.DefaultMaxBodyBytes)).
		Post("/auth/login", authHandler.Login)
	r.Post("/auth/logout", authHandler.Logout)
	r.Get("/auth/me", authHandler.Me)

	// Reads are public.
	r.Get("/posts", postHandler.ListPosts)
	r.Get("/posts/{slug}", postHandler.GetPost)

	// Mutations need a resolved session.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Use(middleware.MaxBytes(cfg.MaxUploadBytes))
		r.Post("/posts", postHandler.CreatePost)
		r.Put("/posts/{slug}", postHandler.UpdatePost)
		r.Delete("/posts/{slug}", postHandler.DeletePost)
	})

	// Uploaded hero images.
	httpFs := afero.NewHttpFs(fs)
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(httpFs.Dir(cfg.UploadsDir))))

	return r
}
