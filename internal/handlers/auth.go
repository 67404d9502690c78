package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/deoxyribo/limeblog/internal/auth"
	"github.com/deoxyribo/limeblog/internal/middleware"
)

// ==========================
// Auth Handler
// ==========================

type AuthHandler struct {
	Auth *auth.Authorizer
}

// ==========================
// Login
// ==========================

// Login verifies credentials and returns {"token": ..., "user": ...}.
// Unknown user and wrong password share one 401 message.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid json", http.StatusBadRequest)
		return
	}

	token, err := h.Auth.Login(input.Username, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			JSONError(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		slog.Error("login failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	user, err := h.Auth.Resolve(token)
	if err != nil || user == nil {
		slog.Error("resolve freshly issued token failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"token": token,
		"user":  user.Public(),
	})
}

// ==========================
// Logout
// ==========================

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Auth.Logout(middleware.TokenFromRequest(r))
	w.WriteHeader(http.StatusNoContent)
}

// ==========================
// Me
// ==========================

// Me returns the user the session resolves to, or 401 for anonymous.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		JSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user.Public())
}
