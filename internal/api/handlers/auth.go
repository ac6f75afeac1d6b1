package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/campusbay/backend/internal/api/middleware"
	"github.com/campusbay/backend/internal/config"
	"github.com/campusbay/backend/internal/domain"
	"github.com/campusbay/backend/internal/service"
	"github.com/campusbay/backend/internal/session"
)

type AuthHandler struct {
	authService *service.AuthService
	sessions    *session.Manager
	cfg         *config.Config
}

func NewAuthHandler(authService *service.AuthService, sessions *session.Manager, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		cfg:         cfg,
	}
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Campus   string `json:"campus"`
	Major    string `json:"major"`
	Year     string `json:"year"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.Register(r.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Campus:   req.Campus,
		Major:    req.Major,
		Year:     req.Year,
	})
	if err != nil {
		serviceError(w, err)
		return
	}

	// Auto-login after registration, like the login flow.
	if err := h.startSession(w, r, user); err != nil {
		serviceError(w, err)
		return
	}

	jsonResponse(w, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		jsonError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		serviceError(w, err)
		return
	}

	if err := h.startSession(w, r, user); err != nil {
		serviceError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token, ok := middleware.GetToken(r.Context()); ok {
		if err := h.sessions.Destroy(r.Context(), token); err != nil {
			serviceError(w, err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   !h.cfg.IsDevelopment(),
	})

	jsonResponse(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		jsonError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), userID)
	if err != nil {
		serviceError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, user)
}

func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, user *domain.User) error {
	token, err := h.sessions.Create(r.Context(), user.ID)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessions.TTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   !h.cfg.IsDevelopment(),
	})
	return nil
}
