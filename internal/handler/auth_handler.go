package handler

import (
	"encoding/json"
	"net/http"

	"sebbi-server/internal/domain"
	apperrors "sebbi-server/pkg/errors"
)

// AuthHandler handles signup and login requests
type AuthHandler struct {
	authService domain.AuthService
	logger      domain.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService domain.AuthService, logger domain.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup handles user registration. Any failure is a 400 with the error
// message as detail.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	user, err := h.authService.Register(req.Name, req.Email, req.Password)
	if err != nil {
		h.logger.Error("Signup failed", err, "email", req.Email)
		writeError(w, http.StatusBadRequest, apperrors.Message(err))
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Login handles authentication. Any failure is a 401 with the error
// message as detail.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid request body")
		return
	}

	session, err := h.authService.Authenticate(req.Email, req.Password)
	if err != nil {
		h.logger.Warn("Login failed", "email", req.Email)
		writeError(w, http.StatusUnauthorized, apperrors.Message(err))
		return
	}

	writeJSON(w, http.StatusOK, session)
}
