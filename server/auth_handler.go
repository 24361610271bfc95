package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"tunevault/core/auth"
	"tunevault/logger"
	"tunevault/model"
)

// RegisterRequest is the registration request body.
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// LoginRequest is the login request body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterHandler creates a new account.
func (h *APIHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "first name, last name, email and password are required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	user := &model.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
	}
	id, err := h.userRepo.CreateUser(r.Context(), user)
	if err != nil {
		if errors.Is(err, model.ErrPersistence) {
			respondError(w, http.StatusConflict, "email already registered")
			return
		}
		respondCatalogError(w, err, "Registration failed")
		return
	}
	user.ID = id

	logger.Info("User registered", logger.Int64("userId", id), logger.String("email", req.Email))
	respondJSON(w, http.StatusCreated, user)
}

// LoginHandler verifies credentials and issues a token. Accounts still
// carrying a legacy SHA-256 digest are rehashed with bcrypt on success.
func (h *APIHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.userRepo.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			respondError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		respondCatalogError(w, err, "Login lookup failed")
		return
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Warn("Login failed", logger.String("email", req.Email))
		respondError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	if auth.IsLegacyHash(user.PasswordHash) {
		if hash, err := auth.HashPassword(req.Password); err == nil {
			if err := h.userRepo.UpdatePasswordHash(r.Context(), user.ID, hash); err != nil {
				logger.Warn("Failed to upgrade legacy password hash",
					logger.Int64("userId", user.ID), logger.ErrorField(err))
			}
		}
	}

	token, err := auth.GenerateToken(h.cfg.JWTSecret, user.ID, user.Email, user.IsAdmin)
	if err != nil {
		logger.Error("Failed to generate token", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	logger.Info("User logged in", logger.Int64("userId", user.ID))
	respondJSON(w, http.StatusOK, struct {
		Token string      `json:"token"`
		User  *model.User `json:"user"`
	}{Token: token, User: user})
}

// MeHandler returns the authenticated user's profile.
func (h *APIHandler) MeHandler(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	user, err := h.userRepo.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		respondCatalogError(w, err, "Profile lookup failed")
		return
	}
	respondJSON(w, http.StatusOK, user)
}
