package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/rogerio-castellano/kiosco-pos/internal/auth"
	"github.com/rogerio-castellano/kiosco-pos/internal/models"
	"github.com/rogerio-castellano/kiosco-pos/internal/repo"
)

// LoginHandler godoc
// @Summary Exchange credentials for an access and a refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "username and password"
// @Success 200 {object} LoginResult
// @Failure 401 {string} string "Invalid credentials"
// @Router /api/login [post]
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var creds CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	user, err := userRepo.GetByUsername(creds.Username)
	if err != nil {
		// Same answer for unknown user and wrong password.
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	refresh, err := auth.IssueRefreshToken(user.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate refresh token")
		return
	}

	_ = writeJSON(w, http.StatusOK, LoginResult{Token: token, RefreshToken: refresh})
}

// RefreshTokenHandler godoc
// @Summary Exchange a refresh token for a new access token
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body RefreshRequest true "refresh token"
// @Success 200 {object} LoginResult
// @Failure 401 {string} string "Unknown or expired refresh token"
// @Router /api/token/refresh [post]
func RefreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	username, err := auth.UsernameForRefreshToken(req.RefreshToken)
	if errors.Is(err, auth.ErrRefreshTokenNotFound) {
		writeError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to validate refresh token")
		return
	}

	user, err := userRepo.GetByUsername(username)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	_ = writeJSON(w, http.StatusOK, LoginResult{Token: token, RefreshToken: req.RefreshToken})
}

// RegisterAsAdminHandler godoc
// @Summary Create a user with a role (admin only)
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param user body RegisterAsAdminRequest true "User to create with role"
// @Success 201 {object} map[string]string
// @Failure 403 {string} string "Forbidden"
// @Failure 409 {string} string "User exists"
// @Router /api/admin/usuarios [post]
func RegisterAsAdminHandler(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	var req RegisterAsAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}
	if req.Username == "" || req.Password == "" || req.Role == "" {
		writeError(w, http.StatusBadRequest, "missing fields")
		return
	}
	if len(req.Username) < 3 || len(req.Password) < 6 {
		writeError(w, http.StatusBadRequest, "username or password too short")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "error hashing password")
		return
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: string(hashed),
		Role:         req.Role,
	}
	if _, err := userRepo.CreateUser(user); err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			writeError(w, http.StatusConflict, "username already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "error creating user")
		return
	}

	_ = writeJSON(w, http.StatusCreated, map[string]string{"message": "user created"})
}
