// Folio - Book Catalog and Reading Community Platform
// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/folio-labs/folio

package api

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/folio-labs/folio/internal/auth"
	"github.com/folio-labs/folio/internal/logging"
	"github.com/folio-labs/folio/internal/metrics"
	"github.com/folio-labs/folio/internal/models"
)

// maxAvatarBytes caps avatar uploads at 2 MiB.
const maxAvatarBytes = 2 << 20

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=150,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	Email string `json:"email" validate:"omitempty,email"`
	Bio   string `json:"bio" validate:"max=500"`
}

type setRoleRequest struct {
	Role models.Role `json:"role" validate:"required,role"`
}

// Health reports service liveness.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondData(w, r, http.StatusOK, map[string]string{"status": "healthy"})
}

// Register creates a new account with a member profile.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, r, &req) {
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("password hashing failed")
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		return
	}

	user, err := h.users.Create(r.Context(), req.Username, req.Email, hash)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().Str("username", user.Username).Uint("user_id", user.ID).Msg("user registered")
	respondData(w, r, http.StatusCreated, user)
}

// Login verifies credentials and issues a bearer token.
//
// Invalid credentials are a uniform 400 regardless of whether the
// username exists. Repeated failures for one account trip the lockout.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, r, &req) {
		return
	}

	if !h.lockout.Allowed(req.Username) {
		metrics.LoginAttempts.WithLabelValues("locked_out").Inc()
		respondError(w, r, http.StatusTooManyRequests, "LOCKED_OUT",
			"too many failed login attempts, try again later")
		return
	}

	user, err := h.users.GetByUsername(r.Context(), req.Username)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		respondError(w, r, http.StatusBadRequest, "INVALID_CREDENTIALS", "invalid username or password")
		return
	}

	if err := h.hasher.Verify(user.PasswordHash, req.Password); err != nil {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		respondError(w, r, http.StatusBadRequest, "INVALID_CREDENTIALS", "invalid username or password")
		return
	}

	role := models.RoleMember
	if user.Profile != nil {
		role = user.Profile.Role
	}

	token, err := h.jwt.GenerateToken(user.ID, user.Username, role)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("token generation failed")
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		return
	}

	h.lockout.Reset(req.Username)
	metrics.LoginAttempts.WithLabelValues("success").Inc()
	respondData(w, r, http.StatusOK, map[string]string{"token": token})
}

// GetProfile returns the authenticated user with their profile.
func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	subject := auth.SubjectFromContext(r.Context())

	user, err := h.users.GetByID(r.Context(), subject.UserID)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, user)
}

// UpdateProfile updates the caller's email and bio.
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	subject := auth.SubjectFromContext(r.Context())

	var req updateProfileRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, r, &req) {
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), subject.UserID, req.Email, req.Bio)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, user)
}

// UploadAvatar stores a multipart avatar image under the configured
// avatar directory and records its path on the caller's profile.
func (h *Handlers) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	subject := auth.SubjectFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarBytes)
	if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
		respondError(w, r, http.StatusBadRequest, "INVALID_UPLOAD", "avatar upload too large or malformed")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "INVALID_UPLOAD", "missing avatar file field")
		return
	}
	defer file.Close()

	ext := filepath.Ext(header.Filename)
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
	default:
		respondError(w, r, http.StatusBadRequest, "INVALID_UPLOAD", "unsupported avatar file type")
		return
	}

	if err := os.MkdirAll(h.cfg.API.AvatarDir, 0o750); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("avatar directory creation failed")
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		return
	}

	name := fmt.Sprintf("%d-%s%s", subject.UserID, uuid.NewString(), ext)
	path := filepath.Join(h.cfg.API.AvatarDir, name)

	dst, err := os.Create(path)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("avatar file creation failed")
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("avatar write failed")
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		return
	}

	if err := h.users.SetAvatar(r.Context(), subject.UserID, path); err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, map[string]string{"avatar": path})
}

// SetUserRole changes another user's platform role.
func (h *Handlers) SetUserRole(w http.ResponseWriter, r *http.Request) {
	userID, ok := idParam(r, "id")
	if !ok {
		respondError(w, r, http.StatusBadRequest, "INVALID_ID", "invalid user id")
		return
	}

	var req setRoleRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, r, &req) {
		return
	}

	if err := h.users.SetRole(r.Context(), userID, req.Role); err != nil {
		respondStoreError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().Uint("user_id", userID).Str("role", string(req.Role)).Msg("role changed")
	respondData(w, r, http.StatusOK, map[string]interface{}{"user_id": userID, "role": req.Role})
}
