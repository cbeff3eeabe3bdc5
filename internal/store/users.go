// Folio - Book Catalog and Reading Community Platform
// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/folio-labs/folio

package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/folio-labs/folio/internal/metrics"
	"github.com/folio-labs/folio/internal/models"
)

// UserStore manages accounts and profiles.
type UserStore struct {
	db *gorm.DB
}

// NewUserStore creates a user store.
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Create registers a user together with their profile in one transaction.
// New users start with the member role.
func (s *UserStore) Create(ctx context.Context, username, email, passwordHash string) (*models.User, error) {
	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Profile:      &models.Profile{Role: models.RoleMember},
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrUsernameTaken
		}
		return tx.Create(user).Error
	})
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	metrics.UsersRegistered.Inc()
	return user, nil
}

// GetByID returns a user with their profile preloaded.
func (s *UserStore) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Preload("Profile").First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user %d: %w", id, err)
	}
	return &user, nil
}

// GetByUsername returns a user with their profile preloaded.
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Preload("Profile").Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user %q: %w", username, err)
	}
	return &user, nil
}

// UpdateProfile updates the caller's bio and email. Avatar is updated
// separately by SetAvatar after the upload is stored.
func (s *UserStore) UpdateProfile(ctx context.Context, userID uint, email, bio string) (*models.User, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", userID).Update("email", email).Error; err != nil {
			return err
		}
		return tx.Model(&models.Profile{}).Where("user_id = ?", userID).Update("bio", bio).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update profile for user %d: %w", userID, err)
	}
	return s.GetByID(ctx, userID)
}

// SetAvatar records the stored avatar path on the user's profile.
func (s *UserStore) SetAvatar(ctx context.Context, userID uint, path string) error {
	res := s.db.WithContext(ctx).Model(&models.Profile{}).Where("user_id = ?", userID).Update("avatar", path)
	if res.Error != nil {
		return fmt.Errorf("failed to set avatar for user %d: %w", userID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetRole changes a user's platform role.
func (s *UserStore) SetRole(ctx context.Context, userID uint, role models.Role) error {
	res := s.db.WithContext(ctx).Model(&models.Profile{}).Where("user_id = ?", userID).Update("role", role)
	if res.Error != nil {
		return fmt.Errorf("failed to set role for user %d: %w", userID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
