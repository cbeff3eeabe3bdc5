// Folio - Book Catalog and Reading Community Platform
// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/folio-labs/folio

package auth

import (
	"testing"
	"time"

	"github.com/folio-labs/folio/internal/models"
)

const testSecret = "this_is_a_very_long_secret_key_for_testing_purposes_12345"

func TestNewJWTManager(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		wantErr bool
	}{
		{name: "valid secret", secret: testSecret, wantErr: false},
		{name: "empty secret", secret: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager, err := NewJWTManager(tt.secret, time.Hour)
			if tt.wantErr {
				if err == nil {
					t.Error("NewJWTManager() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Errorf("NewJWTManager() unexpected error = %v", err)
				return
			}
			if manager == nil {
				t.Error("NewJWTManager() returned nil manager")
			}
		})
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	manager, err := NewJWTManager(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}

	token, err := manager.GenerateToken(42, "alice", models.RoleLibrarian)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	subject, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if subject.UserID != 42 {
		t.Errorf("subject.UserID = %d, want 42", subject.UserID)
	}
	if subject.Username != "alice" {
		t.Errorf("subject.Username = %q, want %q", subject.Username, "alice")
	}
	if subject.Role != models.RoleLibrarian {
		t.Errorf("subject.Role = %q, want %q", subject.Role, models.RoleLibrarian)
	}
}

func TestValidateTokenRejections(t *testing.T) {
	manager, err := NewJWTManager(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}

	otherManager, err := NewJWTManager("another_secret_key_that_is_also_long_enough_98765", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	wrongSecret, err := otherManager.GenerateToken(1, "bob", models.RoleMember)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	expiredManager, err := NewJWTManager(testSecret, -time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	expired, err := expiredManager.GenerateToken(1, "bob", models.RoleMember)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not.a.token"},
		{name: "empty", token: ""},
		{name: "wrong secret", token: wrongSecret},
		{name: "expired", token: expired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := manager.ValidateToken(tt.token); err == nil {
				t.Error("ValidateToken() expected error, got nil")
			}
		})
	}
}
