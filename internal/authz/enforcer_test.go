// Folio - Book Catalog and Reading Community Platform
// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/folio-labs/folio

package authz

import (
	"testing"

	"github.com/folio-labs/folio/internal/models"
)

func TestEnforceRoleMatrix(t *testing.T) {
	enforcer, err := NewEnforcer()
	if err != nil {
		t.Fatalf("NewEnforcer() error = %v", err)
	}

	tests := []struct {
		name   string
		role   models.Role
		object string
		action string
		want   bool
	}{
		{name: "member views books", role: models.RoleMember, object: "books", action: "view", want: true},
		{name: "member cannot create books", role: models.RoleMember, object: "books", action: "create", want: false},
		{name: "member cannot delete books", role: models.RoleMember, object: "books", action: "delete", want: false},

		{name: "librarian creates books", role: models.RoleLibrarian, object: "books", action: "create", want: true},
		{name: "librarian edits books", role: models.RoleLibrarian, object: "books", action: "edit", want: true},
		{name: "librarian inherits member view", role: models.RoleLibrarian, object: "books", action: "view", want: true},
		{name: "librarian cannot delete books", role: models.RoleLibrarian, object: "books", action: "delete", want: false},

		{name: "admin deletes books", role: models.RoleAdmin, object: "books", action: "delete", want: true},
		{name: "admin inherits librarian create", role: models.RoleAdmin, object: "books", action: "create", want: true},
		{name: "admin inherits member view", role: models.RoleAdmin, object: "books", action: "view", want: true},

		{name: "member views libraries", role: models.RoleMember, object: "libraries", action: "view", want: true},
		{name: "member cannot manage library books", role: models.RoleMember, object: "libraries", action: "manage_books", want: false},
		{name: "librarian manages library books", role: models.RoleLibrarian, object: "libraries", action: "manage_books", want: true},
		{name: "librarian cannot create libraries", role: models.RoleLibrarian, object: "libraries", action: "create", want: false},
		{name: "admin creates libraries", role: models.RoleAdmin, object: "libraries", action: "create", want: true},
		{name: "admin assigns librarians", role: models.RoleAdmin, object: "librarians", action: "assign", want: true},
		{name: "librarian cannot assign librarians", role: models.RoleLibrarian, object: "librarians", action: "assign", want: false},

		{name: "member sees member dashboard", role: models.RoleMember, object: "dashboard:member", action: "view", want: true},
		{name: "member cannot see librarian dashboard", role: models.RoleMember, object: "dashboard:librarian", action: "view", want: false},
		{name: "member cannot see admin dashboard", role: models.RoleMember, object: "dashboard:admin", action: "view", want: false},
		{name: "librarian sees librarian dashboard", role: models.RoleLibrarian, object: "dashboard:librarian", action: "view", want: true},
		{name: "librarian cannot see admin dashboard", role: models.RoleLibrarian, object: "dashboard:admin", action: "view", want: false},
		{name: "admin sees every dashboard", role: models.RoleAdmin, object: "dashboard:member", action: "view", want: true},
		{name: "admin sees admin dashboard", role: models.RoleAdmin, object: "dashboard:admin", action: "view", want: true},

		{name: "admin sets roles", role: models.RoleAdmin, object: "users", action: "set_role", want: true},
		{name: "librarian cannot set roles", role: models.RoleLibrarian, object: "users", action: "set_role", want: false},

		{name: "unknown object denied", role: models.RoleAdmin, object: "secrets", action: "view", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := enforcer.Enforce(tt.role, tt.object, tt.action)
			if err != nil {
				t.Fatalf("Enforce() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Enforce(%s, %s, %s) = %v, want %v", tt.role, tt.object, tt.action, got, tt.want)
			}
		})
	}
}
