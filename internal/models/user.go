// Folio - Book Catalog and Reading Community Platform
// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/folio-labs/folio

// Package models defines the GORM-backed domain records shared by all
// Folio APIs: accounts, the book catalog, libraries, the blog, and the
// social surface. Relationship invariants (cascades, unique pairs, one
// profile per user) are declared as field constraints here and enforced
// by the database.
package models

import (
	"time"
)

// Role is a user's platform role. Roles are hierarchical: admin inherits
// librarian, librarian inherits member.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleLibrarian Role = "librarian"
	RoleMember    Role = "member"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleLibrarian, RoleMember:
		return true
	}
	return false
}

// User is a registered account. The password is stored only as a bcrypt
// hash and never serialized.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:254" json:"email"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Profile *Profile `gorm:"constraint:OnDelete:CASCADE" json:"profile,omitempty"`
}

// Profile extends a user with presentation fields and the platform role.
// Exactly one profile exists per user.
type Profile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Bio       string    `gorm:"type:text" json:"bio"`
	Avatar    string    `gorm:"size:255" json:"avatar"`
	Role      Role      `gorm:"size:20;not null;default:member" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Follow is a follower/following edge between two users. The pair is
// unique; self-follows are rejected at the store layer.
type Follow struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FollowerID  uint      `gorm:"index;uniqueIndex:idx_follower_following;not null" json:"follower_id"`
	FollowingID uint      `gorm:"index;uniqueIndex:idx_follower_following;not null" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}
