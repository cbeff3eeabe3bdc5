// Folio - Book Catalog and Reading Community Platform
// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/folio-labs/folio

// Package store implements GORM-backed persistence for every Folio domain.
// Each store owns one domain's queries and business rules; handlers
// translate the sentinel errors below into HTTP status codes.
package store

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username is already taken")

	// ErrSelfFollow is returned when a user tries to follow themselves.
	ErrSelfFollow = errors.New("you cannot follow yourself")

	// ErrAlreadyFollowing is returned on a duplicate follow.
	ErrAlreadyFollowing = errors.New("already following this user")

	// ErrNotFollowing is returned when unfollowing without a follow edge.
	ErrNotFollowing = errors.New("not following this user")

	// ErrAlreadyLiked is returned on a duplicate like.
	ErrAlreadyLiked = errors.New("post is already liked")

	// ErrNotLiked is returned when unliking a post that was never liked.
	ErrNotLiked = errors.New("post is not liked")

	// ErrLibraryExists is returned when creating a library whose name is taken.
	ErrLibraryExists = errors.New("library with this name already exists")

	// ErrLibrarianAssigned is returned when a library already has a librarian.
	ErrLibrarianAssigned = errors.New("library already has a librarian")
)
