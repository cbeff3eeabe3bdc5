// Folio - Book Catalog and Reading Community Platform
// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/folio-labs/folio

// Package auth provides password hashing, bearer token issuance and
// verification, the authentication middleware, and login lockout.
package auth

import (
	"context"

	"github.com/folio-labs/folio/internal/models"
)

// Subject is the authenticated caller attached to a request context.
type Subject struct {
	// UserID is the account's database id.
	UserID uint `json:"user_id"`

	// Username is the account's login name.
	Username string `json:"username"`

	// Role is the platform role carried in the token claims.
	Role models.Role `json:"role"`
}

type subjectKey struct{}

// ContextWithSubject returns a context carrying the authenticated subject.
func ContextWithSubject(ctx context.Context, s *Subject) context.Context {
	return context.WithValue(ctx, subjectKey{}, s)
}

// SubjectFromContext returns the authenticated subject, or nil when the
// request was not authenticated.
func SubjectFromContext(ctx context.Context) *Subject {
	if s, ok := ctx.Value(subjectKey{}).(*Subject); ok {
		return s
	}
	return nil
}
