// Folio - Book Catalog and Reading Community Platform
// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/folio-labs/folio

package authz

import (
	"net/http"

	"github.com/folio-labs/folio/internal/auth"
	"github.com/folio-labs/folio/internal/logging"
	"github.com/folio-labs/folio/internal/metrics"
)

// Middleware enforces role permissions on routes.
type Middleware struct {
	enforcer *Enforcer
}

// NewMiddleware creates the authorization middleware.
func NewMiddleware(enforcer *Enforcer) *Middleware {
	return &Middleware{enforcer: enforcer}
}

// Require authorizes the request's subject for one object/action pair.
// Requests without a subject are rejected with 401; subjects whose role
// lacks the permission get 403.
func (m *Middleware) Require(object, action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject := auth.SubjectFromContext(r.Context())
			if subject == nil {
				http.Error(w, "Unauthorized: authentication required", http.StatusUnauthorized)
				return
			}

			allowed, err := m.enforcer.Enforce(subject.Role, object, action)
			if err != nil {
				logging.Ctx(r.Context()).Error().Err(err).Msg("authorization error")
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			if !allowed {
				metrics.AuthzDenials.WithLabelValues(object, action).Inc()
				logging.Ctx(r.Context()).Debug().
					Str("user", subject.Username).
					Str("role", string(subject.Role)).
					Str("object", object).
					Str("action", action).
					Msg("authorization denied")
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
