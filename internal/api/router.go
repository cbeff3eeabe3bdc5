// Folio - Book Catalog and Reading Community Platform
// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/folio-labs/folio

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/folio-labs/folio/internal/auth"
)

// Handler assembles the full chi route tree.
//
// Authentication is resolved once, globally: every request passes through
// Authenticate, which attaches a subject to the context when a valid token
// is present and otherwise leaves the request anonymous. Route groups then
// opt in to RequireAuth or a casbin object/action requirement.
func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(AccessLog)
	r.Use(PrometheusMetrics)
	r.Use(Compression)
	r.Use(rt.chimw.CORS())
	r.Use(rt.authmw.Authenticate)

	r.Get("/health", rt.handlers.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.chimw.RateLimit())

		// Registration and login carry the strict limiter tier on top of
		// the per-account lockout.
		r.Route("/auth", func(r chi.Router) {
			r.Use(rt.chimw.RateLimitAuth())
			r.Post("/register", rt.handlers.Register)
			r.Post("/login", rt.handlers.Login)
		})

		r.Route("/accounts", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAuth)
				r.Get("/profile", rt.handlers.GetProfile)
				r.Put("/profile", rt.handlers.UpdateProfile)
				r.Post("/profile/avatar", rt.handlers.UploadAvatar)
			})
			r.With(rt.authzmw.Require("users", "set_role")).
				Put("/users/{id}/role", rt.handlers.SetUserRole)
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/authors", rt.handlers.ListAuthors)
			r.Get("/authors/{id}", rt.handlers.GetAuthor)
			r.Get("/books", rt.handlers.ListBooks)
			r.Get("/books/{id}", rt.handlers.GetBook)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAuth)
				r.Post("/authors", rt.handlers.CreateAuthor)
				r.Delete("/authors/{id}", rt.handlers.DeleteAuthor)
				r.Post("/books", rt.handlers.CreateBook)
				r.Put("/books/{id}", rt.handlers.UpdateBook)
				r.Delete("/books/{id}", rt.handlers.DeleteBook)
			})
		})

		// The library surface is the staff-facing management API: every
		// route is gated through the RBAC enforcer, with role inheritance
		// admin > librarian > member.
		r.Route("/library", func(r chi.Router) {
			r.With(rt.authzmw.Require("books", "view")).
				Get("/books", rt.handlers.ListBooks)
			r.With(rt.authzmw.Require("books", "create")).
				Post("/books", rt.handlers.CreateBook)
			r.With(rt.authzmw.Require("books", "edit")).
				Put("/books/{id}", rt.handlers.UpdateBook)
			r.With(rt.authzmw.Require("books", "delete")).
				Delete("/books/{id}", rt.handlers.DeleteBook)

			r.With(rt.authzmw.Require("libraries", "view")).
				Get("/libraries", rt.handlers.ListLibraries)
			r.With(rt.authzmw.Require("libraries", "view")).
				Get("/libraries/{id}", rt.handlers.GetLibrary)
			r.With(rt.authzmw.Require("libraries", "create")).
				Post("/libraries", rt.handlers.CreateLibrary)
			r.With(rt.authzmw.Require("libraries", "delete")).
				Delete("/libraries/{id}", rt.handlers.DeleteLibrary)
			r.With(rt.authzmw.Require("libraries", "manage_books")).
				Post("/libraries/{id}/books/{bookID}", rt.handlers.AddLibraryBook)
			r.With(rt.authzmw.Require("libraries", "manage_books")).
				Delete("/libraries/{id}/books/{bookID}", rt.handlers.RemoveLibraryBook)
			r.With(rt.authzmw.Require("librarians", "assign")).
				Post("/libraries/{id}/librarian", rt.handlers.AssignLibrarian)

			r.With(rt.authzmw.Require("dashboard:admin", "view")).
				Get("/admin-view", rt.handlers.AdminDashboard)
			r.With(rt.authzmw.Require("dashboard:librarian", "view")).
				Get("/librarian-view", rt.handlers.LibrarianDashboard)
			r.With(rt.authzmw.Require("dashboard:member", "view")).
				Get("/member-view", rt.handlers.MemberDashboard)
		})

		r.Route("/blog", func(r chi.Router) {
			r.Get("/posts", rt.handlers.ListBlogPosts)
			r.Get("/posts/{id}", rt.handlers.GetBlogPost)
			r.Get("/tags", rt.handlers.ListTags)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAuth)
				r.Post("/posts", rt.handlers.CreateBlogPost)
				r.Put("/posts/{id}", rt.handlers.UpdateBlogPost)
				r.Delete("/posts/{id}", rt.handlers.DeleteBlogPost)
				r.Post("/posts/{id}/comments", rt.handlers.CreateBlogComment)
				r.Put("/comments/{id}", rt.handlers.UpdateBlogComment)
				r.Delete("/comments/{id}", rt.handlers.DeleteBlogComment)
			})
		})

		r.Route("/social", func(r chi.Router) {
			r.Get("/posts", rt.handlers.ListPosts)
			r.Get("/posts/{id}", rt.handlers.GetPost)
			r.Get("/users/{id}/followers", rt.handlers.ListFollowers)
			r.Get("/users/{id}/following", rt.handlers.ListFollowing)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAuth)
				r.Post("/posts", rt.handlers.CreatePost)
				r.Put("/posts/{id}", rt.handlers.UpdatePost)
				r.Delete("/posts/{id}", rt.handlers.DeletePost)
				r.Get("/feed", rt.handlers.Feed)

				r.Post("/posts/{id}/comments", rt.handlers.CreateComment)
				r.Put("/comments/{id}", rt.handlers.UpdateComment)
				r.Delete("/comments/{id}", rt.handlers.DeleteComment)

				r.Post("/posts/{id}/like", rt.handlers.LikePost)
				r.Delete("/posts/{id}/like", rt.handlers.UnlikePost)

				r.Post("/users/{id}/follow", rt.handlers.FollowUser)
				r.Delete("/users/{id}/follow", rt.handlers.UnfollowUser)

				r.Get("/notifications", rt.handlers.ListNotifications)
				r.Post("/notifications/{id}/read", rt.handlers.MarkNotificationRead)
				r.Post("/notifications/read-all", rt.handlers.MarkAllNotificationsRead)
			})
		})
	})

	return r
}
