// Folio - Book Catalog and Reading Community Platform
// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/folio-labs/folio

package api

import (
	"net/http"

	"github.com/folio-labs/folio/internal/auth"
)

type blogPostRequest struct {
	Title   string   `json:"title" validate:"required,max=200"`
	Content string   `json:"content" validate:"required"`
	Tags    []string `json:"tags" validate:"max=10,dive,required,max=50"`
}

type commentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// ListBlogPosts returns a page of blog posts, optionally filtered by tag.
func (h *Handlers) ListBlogPosts(w http.ResponseWriter, r *http.Request) {
	page, pageSize := h.pageParams(r)
	tag := r.URL.Query().Get("tag")

	posts, count, err := h.blog.ListPosts(r.Context(), tag, page, pageSize)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondPage(w, r, count, page, pageSize, posts)
}

// CreateBlogPost creates a blog post authored by the caller.
func (h *Handlers) CreateBlogPost(w http.ResponseWriter, r *http.Request) {
	subject := auth.SubjectFromContext(r.Context())

	var req blogPostRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, r, &req) {
		return
	}

	post, err := h.blog.CreatePost(r.Context(), subject.UserID, req.Title, req.Content, req.Tags)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, post)
}

// GetBlogPost returns one post with its tags and comments.
func (h *Handlers) GetBlogPost(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, r, http.StatusBadRequest, "INVALID_ID", "invalid post id")
		return
	}

	post, err := h.blog.GetPost(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, post)
}

// UpdateBlogPost replaces a post's title, content, and tags. Only the
// author may update.
func (h *Handlers) UpdateBlogPost(w http.ResponseWriter, r *http.Request) {
	subject := auth.SubjectFromContext(r.Context())

	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, r, http.StatusBadRequest, "INVALID_ID", "invalid post id")
		return
	}

	post, err := h.blog.GetPost(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	if post.AuthorID != subject.UserID {
		respondError(w, r, http.StatusForbidden, "FORBIDDEN", "only the author may edit this post")
		return
	}

	var req blogPostRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, r, &req) {
		return
	}

	updated, err := h.blog.UpdatePost(r.Context(), id, req.Title, req.Content, req.Tags)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, updated)
}

// DeleteBlogPost removes a post. Only the author may delete.
func (h *Handlers) DeleteBlogPost(w http.ResponseWriter, r *http.Request) {
	subject := auth.SubjectFromContext(r.Context())

	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, r, http.StatusBadRequest, "INVALID_ID", "invalid post id")
		return
	}

	post, err := h.blog.GetPost(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	if post.AuthorID != subject.UserID {
		respondError(w, r, http.StatusForbidden, "FORBIDDEN", "only the author may delete this post")
		return
	}

	if err := h.blog.DeletePost(r.Context(), id); err != nil {
		respondStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateBlogComment adds a comment to a post.
func (h *Handlers) CreateBlogComment(w http.ResponseWriter, r *http.Request) {
	subject := auth.SubjectFromContext(r.Context())

	postID, ok := idParam(r, "id")
	if !ok {
		respondError(w, r, http.StatusBadRequest, "INVALID_ID", "invalid post id")
		return
	}

	var req commentRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, r, &req) {
		return
	}

	comment, err := h.blog.CreateComment(r.Context(), postID, subject.UserID, req.Content)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, comment)
}

// UpdateBlogComment edits a comment. Only the author may update.
func (h *Handlers) UpdateBlogComment(w http.ResponseWriter, r *http.Request) {
	subject := auth.SubjectFromContext(r.Context())

	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, r, http.StatusBadRequest, "INVALID_ID", "invalid comment id")
		return
	}

	comment, err := h.blog.GetComment(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	if comment.AuthorID != subject.UserID {
		respondError(w, r, http.StatusForbidden, "FORBIDDEN", "only the author may edit this comment")
		return
	}

	var req commentRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, r, &req) {
		return
	}

	updated, err := h.blog.UpdateComment(r.Context(), id, req.Content)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, updated)
}

// DeleteBlogComment removes a comment. Only the author may delete.
func (h *Handlers) DeleteBlogComment(w http.ResponseWriter, r *http.Request) {
	subject := auth.SubjectFromContext(r.Context())

	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, r, http.StatusBadRequest, "INVALID_ID", "invalid comment id")
		return
	}

	comment, err := h.blog.GetComment(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	if comment.AuthorID != subject.UserID {
		respondError(w, r, http.StatusForbidden, "FORBIDDEN", "only the author may delete this comment")
		return
	}

	if err := h.blog.DeleteComment(r.Context(), id); err != nil {
		respondStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListTags returns all tags.
func (h *Handlers) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.blog.ListTags(r.Context())
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, tags)
}
