// Folio - Book Catalog and Reading Community Platform
// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/folio-labs/folio

package api

import (
	"net/http"

	"github.com/folio-labs/folio/internal/auth"
)

type socialPostRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
}

// ListPosts returns a page of posts, newest first, optionally matching a
// search over title and content.
func (h *Handlers) ListPosts(w http.ResponseWriter, r *http.Request) {
	page, pageSize := h.pageParams(r)
	search := r.URL.Query().Get("search")

	posts, count, err := h.social.ListPosts(r.Context(), search, page, pageSize)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondPage(w, r, count, page, pageSize, posts)
}

// CreatePost creates a post authored by the caller.
func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	subject := auth.SubjectFromContext(r.Context())

	var req socialPostRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, r, &req) {
		return
	}

	post, err := h.social.CreatePost(r.Context(), subject.UserID, req.Title, req.Content)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, post)
}

// GetPost returns one post with its comments and like count.
func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, r, http.StatusBadRequest, "INVALID_ID", "invalid post id")
		return
	}

	post, err := h.social.GetPost(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, post)
}

// UpdatePost edits a post. Only the author may update.
func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	subject := auth.SubjectFromContext(r.Context())

	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, r, http.StatusBadRequest, "INVALID_ID", "invalid post id")
		return
	}

	post, err := h.social.GetPost(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	if post.AuthorID != subject.UserID {
		respondError(w, r, http.StatusForbidden, "FORBIDDEN", "only the author may edit this post")
		return
	}

	var req socialPostRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, r, &req) {
		return
	}

	updated, err := h.social.UpdatePost(r.Context(), id, req.Title, req.Content)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, updated)
}

// DeletePost removes a post. Only the author may delete.
func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	subject := auth.SubjectFromContext(r.Context())

	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, r, http.StatusBadRequest, "INVALID_ID", "invalid post id")
		return
	}

	post, err := h.social.GetPost(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	if post.AuthorID != subject.UserID {
		respondError(w, r, http.StatusForbidden, "FORBIDDEN", "only the author may delete this post")
		return
	}

	if err := h.social.DeletePost(r.Context(), id); err != nil {
		respondStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Feed returns posts authored by users the caller follows, newest first,
// at the fixed feed page size.
func (h *Handlers) Feed(w http.ResponseWriter, r *http.Request) {
	subject := auth.SubjectFromContext(r.Context())

	page := getIntParam(r, "page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := h.cfg.API.FeedPageSize

	posts, count, err := h.social.Feed(r.Context(), subject.UserID, page, pageSize)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondPage(w, r, count, page, pageSize, posts)
}

// CreateComment adds a comment to a post and notifies its author.
func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
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

	comment, err := h.social.CreateComment(r.Context(), postID, subject.UserID, req.Content)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, comment)
}

// UpdateComment edits a comment. Only the author may update.
func (h *Handlers) UpdateComment(w http.ResponseWriter, r *http.Request) {
	subject := auth.SubjectFromContext(r.Context())

	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, r, http.StatusBadRequest, "INVALID_ID", "invalid comment id")
		return
	}

	comment, err := h.social.GetComment(r.Context(), id)
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

	updated, err := h.social.UpdateComment(r.Context(), id, req.Content)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, updated)
}

// DeleteComment removes a comment. Only the author may delete.
func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	subject := auth.SubjectFromContext(r.Context())

	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, r, http.StatusBadRequest, "INVALID_ID", "invalid comment id")
		return
	}

	comment, err := h.social.GetComment(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	if comment.AuthorID != subject.UserID {
		respondError(w, r, http.StatusForbidden, "FORBIDDEN", "only the author may delete this comment")
		return
	}

	if err := h.social.DeleteComment(r.Context(), id); err != nil {
		respondStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// LikePost records the caller's like on a post. Liking the same post
// twice is a conflict.
func (h *Handlers) LikePost(w http.ResponseWriter, r *http.Request) {
	subject := auth.SubjectFromContext(r.Context())

	postID, ok := idParam(r, "id")
	if !ok {
		respondError(w, r, http.StatusBadRequest, "INVALID_ID", "invalid post id")
		return
	}

	if err := h.social.LikePost(r.Context(), subject.UserID, postID); err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, map[string]uint{"post": postID})
}

// UnlikePost removes the caller's like from a post.
func (h *Handlers) UnlikePost(w http.ResponseWriter, r *http.Request) {
	subject := auth.SubjectFromContext(r.Context())

	postID, ok := idParam(r, "id")
	if !ok {
		respondError(w, r, http.StatusBadRequest, "INVALID_ID", "invalid post id")
		return
	}

	if err := h.social.UnlikePost(r.Context(), subject.UserID, postID); err != nil {
		respondStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// FollowUser makes the caller follow another user.
func (h *Handlers) FollowUser(w http.ResponseWriter, r *http.Request) {
	subject := auth.SubjectFromContext(r.Context())

	userID, ok := idParam(r, "id")
	if !ok {
		respondError(w, r, http.StatusBadRequest, "INVALID_ID", "invalid user id")
		return
	}

	if err := h.social.Follow(r.Context(), subject.UserID, userID); err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, map[string]uint{"following": userID})
}

// UnfollowUser removes the caller's follow edge to another user.
func (h *Handlers) UnfollowUser(w http.ResponseWriter, r *http.Request) {
	subject := auth.SubjectFromContext(r.Context())

	userID, ok := idParam(r, "id")
	if !ok {
		respondError(w, r, http.StatusBadRequest, "INVALID_ID", "invalid user id")
		return
	}

	if err := h.social.Unfollow(r.Context(), subject.UserID, userID); err != nil {
		respondStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListFollowers returns the users following the given user.
func (h *Handlers) ListFollowers(w http.ResponseWriter, r *http.Request) {
	userID, ok := idParam(r, "id")
	if !ok {
		respondError(w, r, http.StatusBadRequest, "INVALID_ID", "invalid user id")
		return
	}

	users, err := h.social.Followers(r.Context(), userID)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, users)
}

// ListFollowing returns the users the given user follows.
func (h *Handlers) ListFollowing(w http.ResponseWriter, r *http.Request) {
	userID, ok := idParam(r, "id")
	if !ok {
		respondError(w, r, http.StatusBadRequest, "INVALID_ID", "invalid user id")
		return
	}

	users, err := h.social.Following(r.Context(), userID)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, users)
}

// ListNotifications returns the caller's notifications, unread first.
func (h *Handlers) ListNotifications(w http.ResponseWriter, r *http.Request) {
	subject := auth.SubjectFromContext(r.Context())
	page, pageSize := h.pageParams(r)

	notifications, count, err := h.social.Notifications(r.Context(), subject.UserID, page, pageSize)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondPage(w, r, count, page, pageSize, notifications)
}

// MarkNotificationRead marks one of the caller's notifications read.
func (h *Handlers) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	subject := auth.SubjectFromContext(r.Context())

	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, r, http.StatusBadRequest, "INVALID_ID", "invalid notification id")
		return
	}

	if err := h.social.MarkNotificationRead(r.Context(), subject.UserID, id); err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, map[string]interface{}{"id": id, "is_read": true})
}

// MarkAllNotificationsRead marks every unread notification of the caller
// as read and reports how many changed.
func (h *Handlers) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	subject := auth.SubjectFromContext(r.Context())

	updated, err := h.social.MarkAllNotificationsRead(r.Context(), subject.UserID)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, map[string]int64{"updated": updated})
}
