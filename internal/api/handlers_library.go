// Folio - Book Catalog and Reading Community Platform
// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/folio-labs/folio

package api

import (
	"net/http"

	"github.com/folio-labs/folio/internal/auth"
)

type createLibraryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type assignLibrarianRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// ListLibraries returns a page of libraries.
func (h *Handlers) ListLibraries(w http.ResponseWriter, r *http.Request) {
	page, pageSize := h.pageParams(r)

	libraries, count, err := h.library.ListLibraries(r.Context(), page, pageSize)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondPage(w, r, count, page, pageSize, libraries)
}

// CreateLibrary creates a library with a unique name.
func (h *Handlers) CreateLibrary(w http.ResponseWriter, r *http.Request) {
	var req createLibraryRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, r, &req) {
		return
	}

	library, err := h.library.CreateLibrary(r.Context(), req.Name)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, library)
}

// GetLibrary returns one library with its books and librarian.
func (h *Handlers) GetLibrary(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, r, http.StatusBadRequest, "INVALID_ID", "invalid library id")
		return
	}

	library, err := h.library.GetLibrary(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, library)
}

// DeleteLibrary removes a library, detaching its books and librarian.
func (h *Handlers) DeleteLibrary(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, r, http.StatusBadRequest, "INVALID_ID", "invalid library id")
		return
	}

	if err := h.library.DeleteLibrary(r.Context(), id); err != nil {
		respondStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddLibraryBook attaches an existing book to a library's collection.
func (h *Handlers) AddLibraryBook(w http.ResponseWriter, r *http.Request) {
	libraryID, ok := idParam(r, "id")
	if !ok {
		respondError(w, r, http.StatusBadRequest, "INVALID_ID", "invalid library id")
		return
	}
	bookID, ok := idParam(r, "bookID")
	if !ok {
		respondError(w, r, http.StatusBadRequest, "INVALID_ID", "invalid book id")
		return
	}

	if err := h.library.AddBook(r.Context(), libraryID, bookID); err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, map[string]uint{"library": libraryID, "book": bookID})
}

// RemoveLibraryBook detaches a book from a library's collection.
func (h *Handlers) RemoveLibraryBook(w http.ResponseWriter, r *http.Request) {
	libraryID, ok := idParam(r, "id")
	if !ok {
		respondError(w, r, http.StatusBadRequest, "INVALID_ID", "invalid library id")
		return
	}
	bookID, ok := idParam(r, "bookID")
	if !ok {
		respondError(w, r, http.StatusBadRequest, "INVALID_ID", "invalid book id")
		return
	}

	if err := h.library.RemoveBook(r.Context(), libraryID, bookID); err != nil {
		respondStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AssignLibrarian assigns a librarian to a library. A library holds at
// most one librarian; a second assignment is a conflict.
func (h *Handlers) AssignLibrarian(w http.ResponseWriter, r *http.Request) {
	libraryID, ok := idParam(r, "id")
	if !ok {
		respondError(w, r, http.StatusBadRequest, "INVALID_ID", "invalid library id")
		return
	}

	var req assignLibrarianRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, r, &req) {
		return
	}

	librarian, err := h.library.AssignLibrarian(r.Context(), libraryID, req.Name)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, librarian)
}

// AdminDashboard is the admin-only role dashboard.
func (h *Handlers) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	h.dashboard(w, r, "admin")
}

// LibrarianDashboard is visible to librarians and admins.
func (h *Handlers) LibrarianDashboard(w http.ResponseWriter, r *http.Request) {
	h.dashboard(w, r, "librarian")
}

// MemberDashboard is visible to any authenticated user.
func (h *Handlers) MemberDashboard(w http.ResponseWriter, r *http.Request) {
	h.dashboard(w, r, "member")
}

func (h *Handlers) dashboard(w http.ResponseWriter, r *http.Request, view string) {
	subject := auth.SubjectFromContext(r.Context())
	respondData(w, r, http.StatusOK, map[string]interface{}{
		"view":     view,
		"username": subject.Username,
		"role":     subject.Role,
	})
}
