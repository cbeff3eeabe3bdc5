// Folio - Book Catalog and Reading Community Platform
// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/folio-labs/folio

package api

import (
	"net/http"

	"github.com/folio-labs/folio/internal/store"
)

type createAuthorRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type bookRequest struct {
	Title           string `json:"title" validate:"required,max=200"`
	PublicationYear int    `json:"publication_year" validate:"required,notfuture"`
	AuthorID        uint   `json:"author" validate:"required"`
}

// ListAuthors returns a page of authors with their books.
func (h *Handlers) ListAuthors(w http.ResponseWriter, r *http.Request) {
	page, pageSize := h.pageParams(r)

	authors, count, err := h.catalog.ListAuthors(r.Context(), page, pageSize)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondPage(w, r, count, page, pageSize, authors)
}

// CreateAuthor creates an author.
func (h *Handlers) CreateAuthor(w http.ResponseWriter, r *http.Request) {
	var req createAuthorRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, r, &req) {
		return
	}

	author, err := h.catalog.CreateAuthor(r.Context(), req.Name)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, author)
}

// GetAuthor returns one author with their books.
func (h *Handlers) GetAuthor(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, r, http.StatusBadRequest, "INVALID_ID", "invalid author id")
		return
	}

	author, err := h.catalog.GetAuthor(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, author)
}

// DeleteAuthor removes an author and their books.
func (h *Handlers) DeleteAuthor(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, r, http.StatusBadRequest, "INVALID_ID", "invalid author id")
		return
	}

	if err := h.catalog.DeleteAuthor(r.Context(), id); err != nil {
		respondStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListBooks returns a page of books, honoring search, author and
// publication_year filters, and the ordering parameter.
func (h *Handlers) ListBooks(w http.ResponseWriter, r *http.Request) {
	page, pageSize := h.pageParams(r)
	q := r.URL.Query()

	filter := store.BookFilter{
		Search:          q.Get("search"),
		AuthorID:        uint(getIntParam(r, "author", 0)),
		PublicationYear: getIntParam(r, "publication_year", 0),
		Ordering:        q.Get("ordering"),
		Page:            page,
		PageSize:        pageSize,
	}

	books, count, err := h.catalog.ListBooks(r.Context(), filter)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondPage(w, r, count, page, pageSize, books)
}

// CreateBook creates a book under an existing author.
func (h *Handlers) CreateBook(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, r, &req) {
		return
	}

	book, err := h.catalog.CreateBook(r.Context(), req.Title, req.PublicationYear, req.AuthorID)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, book)
}

// GetBook returns one book with its author.
func (h *Handlers) GetBook(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, r, http.StatusBadRequest, "INVALID_ID", "invalid book id")
		return
	}

	book, err := h.catalog.GetBook(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, book)
}

// UpdateBook replaces a book's title, publication year, and author.
func (h *Handlers) UpdateBook(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, r, http.StatusBadRequest, "INVALID_ID", "invalid book id")
		return
	}

	var req bookRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, r, &req) {
		return
	}

	book, err := h.catalog.UpdateBook(r.Context(), id, req.Title, req.PublicationYear, req.AuthorID)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, book)
}

// DeleteBook removes a book.
func (h *Handlers) DeleteBook(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, r, http.StatusBadRequest, "INVALID_ID", "invalid book id")
		return
	}

	if err := h.catalog.DeleteBook(r.Context(), id); err != nil {
		respondStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
