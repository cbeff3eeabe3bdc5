// Folio - Book Catalog and Reading Community Platform
// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/folio-labs/folio

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLibraryCreateAndDuplicate(t *testing.T) {
	db := newTestDB(t)
	libraries := NewLibraryStore(db)
	ctx := context.Background()

	library, err := libraries.CreateLibrary(ctx, "Central Library")
	require.NoError(t, err)
	require.NotZero(t, library.ID)

	_, err = libraries.CreateLibrary(ctx, "Central Library")
	require.ErrorIs(t, err, ErrLibraryExists)
}

func TestLibraryBookAssignment(t *testing.T) {
	db := newTestDB(t)
	libraries := NewLibraryStore(db)
	catalog := NewCatalogStore(db)
	ctx := context.Background()

	library, err := libraries.CreateLibrary(ctx, "Branch")
	require.NoError(t, err)

	author, err := catalog.CreateAuthor(ctx, "Italo Calvino")
	require.NoError(t, err)
	book, err := catalog.CreateBook(ctx, "Invisible Cities", 1972, author.ID)
	require.NoError(t, err)

	require.NoError(t, libraries.AddBook(ctx, library.ID, book.ID))

	got, err := libraries.GetLibrary(ctx, library.ID)
	require.NoError(t, err)
	require.Len(t, got.Books, 1)
	require.Equal(t, "Invisible Cities", got.Books[0].Title)
	require.NotNil(t, got.Books[0].Author)

	require.NoError(t, libraries.RemoveBook(ctx, library.ID, book.ID))

	got, err = libraries.GetLibrary(ctx, library.ID)
	require.NoError(t, err)
	require.Empty(t, got.Books)

	require.ErrorIs(t, libraries.AddBook(ctx, library.ID, 9999), ErrNotFound)
	require.ErrorIs(t, libraries.AddBook(ctx, 9999, book.ID), ErrNotFound)
}

func TestLibraryAssignLibrarian(t *testing.T) {
	db := newTestDB(t)
	libraries := NewLibraryStore(db)
	ctx := context.Background()

	library, err := libraries.CreateLibrary(ctx, "Main")
	require.NoError(t, err)

	librarian, err := libraries.AssignLibrarian(ctx, library.ID, "Morgan")
	require.NoError(t, err)
	require.Equal(t, "Morgan", librarian.Name)

	// A library holds one librarian.
	_, err = libraries.AssignLibrarian(ctx, library.ID, "Riley")
	require.ErrorIs(t, err, ErrLibrarianAssigned)

	got, err := libraries.GetLibrary(ctx, library.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Librarian)
	require.Equal(t, "Morgan", got.Librarian.Name)

	_, err = libraries.AssignLibrarian(ctx, 9999, "Nobody")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLibraryDelete(t *testing.T) {
	db := newTestDB(t)
	libraries := NewLibraryStore(db)
	catalog := NewCatalogStore(db)
	ctx := context.Background()

	library, err := libraries.CreateLibrary(ctx, "Closing Soon")
	require.NoError(t, err)

	author, err := catalog.CreateAuthor(ctx, "Someone")
	require.NoError(t, err)
	book, err := catalog.CreateBook(ctx, "A Book", 2001, author.ID)
	require.NoError(t, err)
	require.NoError(t, libraries.AddBook(ctx, library.ID, book.ID))

	require.NoError(t, libraries.DeleteLibrary(ctx, library.ID))
	_, err = libraries.GetLibrary(ctx, library.ID)
	require.ErrorIs(t, err, ErrNotFound)

	// The catalog keeps the book.
	_, err = catalog.GetBook(ctx, book.ID)
	require.NoError(t, err)

	require.ErrorIs(t, libraries.DeleteLibrary(ctx, 9999), ErrNotFound)
}
