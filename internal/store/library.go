// Folio - Book Catalog and Reading Community Platform
// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/folio-labs/folio

package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/folio-labs/folio/internal/models"
)

// LibraryStore manages libraries, their book collections, and librarians.
type LibraryStore struct {
	db *gorm.DB
}

// NewLibraryStore creates a library store.
func NewLibraryStore(db *gorm.DB) *LibraryStore {
	return &LibraryStore{db: db}
}

// ListLibraries returns a page of libraries with book collections and
// librarians preloaded.
func (s *LibraryStore) ListLibraries(ctx context.Context, page, pageSize int) ([]models.Library, int64, error) {
	var (
		libraries []models.Library
		count     int64
	)
	q := s.db.WithContext(ctx).Model(&models.Library{})
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count libraries: %w", err)
	}
	err := q.Preload("Books").Preload("Librarian").
		Order("name").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&libraries).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list libraries: %w", err)
	}
	return libraries, count, nil
}

// CreateLibrary adds a library. Names are unique.
func (s *LibraryStore) CreateLibrary(ctx context.Context, name string) (*models.Library, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Library{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check library name: %w", err)
	}
	if count > 0 {
		return nil, ErrLibraryExists
	}

	library := &models.Library{Name: name}
	if err := s.db.WithContext(ctx).Create(library).Error; err != nil {
		return nil, fmt.Errorf("failed to create library: %w", err)
	}
	return library, nil
}

// GetLibrary returns one library with its books (and their authors) and
// its librarian.
func (s *LibraryStore) GetLibrary(ctx context.Context, id uint) (*models.Library, error) {
	var library models.Library
	err := s.db.WithContext(ctx).
		Preload("Books.Author").
		Preload("Librarian").
		First(&library, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load library %d: %w", id, err)
	}
	return &library, nil
}

// DeleteLibrary removes a library, its book associations, and its librarian.
func (s *LibraryStore) DeleteLibrary(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var library models.Library
		if err := tx.First(&library, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load library %d: %w", id, err)
		}
		if err := tx.Model(&library).Association("Books").Clear(); err != nil {
			return fmt.Errorf("failed to clear library books: %w", err)
		}
		if err := tx.Where("library_id = ?", id).Delete(&models.Librarian{}).Error; err != nil {
			return fmt.Errorf("failed to delete librarian: %w", err)
		}
		return tx.Delete(&library).Error
	})
}

// AddBook places an existing catalog book into a library's collection.
// Adding the same book twice is a no-op.
func (s *LibraryStore) AddBook(ctx context.Context, libraryID, bookID uint) error {
	library, book, err := s.libraryAndBook(ctx, libraryID, bookID)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Model(library).Association("Books").Append(book); err != nil {
		return fmt.Errorf("failed to add book %d to library %d: %w", bookID, libraryID, err)
	}
	return nil
}

// RemoveBook takes a book out of a library's collection.
func (s *LibraryStore) RemoveBook(ctx context.Context, libraryID, bookID uint) error {
	library, book, err := s.libraryAndBook(ctx, libraryID, bookID)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Model(library).Association("Books").Delete(book); err != nil {
		return fmt.Errorf("failed to remove book %d from library %d: %w", bookID, libraryID, err)
	}
	return nil
}

func (s *LibraryStore) libraryAndBook(ctx context.Context, libraryID, bookID uint) (*models.Library, *models.Book, error) {
	var library models.Library
	if err := s.db.WithContext(ctx).First(&library, libraryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to load library %d: %w", libraryID, err)
	}
	var book models.Book
	if err := s.db.WithContext(ctx).First(&book, bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to load book %d: %w", bookID, err)
	}
	return &library, &book, nil
}

// AssignLibrarian staffs a library. A library holds at most one librarian;
// assigning a second one fails with ErrLibrarianAssigned.
func (s *LibraryStore) AssignLibrarian(ctx context.Context, libraryID uint, name string) (*models.Librarian, error) {
	librarian := &models.Librarian{Name: name, LibraryID: libraryID}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var library models.Library
		if err := tx.First(&library, libraryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load library %d: %w", libraryID, err)
		}
		var count int64
		if err := tx.Model(&models.Librarian{}).Where("library_id = ?", libraryID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check librarian: %w", err)
		}
		if count > 0 {
			return ErrLibrarianAssigned
		}
		return tx.Create(librarian).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrLibrarianAssigned) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to assign librarian: %w", err)
	}
	return librarian, nil
}

// GetLibrarian returns the librarian staffing a library.
func (s *LibraryStore) GetLibrarian(ctx context.Context, libraryID uint) (*models.Librarian, error) {
	var librarian models.Librarian
	err := s.db.WithContext(ctx).Where("library_id = ?", libraryID).First(&librarian).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load librarian for library %d: %w", libraryID, err)
	}
	return &librarian, nil
}
