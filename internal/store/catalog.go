// Folio - Book Catalog and Reading Community Platform
// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/folio-labs/folio

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/folio-labs/folio/internal/models"
)

// CatalogStore manages authors and books.
type CatalogStore struct {
	db *gorm.DB
}

// NewCatalogStore creates a catalog store.
func NewCatalogStore(db *gorm.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

// BookFilter narrows and orders a book listing.
type BookFilter struct {
	// Search matches a substring of the title or the author name.
	Search string

	// AuthorID filters to one author when non-zero.
	AuthorID uint

	// PublicationYear filters to one year when non-zero.
	PublicationYear int

	// Ordering is "title" or "publication_year", with a leading '-' for
	// descending. Unknown values fall back to the default ordering by id.
	Ordering string

	Page     int
	PageSize int
}

// bookOrderings maps accepted ordering fields to their SQL columns.
// Anything not listed here never reaches the ORDER BY clause.
var bookOrderings = map[string]string{
	"title":            "title",
	"publication_year": "publication_year",
	"created_at":       "created_at",
}

// ListAuthors returns a page of authors with their books preloaded.
func (s *CatalogStore) ListAuthors(ctx context.Context, page, pageSize int) ([]models.Author, int64, error) {
	var (
		authors []models.Author
		count   int64
	)
	q := s.db.WithContext(ctx).Model(&models.Author{})
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count authors: %w", err)
	}
	err := q.Preload("Books").
		Order("name").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&authors).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list authors: %w", err)
	}
	return authors, count, nil
}

// CreateAuthor adds an author to the catalog.
func (s *CatalogStore) CreateAuthor(ctx context.Context, name string) (*models.Author, error) {
	author := &models.Author{Name: name}
	if err := s.db.WithContext(ctx).Create(author).Error; err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}
	return author, nil
}

// GetAuthor returns one author with their books.
func (s *CatalogStore) GetAuthor(ctx context.Context, id uint) (*models.Author, error) {
	var author models.Author
	err := s.db.WithContext(ctx).Preload("Books").First(&author, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load author %d: %w", id, err)
	}
	return &author, nil
}

// DeleteAuthor removes an author; their books go with them.
func (s *CatalogStore) DeleteAuthor(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Author{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete author %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		// SQLite without FK cascades compiled in still needs the books gone.
		return tx.Where("author_id = ?", id).Delete(&models.Book{}).Error
	})
}

// ListBooks returns a filtered, ordered page of books with authors preloaded.
func (s *CatalogStore) ListBooks(ctx context.Context, f BookFilter) ([]models.Book, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Book{})

	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		q = q.Joins("JOIN authors ON authors.id = books.author_id").
			Where("LOWER(books.title) LIKE ? OR LOWER(authors.name) LIKE ?", pattern, pattern)
	}
	if f.AuthorID != 0 {
		q = q.Where("books.author_id = ?", f.AuthorID)
	}
	if f.PublicationYear != 0 {
		q = q.Where("books.publication_year = ?", f.PublicationYear)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	q = q.Order(orderClause(f.Ordering, bookOrderings, "books.id"))

	var books []models.Book
	err := q.Preload("Author").
		Offset((f.Page - 1) * f.PageSize).
		Limit(f.PageSize).
		Find(&books).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}
	return books, count, nil
}

// orderClause resolves a user-supplied ordering field against an allow
// list, honoring a leading '-' for descending order.
func orderClause(ordering string, allowed map[string]string, fallback string) string {
	desc := strings.HasPrefix(ordering, "-")
	field := strings.TrimPrefix(ordering, "-")
	column, ok := allowed[field]
	if !ok {
		return fallback
	}
	if desc {
		return column + " DESC"
	}
	return column
}

// CreateBook adds a book under an existing author.
func (s *CatalogStore) CreateBook(ctx context.Context, title string, publicationYear int, authorID uint) (*models.Book, error) {
	var author models.Author
	if err := s.db.WithContext(ctx).First(&author, authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to check author %d: %w", authorID, err)
	}

	book := &models.Book{Title: title, PublicationYear: publicationYear, AuthorID: authorID}
	if err := s.db.WithContext(ctx).Create(book).Error; err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}
	book.Author = &author
	return book, nil
}

// GetBook returns one book with its author.
func (s *CatalogStore) GetBook(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	err := s.db.WithContext(ctx).Preload("Author").First(&book, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load book %d: %w", id, err)
	}
	return &book, nil
}

// UpdateBook rewrites a book's fields.
func (s *CatalogStore) UpdateBook(ctx context.Context, id uint, title string, publicationYear int, authorID uint) (*models.Book, error) {
	book, err := s.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}
	if authorID != book.AuthorID {
		var author models.Author
		if err := s.db.WithContext(ctx).First(&author, authorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("failed to check author %d: %w", authorID, err)
		}
	}

	updates := map[string]interface{}{
		"title":            title,
		"publication_year": publicationYear,
		"author_id":        authorID,
	}
	if err := s.db.WithContext(ctx).Model(book).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update book %d: %w", id, err)
	}
	return s.GetBook(ctx, id)
}

// DeleteBook removes a book.
func (s *CatalogStore) DeleteBook(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Book{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete book %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
