// Folio - Book Catalog and Reading Community Platform
// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/folio-labs/folio

package models

import "time"

// Author is a book author in the catalog. Deleting an author cascades to
// their books.
type Author struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:200;not null;index" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Books []Book `gorm:"constraint:OnDelete:CASCADE" json:"books,omitempty"`
}

// Book is a catalog entry. PublicationYear must not be in the future;
// the validation layer rejects such writes before they reach the store.
type Book struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"size:300;not null;index" json:"title"`
	PublicationYear int       `gorm:"not null" json:"publication_year"`
	AuthorID        uint      `gorm:"not null;index" json:"author_id"`
	Author          *Author   `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Library groups books and is staffed by at most one librarian.
type Library struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:200;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Books     []*Book    `gorm:"many2many:library_books" json:"books,omitempty"`
	Librarian *Librarian `gorm:"constraint:OnDelete:CASCADE" json:"librarian,omitempty"`
}

// Librarian staffs exactly one library; the unique index on LibraryID
// makes the relationship one-to-one.
type Librarian struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	LibraryID uint      `gorm:"uniqueIndex;not null" json:"library_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
