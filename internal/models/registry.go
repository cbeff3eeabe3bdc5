// Folio - Book Catalog and Reading Community Platform
// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/folio-labs/folio

package models

// All returns every model participating in schema migration, in an order
// that satisfies foreign key creation.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Profile{},
		&Follow{},
		&Author{},
		&Book{},
		&Library{},
		&Librarian{},
		&BlogPost{},
		&BlogComment{},
		&Tag{},
		&Post{},
		&Comment{},
		&Like{},
		&Notification{},
	}
}
