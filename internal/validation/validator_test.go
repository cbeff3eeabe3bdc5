// Folio - Book Catalog and Reading Community Platform
// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/folio-labs/folio

package validation

import (
	"testing"
	"time"
)

type bookForm struct {
	Title           string `validate:"required,max=200"`
	PublicationYear int    `validate:"required,notfuture"`
}

type roleForm struct {
	Role string `validate:"required,role"`
}

func TestValidateNotFuture(t *testing.T) {
	currentYear := time.Now().Year()

	tests := []struct {
		name    string
		year    int
		wantErr bool
	}{
		{name: "past year", year: 1949, wantErr: false},
		{name: "current year", year: currentYear, wantErr: false},
		{name: "next year", year: currentYear + 1, wantErr: true},
		{name: "far future", year: currentYear + 100, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&bookForm{Title: "Test", PublicationYear: tt.year})
			if tt.wantErr && err == nil {
				t.Error("ValidateStruct() expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateStruct() unexpected error = %v", err)
			}
		})
	}
}

func TestValidateRole(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		wantErr bool
	}{
		{name: "admin", role: "admin", wantErr: false},
		{name: "librarian", role: "librarian", wantErr: false},
		{name: "member", role: "member", wantErr: false},
		{name: "unknown role", role: "superuser", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&roleForm{Role: tt.role})
			if tt.wantErr && err == nil {
				t.Error("ValidateStruct() expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateStruct() unexpected error = %v", err)
			}
		})
	}
}

func TestValidationErrorDetails(t *testing.T) {
	err := ValidateStruct(&bookForm{})
	if err == nil {
		t.Fatal("ValidateStruct() expected error, got nil")
	}

	fields := err.Fields()
	if len(fields) != 2 {
		t.Fatalf("Fields() returned %d entries, want 2", len(fields))
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if apiErr.Details["fields"] == nil {
		t.Error("Details missing fields entry")
	}
}
