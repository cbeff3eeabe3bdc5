// Folio - Book Catalog and Reading Community Platform
// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/folio-labs/folio

package api

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/folio-labs/folio/internal/config"
	"github.com/folio-labs/folio/internal/logging"
)

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logging.RequestIDFromContext(r.Context())
	}))

	t.Run("generates an id", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		if seen == "" {
			t.Error("request id missing from context")
		}
		if got := w.Header().Get("X-Request-ID"); got != seen {
			t.Errorf("X-Request-ID = %q, want %q", got, seen)
		}
	})

	t.Run("propagates a client-supplied id", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Request-ID", "client-id-123")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		if seen != "client-id-123" {
			t.Errorf("context id = %q, want client-id-123", seen)
		}
	})
}

func TestCompressionMiddleware(t *testing.T) {
	body := strings.Repeat("folio ", 200)
	handler := Compression(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))

	t.Run("gzips when accepted", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Accept-Encoding", "gzip")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		if w.Header().Get("Content-Encoding") != "gzip" {
			t.Fatal("missing gzip content encoding")
		}

		gz, err := gzip.NewReader(w.Body)
		if err != nil {
			t.Fatalf("gzip.NewReader() error = %v", err)
		}
		decoded, err := io.ReadAll(gz)
		if err != nil {
			t.Fatalf("reading gzip body: %v", err)
		}
		if string(decoded) != body {
			t.Error("decompressed body does not match")
		}
	})

	t.Run("passes through without accept header", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		if w.Header().Get("Content-Encoding") == "gzip" {
			t.Error("unexpected gzip encoding")
		}
		if w.Body.String() != body {
			t.Error("body does not match")
		}
	})

	t.Run("leaves 204 responses bodiless", func(t *testing.T) {
		noContent := Compression(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))

		r := httptest.NewRequest(http.MethodDelete, "/", nil)
		r.Header.Set("Accept-Encoding", "gzip")
		w := httptest.NewRecorder()
		noContent.ServeHTTP(w, r)

		if w.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204", w.Code)
		}
		if got := w.Header().Get("Content-Encoding"); got != "" {
			t.Errorf("Content-Encoding = %q, want none", got)
		}
		if w.Body.Len() != 0 {
			t.Errorf("body has %d bytes, want none", w.Body.Len())
		}
	})
}

func TestRateLimitDisabled(t *testing.T) {
	mw := NewChiMiddleware(&config.SecurityConfig{
		RateLimitDisabled:     true,
		RateLimitRequests:     1,
		RateLimitWindow:       time.Minute,
		AuthRateLimitRequests: 1,
		AuthRateLimitWindow:   time.Minute,
	})

	handler := mw.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i+1, w.Code)
		}
	}
}

func TestRateLimitEnforced(t *testing.T) {
	mw := NewChiMiddleware(&config.SecurityConfig{
		RateLimitRequests: 2,
		RateLimitWindow:   time.Minute,
	})

	handler := mw.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	var last int
	for i := 0; i < 3; i++ {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "198.51.100.7:1234"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		last = w.Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("third request status = %d, want 429", last)
	}
}
