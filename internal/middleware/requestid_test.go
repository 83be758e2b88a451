// Wayfinder - Learning Content Recommendations over Topic Trees
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinder-learn/wayfinder

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wayfinder-learn/wayfinder/internal/logging"
)

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	var ctxID string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = logging.RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	headerID := rec.Header().Get("X-Request-ID")
	if headerID == "" {
		t.Fatal("Expected a generated X-Request-ID header")
	}
	if ctxID != headerID {
		t.Errorf("Context ID %q does not match header ID %q", ctxID, headerID)
	}
}

func TestRequestID_HonorsIncoming(t *testing.T) {
	var ctxID string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = logging.RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "upstream-id")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "upstream-id" {
		t.Errorf("Header = %q, want upstream-id", got)
	}
	if ctxID != "upstream-id" {
		t.Errorf("Context ID = %q, want upstream-id", ctxID)
	}
}
