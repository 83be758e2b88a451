// Wayfinder - Learning Content Recommendations over Topic Trees
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinder-learn/wayfinder

// Package middleware provides HTTP middleware shared by all API routes.
package middleware

import (
	"net/http"

	"github.com/wayfinder-learn/wayfinder/internal/logging"
)

// RequestID ensures every request carries an X-Request-ID header and the
// matching ID in its context. An incoming header is honored so upstream
// proxies can correlate; otherwise a new ID is generated.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = logging.GenerateRequestID()
		}

		ctx := logging.ContextWithRequestID(r.Context(), requestID)
		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
