// Restaurant Recommendation - Hybrid Graph Recommendations and Geospatial Search
// Copyright 2026 Gayathri Priya (Gayathri-Priya98)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Gayathri-Priya98/restaurant-recommendation

package api

import (
	"net/http"
	"strconv"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/logging"
	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/metrics"
)

// requestID assigns each request a unique ID, honoring one passed from an
// upstream proxy, and exposes it via response header and context.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(logging.ContextWithRequestID(r.Context(), id)))
	})
}

// requestLogger emits one structured log line per request and records the
// Prometheus request metrics.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		metrics.APIRequestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(ww.Status())).Inc()
		metrics.APIRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(elapsed.Seconds())

		logging.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("elapsed", elapsed).
			Str("request_id", logging.RequestIDFromContext(r.Context())).
			Msg("HTTP request")
	})
}
