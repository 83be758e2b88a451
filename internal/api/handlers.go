// Wayfinder - Learning Content Recommendations over Topic Trees
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinder-learn/wayfinder

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wayfinder-learn/wayfinder/internal/activity"
	"github.com/wayfinder-learn/wayfinder/internal/logging"
	"github.com/wayfinder-learn/wayfinder/internal/metrics"
	"github.com/wayfinder-learn/wayfinder/internal/recommend"
	"github.com/wayfinder-learn/wayfinder/internal/topics"
)

// handlerTimeout bounds every request's downstream work.
const handlerTimeout = 10 * time.Second

// Pinger reports reachability of a backing store. The DuckDB store
// implements it; the in-memory store does not need to.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves the recommendation API endpoints.
type Handler struct {
	service *recommend.Service
	catalog *topics.Catalog
	pinger  Pinger // nil when the store has no health probe
}

// NewHandler creates the API handler. pinger may be nil.
func NewHandler(service *recommend.Service, catalog *topics.Catalog, pinger Pinger) *Handler {
	return &Handler{
		service: service,
		catalog: catalog,
		pinger:  pinger,
	}
}

// Resume handles GET /api/v1/recommendations/{learnerID}/resume.
func (h *Handler) Resume(w http.ResponseWriter, r *http.Request) {
	h.serveStrategy(w, r, "resume", func(ctx context.Context, learnerID string) (interface{}, int, error) {
		items, err := h.service.Resume(ctx, learnerID)
		return items, len(items), err
	})
}

// Next handles GET /api/v1/recommendations/{learnerID}/next.
func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	h.serveStrategy(w, r, "next", func(ctx context.Context, learnerID string) (interface{}, int, error) {
		items, err := h.service.Next(ctx, learnerID)
		return items, len(items), err
	})
}

// Explore handles GET /api/v1/recommendations/{learnerID}/explore.
func (h *Handler) Explore(w http.ResponseWriter, r *http.Request) {
	h.serveStrategy(w, r, "explore", func(ctx context.Context, learnerID string) (interface{}, int, error) {
		suggestions, err := h.service.Explore(ctx, learnerID)
		return suggestions, len(suggestions), err
	})
}

// serveStrategy runs one recommendation strategy with shared parameter
// validation, timeout, metrics, and error mapping.
func (h *Handler) serveStrategy(w http.ResponseWriter, r *http.Request, strategy string, run func(context.Context, string) (interface{}, int, error)) {
	rw := NewResponseWriter(w, r)

	learnerID := chi.URLParam(r, "learnerID")
	if learnerID == "" {
		rw.ValidationError("learner ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	start := time.Now()
	data, count, err := run(ctx, learnerID)
	metrics.RecordRecommendation(strategy, count, time.Since(start), err)

	if err != nil {
		logging.Ctx(ctx).Error().Err(err).
			Str("strategy", strategy).
			Str("learner_id", learnerID).
			Msg("recommendation failed")
		h.writeRecommendationError(rw, err)
		return
	}

	rw.SuccessWithMeta(data, &APIMeta{CatalogVersion: h.catalog.Version()})
}

// writeRecommendationError maps strategy errors to HTTP status codes.
// Collaborator outages and a missing catalog are 503s; anything else is a
// 500.
func (h *Handler) writeRecommendationError(rw *ResponseWriter, err error) {
	switch {
	case errors.Is(err, activity.ErrUnavailable):
		rw.ServiceUnavailable("activity log is unavailable")
	case errors.Is(err, topics.ErrUnavailable):
		rw.ServiceUnavailable("topic tree source is unavailable")
	case errors.Is(err, topics.ErrNotBuilt):
		rw.ServiceUnavailable("topic catalog is not built")
	default:
		rw.InternalError("failed to compute recommendations")
	}
}

// SubtopicExercises handles GET /api/v1/subtopics/{subtopicID}/exercises.
// Unknown subtopics yield an empty list, not a 404; the candidate contract
// does not distinguish unknown from exhausted.
func (h *Handler) SubtopicExercises(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	subtopicID := chi.URLParam(r, "subtopicID")
	if subtopicID == "" {
		rw.ValidationError("subtopic ID is required")
		return
	}

	exercises := h.service.SubtopicExercises(subtopicID)
	if exercises == nil {
		exercises = []string{}
	}

	rw.SuccessWithMeta(map[string]interface{}{
		"subtopic_id": subtopicID,
		"exercises":   exercises,
		"count":       len(exercises),
	}, &APIMeta{CatalogVersion: h.catalog.Version()})
}

// TreeReload handles POST /api/v1/tree/reload. It rebuilds the catalog from
// the configured source; on failure the previous snapshot stays published.
func (h *Handler) TreeReload(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	start := time.Now()
	err := h.catalog.Build(ctx)

	snapshot, snapErr := h.catalog.Snapshot()
	subtopics := 0
	if snapErr == nil {
		subtopics = len(snapshot.Adjacency)
	}
	metrics.RecordCatalogBuild(h.catalog.Version(), subtopics, time.Since(start), err)

	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("tree reload failed")
		switch {
		case errors.Is(err, topics.ErrMalformedTree):
			rw.ValidationError("topic tree is malformed")
		case errors.Is(err, topics.ErrUnavailable):
			rw.ServiceUnavailable("topic tree source is unavailable")
		default:
			rw.InternalError("failed to rebuild topic catalog")
		}
		return
	}

	rw.Success(map[string]interface{}{
		"catalog_version": h.catalog.Version(),
		"subtopics":       subtopics,
	})
}

// Health handles GET /api/v1/health. The service is healthy when a catalog
// snapshot is published and the activity store answers its probe; it is
// degraded otherwise, reported with a 503 so load balancers rotate it out.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	catalogOK := h.catalog.Version() > 0

	storeOK := true
	if h.pinger != nil {
		if err := h.pinger.Ping(ctx); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("activity store health probe failed")
			storeOK = false
		}
	}

	status := "healthy"
	if !catalogOK || !storeOK {
		status = "degraded"
	}

	body := map[string]interface{}{
		"status":          status,
		"catalog_built":   catalogOK,
		"catalog_version": h.catalog.Version(),
		"store_ok":        storeOK,
	}

	if status != "healthy" {
		rw.writeJSON(http.StatusServiceUnavailable, APIResponse{Success: false, Data: body})
		return
	}
	rw.Success(body)
}
