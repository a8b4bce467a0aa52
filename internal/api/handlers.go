// Restaurant Recommendation - Hybrid Graph Recommendations and Geospatial Search
// Copyright 2026 Gayathri Priya (Gayathri-Priya98)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Gayathri-Priya98/restaurant-recommendation

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/geosearch"
	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/logging"
	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/places"
	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/recommend"
	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/validation"
)

// PlacesLookup is the optional external enrichment for search responses.
type PlacesLookup interface {
	Nearby(ctx context.Context, text string, lat, lng float64) []places.Place
}

// Handlers serves the recommendation and search endpoints.
type Handlers struct {
	engine     *recommend.Engine
	store      *recommend.Store
	places     PlacesLookup
	searchOpts geosearch.Options
}

func NewHandlers(engine *recommend.Engine, store *recommend.Store, lookup PlacesLookup, searchOpts geosearch.Options) *Handlers {
	return &Handlers{engine: engine, store: store, places: lookup, searchOpts: searchOpts}
}

// recommendResponse is the data payload of GET /api/v1/recommend.
type recommendResponse struct {
	UserID          string                     `json:"user_id"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
}

// HandleRecommend serves GET /api/v1/recommend?user_id=<id>.
func (h *Handlers) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
	if userID == "" {
		rw.BadRequest("user_id is required")
		return
	}

	recs, err := h.engine.Recommend(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, recommend.ErrNotReady):
			rw.ServiceUnavailable("recommendation snapshot not ready")
		default:
			logging.Error().Err(err).Str("user_id", userID).Msg("Recommendation failed")
			rw.InternalError("recommendation failed")
		}
		return
	}

	if recs == nil {
		recs = []recommend.Recommendation{}
	}
	rw.Success(recommendResponse{UserID: userID, Recommendations: recs})
}

// searchParams holds the validated query parameters of the search endpoint.
type searchParams struct {
	Query string   `validate:"required"`
	Lat   *float64 `validate:"required,latitude"`
	Lng   *float64 `validate:"required,longitude"`
}

// searchResponse is the data payload of GET /api/v1/search.
type searchResponse struct {
	Query  string            `json:"query"`
	Nearby []geosearch.Match `json:"nearby"`
	Others []geosearch.Match `json:"others"`
	Places []places.Place    `json:"places"`
}

// HandleSearch serves GET /api/v1/search?query=<text>&lat=<f>&lng=<f>.
func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	params, errMsg := parseSearchParams(r)
	if errMsg != "" {
		rw.Error(http.StatusBadRequest, ErrCodeValidationFailed, errMsg)
		return
	}

	snap := h.store.Current()
	if snap == nil {
		rw.ServiceUnavailable("dataset snapshot not ready")
		return
	}

	result, err := geosearch.Search(snap.Tables.Businesses, geosearch.Query{
		Text: params.Query,
		Lat:  *params.Lat,
		Lng:  *params.Lng,
	}, h.searchOpts)
	if err != nil {
		var invalid *geosearch.InvalidQueryError
		if errors.As(err, &invalid) {
			rw.Error(http.StatusBadRequest, ErrCodeValidationFailed, invalid.Reason)
			return
		}
		logging.Error().Err(err).Msg("Search failed")
		rw.InternalError("search failed")
		return
	}

	resp := searchResponse{
		Query:  params.Query,
		Nearby: result.Nearby,
		Others: result.Others,
		Places: []places.Place{},
	}
	if h.places != nil {
		if found := h.places.Nearby(r.Context(), params.Query, *params.Lat, *params.Lng); found != nil {
			resp.Places = found
		}
	}
	rw.Success(resp)
}

// parseSearchParams extracts and validates search query parameters.
// Returns an empty message on success.
func parseSearchParams(r *http.Request) (searchParams, string) {
	q := r.URL.Query()
	params := searchParams{Query: strings.TrimSpace(q.Get("query"))}

	for _, c := range []struct {
		name   string
		target **float64
	}{
		{"lat", &params.Lat},
		{"lng", &params.Lng},
	} {
		raw := strings.TrimSpace(q.Get(c.name))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return params, c.name + " must be a number"
		}
		*c.target = &v
	}

	if err := validation.ValidateStruct(params); err != nil {
		var fieldErr *validation.FieldError
		if errors.As(err, &fieldErr) {
			return params, fieldErr.Message
		}
		return params, err.Error()
	}
	return params, ""
}
