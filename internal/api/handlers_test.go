// Restaurant Recommendation - Hybrid Graph Recommendations and Geospatial Search
// Copyright 2026 Gayathri Priya (Gayathri-Priya98)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Gayathri-Priya98/restaurant-recommendation

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/config"
	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/dataset"
	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/embedding"
	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/geosearch"
	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/places"
	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/recommend"
)

type staticSource struct {
	tables *dataset.Tables
}

func (s *staticSource) Load(context.Context) (*dataset.Tables, error) {
	return s.tables, nil
}

type staticPlaces struct {
	result []places.Place
}

func (s *staticPlaces) Nearby(context.Context, string, float64, float64) []places.Place {
	return s.result
}

func identityModel(dim int) *embedding.Model {
	eye := func() [][]float64 {
		w := make([][]float64, dim)
		for i := range w {
			w[i] = make([]float64, dim)
			w[i][i] = 1
		}
		return w
	}
	return &embedding.Model{W1: eye(), W2: eye()}
}

func testTables() *dataset.Tables {
	return dataset.Normalize(
		[]dataset.User{
			{ID: "u1", AverageStars: 4, ReviewCount: 3},
			{ID: "u2", AverageStars: 3, ReviewCount: 2},
		},
		[]dataset.Business{
			{ID: "b1", Name: "Taco Sol", Categories: "Mexican", Stars: 4.5, ReviewCount: 200, Latitude: 36.11, Longitude: -115.17},
			{ID: "b2", Name: "Pho Bay", Categories: "Vietnamese", Stars: 4.0, ReviewCount: 150, Latitude: 36.15, Longitude: -115.17},
		},
		[]dataset.Interaction{
			{UserID: "u1", BusinessID: "b1", Stars: 5, Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		},
	)
}

// newTestServer builds a full router over a freshly rebuilt snapshot.
func newTestServer(t *testing.T, lookup PlacesLookup) *httptest.Server {
	t.Helper()

	store := recommend.NewStore(&staticSource{tables: testTables()}, identityModel(4), 4)
	if err := store.Rebuild(context.Background()); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	h := NewHandlers(recommend.NewEngine(store, recommend.Options{}), store, lookup, geosearch.Options{})
	srv := httptest.NewServer(NewRouter(config.ServerConfig{}, h))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string) (int, APIResponse, *http.Response) {
	t.Helper()
	resp, err := http.Get(url) //nolint:gosec // test server URL
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	var envelope APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, envelope, resp
}

func TestRecommendEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)

	status, envelope, resp := getJSON(t, srv.URL+"/api/v1/recommend?user_id=u1")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if !envelope.Success {
		t.Error("expected success envelope")
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}

	data, _ := json.Marshal(envelope.Data)
	var payload recommendResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.UserID != "u1" {
		t.Errorf("user_id = %q, want u1", payload.UserID)
	}
	if len(payload.Recommendations) == 0 {
		t.Error("expected recommendations for known user")
	}
}

func TestRecommendEndpointUnknownUser(t *testing.T) {
	srv := newTestServer(t, nil)

	status, envelope, _ := getJSON(t, srv.URL+"/api/v1/recommend?user_id=ghost")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if !envelope.Success {
		t.Error("expected success envelope")
	}

	data, _ := json.Marshal(envelope.Data)
	var payload recommendResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if len(payload.Recommendations) == 0 {
		t.Fatal("unknown user should still get the popularity list")
	}
	for _, r := range payload.Recommendations {
		if r.Source != recommend.SourcePopularity {
			t.Errorf("business %s source = %s, want %s", r.BusinessID, r.Source, recommend.SourcePopularity)
		}
	}
}

func TestRecommendEndpointErrors(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantCode   string
	}{
		{"missing user_id", "/api/v1/recommend", http.StatusBadRequest, ErrCodeBadRequest},
		{"blank user_id", "/api/v1/recommend?user_id=%20%20", http.StatusBadRequest, ErrCodeBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, envelope, _ := getJSON(t, srv.URL+tt.path)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if envelope.Success {
				t.Error("expected error envelope")
			}
			if envelope.Error == nil || envelope.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want code %s", envelope.Error, tt.wantCode)
			}
		})
	}
}

func TestRecommendNotReady(t *testing.T) {
	store := recommend.NewStore(&staticSource{tables: testTables()}, identityModel(4), 4)
	h := NewHandlers(recommend.NewEngine(store, recommend.Options{}), store, nil, geosearch.Options{})
	srv := httptest.NewServer(NewRouter(config.ServerConfig{}, h))
	defer srv.Close()

	status, envelope, _ := getJSON(t, srv.URL+"/api/v1/recommend?user_id=u1")
	if status != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", status)
	}
	if envelope.Error == nil || envelope.Error.Code != ErrCodeServiceUnavailable {
		t.Errorf("error = %+v, want %s", envelope.Error, ErrCodeServiceUnavailable)
	}
}

func TestSearchEndpoint(t *testing.T) {
	lookup := &staticPlaces{result: []places.Place{{Name: "Museum", Latitude: 36.1, Longitude: -115.2, DistanceKM: 3.1}}}
	srv := newTestServer(t, lookup)

	status, envelope, _ := getJSON(t, srv.URL+"/api/v1/search?query=mexican&lat=36.11&lng=-115.17")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}

	data, _ := json.Marshal(envelope.Data)
	var payload searchResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if len(payload.Nearby) != 1 || payload.Nearby[0].BusinessID != "b1" {
		t.Errorf("nearby = %+v, want [b1]", payload.Nearby)
	}
	if len(payload.Places) != 1 || payload.Places[0].Name != "Museum" {
		t.Errorf("places = %+v, want the stubbed museum", payload.Places)
	}
}

func TestSearchEndpointValidation(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		name string
		path string
	}{
		{"missing query", "/api/v1/search?lat=36&lng=-115"},
		{"missing lat", "/api/v1/search?query=taco&lng=-115"},
		{"latitude out of range", "/api/v1/search?query=taco&lat=91&lng=-115"},
		{"longitude out of range", "/api/v1/search?query=taco&lat=36&lng=181"},
		{"non-numeric lat", "/api/v1/search?query=taco&lat=zzz&lng=-115"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, envelope, _ := getJSON(t, srv.URL+tt.path)
			if status != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", status)
			}
			if envelope.Error == nil {
				t.Fatal("expected error envelope")
			}
		})
	}
}

func TestSearchWithoutPlacesLookup(t *testing.T) {
	srv := newTestServer(t, nil)

	status, envelope, _ := getJSON(t, srv.URL+"/api/v1/search?query=pho&lat=36.11&lng=-115.17")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}

	data, _ := json.Marshal(envelope.Data)
	var payload searchResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.Places == nil || len(payload.Places) != 0 {
		t.Errorf("places = %+v, want empty non-nil slice", payload.Places)
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)

	status, envelope, _ := getJSON(t, srv.URL+"/healthz")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}

	data, _ := json.Marshal(envelope.Data)
	var payload healthResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if !payload.Ready || payload.Users != 2 || payload.Businesses != 2 {
		t.Errorf("health = %+v, want ready with 2 users and 2 businesses", payload)
	}
}
