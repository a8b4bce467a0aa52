// Restaurant Recommendation - Hybrid Graph Recommendations and Geospatial Search
// Copyright 2026 Gayathri Priya (Gayathri-Priya98)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Gayathri-Priya98/restaurant-recommendation

package places

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/config"
)

func testConfig(baseURL string) config.PlacesConfig {
	return config.PlacesConfig{
		Enabled:       true,
		BaseURL:       baseURL,
		APIKey:        "test-key",
		RadiusM:       5000,
		Limit:         20,
		Timeout:       2 * time.Second,
		RatePerSecond: 100,
	}
}

const featurePayload = `{
	"features": [
		{"properties": {"name": "Taco Sol", "lat": 36.11, "lon": -115.17}},
		{"properties": {"name": "", "lat": 36.12, "lon": -115.17}},
		{"properties": {"name": "Pho Bay", "lat": 36.12, "lon": -115.18}}
	]
}`

func TestNearbyParsesFeatures(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(featurePayload))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))
	got := c.Nearby(context.Background(), "taco", 36.11, -115.17)

	// The unnamed feature is dropped.
	if len(got) != 2 {
		t.Fatalf("got %d places, want 2: %+v", len(got), got)
	}
	if got[0].Name != "Taco Sol" {
		t.Errorf("first place = %q, want Taco Sol", got[0].Name)
	}
	if got[0].DistanceKM != 0 {
		t.Errorf("co-located place distance = %v, want 0", got[0].DistanceKM)
	}
	if got[1].DistanceKM <= 0 {
		t.Errorf("second place distance = %v, want > 0", got[1].DistanceKM)
	}

	if gotQuery.Get("apiKey") != "test-key" {
		t.Error("request missing api key")
	}
	if gotQuery.Get("limit") != "20" {
		t.Errorf("limit = %q, want 20", gotQuery.Get("limit"))
	}
	if gotQuery.Get("filter") == "" {
		t.Error("request missing circle filter")
	}
}

func TestNearbyDisabled(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.Enabled = false

	c := NewClient(cfg)
	if got := c.Nearby(context.Background(), "taco", 36.11, -115.17); got != nil {
		t.Errorf("disabled client returned %d places, want nil", len(got))
	}
}

func TestNearbyUpstreamErrorDegradesToEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))
	if got := c.Nearby(context.Background(), "taco", 36.11, -115.17); len(got) != 0 {
		t.Errorf("failed lookup returned %d places, want 0", len(got))
	}
}

func TestNearbyMalformedBodyDegradesToEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))
	if got := c.Nearby(context.Background(), "taco", 36.11, -115.17); len(got) != 0 {
		t.Errorf("malformed response yielded %d places, want 0", len(got))
	}
}

func TestNearbyRateLimited(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"features": []}`))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.RatePerSecond = 1 // burst of one token
	c := NewClient(cfg)

	c.Nearby(context.Background(), "taco", 36.11, -115.17)
	if got := c.Nearby(context.Background(), "taco", 36.11, -115.17); len(got) != 0 {
		t.Errorf("rate-limited lookup returned %d places, want 0", len(got))
	}
	if calls != 1 {
		t.Errorf("upstream saw %d calls, want 1", calls)
	}
}

func TestCircuitOpensAfterRepeatedFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))
	for i := 0; i < 12; i++ {
		c.Nearby(context.Background(), "taco", 36.11, -115.17)
	}

	if c.cb.State() != gobreaker.StateOpen {
		t.Errorf("breaker state = %v, want open after sustained failures", c.cb.State())
	}
}
