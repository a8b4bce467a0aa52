// Restaurant Recommendation - Hybrid Graph Recommendations and Geospatial Search
// Copyright 2026 Gayathri Priya (Gayathri-Priya98)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Gayathri-Priya98/restaurant-recommendation

// Package places looks up nearby points of interest from the Geoapify
// Places API. Lookups are best-effort: rate limits, open circuits, and
// upstream failures all degrade to an empty list so search responses never
// depend on the external service.
package places

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/config"
	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/geosearch"
	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/logging"
	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/metrics"
)

// Place is one point of interest returned by the upstream API.
type Place struct {
	Name       string  `json:"name"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	DistanceKM float64 `json:"distance_km"`
}

// geoapifyResponse mirrors the subset of the Geoapify features payload we
// read.
type geoapifyResponse struct {
	Features []struct {
		Properties struct {
			Name string  `json:"name"`
			Lat  float64 `json:"lat"`
			Lon  float64 `json:"lon"`
		} `json:"properties"`
	} `json:"features"`
}

// Client calls the places API behind a circuit breaker and a client-side
// rate limiter.
type Client struct {
	cfg     config.PlacesConfig
	http    *http.Client
	cb      *gobreaker.CircuitBreaker[[]Place]
	limiter *rate.Limiter
}

const breakerName = "places-api"

// NewClient builds a places client from configuration. The breaker opens
// after a 60% failure rate over at least 10 requests, matching the
// resilience posture used for other upstream integrations.
func NewClient(cfg config.PlacesConfig) *Client {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]Place](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Places circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	perSecond := cfg.RatePerSecond
	if perSecond <= 0 {
		perSecond = 5
	}
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: timeout},
		cb:      cb,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// Nearby returns points of interest matching text around (lat, lng). All
// failure modes return an empty slice; callers treat the section as
// optional enrichment.
func (c *Client) Nearby(ctx context.Context, text string, lat, lng float64) []Place {
	if !c.cfg.Enabled {
		return nil
	}

	if !c.limiter.Allow() {
		metrics.PlacesLookupsTotal.WithLabelValues("rate_limited").Inc()
		logging.Debug().Msg("Places lookup skipped: client-side rate limit")
		return nil
	}

	start := time.Now()
	result, err := c.cb.Execute(func() ([]Place, error) {
		return c.fetch(ctx, text, lat, lng)
	})
	metrics.PlacesLookupDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		outcome := "error"
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			outcome = "open_circuit"
		}
		metrics.PlacesLookupsTotal.WithLabelValues(outcome).Inc()
		logging.Warn().Err(err).Str("outcome", outcome).Msg("Places lookup failed, serving without places")
		return nil
	}

	metrics.PlacesLookupsTotal.WithLabelValues("success").Inc()
	return result
}

func (c *Client) fetch(ctx context.Context, text string, lat, lng float64) ([]Place, error) {
	q := url.Values{}
	q.Set("text", text)
	q.Set("filter", fmt.Sprintf("circle:%f,%f,%d", lng, lat, c.cfg.RadiusM))
	q.Set("bias", fmt.Sprintf("proximity:%f,%f", lng, lat))
	q.Set("limit", fmt.Sprintf("%d", c.cfg.Limit))
	q.Set("apiKey", c.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build places request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("places API returned status %d", resp.StatusCode)
	}

	var payload geoapifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode places response: %w", err)
	}

	out := make([]Place, 0, len(payload.Features))
	for _, f := range payload.Features {
		p := f.Properties
		if p.Name == "" {
			continue
		}
		out = append(out, Place{
			Name:       p.Name,
			Latitude:   p.Lat,
			Longitude:  p.Lon,
			DistanceKM: roundTo2Decimals(geosearch.Haversine(lat, lng, p.Lat, p.Lon)),
		})
	}
	return out, nil
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	default:
		return 2
	}
}

func roundTo2Decimals(v float64) float64 {
	return math.Round(v*100) / 100
}
