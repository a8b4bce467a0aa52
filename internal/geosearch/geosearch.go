// Restaurant Recommendation - Hybrid Graph Recommendations and Geospatial Search
// Copyright 2026 Gayathri Priya (Gayathri-Priya98)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Gayathri-Priya98/restaurant-recommendation

// Package geosearch matches businesses by name or category text and splits
// the matches into nearby and others distance buckets around a query point.
package geosearch

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/dataset"
	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/metrics"
)

// InvalidQueryError reports query parameters that cannot form a valid
// search: missing text or out-of-range coordinates.
type InvalidQueryError struct {
	Reason string
}

func (e *InvalidQueryError) Error() string {
	return fmt.Sprintf("geosearch: invalid query: %s", e.Reason)
}

// Query is a text search anchored at a coordinate.
type Query struct {
	Text string
	Lat  float64
	Lng  float64
}

// Match is one business match with its distance from the query point.
type Match struct {
	BusinessID string  `json:"business_id"`
	Name       string  `json:"name"`
	Categories string  `json:"categories"`
	Stars      float64 `json:"stars"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	DistanceKM float64 `json:"distance_km"`
}

// Result holds the bucketed matches. Nearby covers distances up to and
// including the radius, Others everything beyond it.
type Result struct {
	Nearby []Match `json:"nearby"`
	Others []Match `json:"others"`
}

// Options tunes bucket radius and per-bucket caps.
type Options struct {
	RadiusKM   float64
	MaxResults int
}

func (o Options) withDefaults() Options {
	if o.RadiusKM <= 0 {
		o.RadiusKM = 10
	}
	if o.MaxResults <= 0 {
		o.MaxResults = 10
	}
	return o
}

// Search finds businesses whose name or categories contain the query text,
// case-insensitively, and buckets them by distance. Businesses without a
// usable location are skipped.
func Search(businesses []dataset.Business, q Query, opts Options) (*Result, error) {
	if err := validate(q); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	metrics.SearchRequestsTotal.Inc()

	// Bucketing and ordering use the raw geodesic distance; the rounded
	// value in Match is for display only.
	type scored struct {
		match Match
		km    float64
	}

	needle := strings.ToLower(strings.TrimSpace(q.Text))
	var matches []scored
	for _, b := range businesses {
		if !b.HasLocation() {
			continue
		}
		if !strings.Contains(strings.ToLower(b.Name), needle) &&
			!strings.Contains(strings.ToLower(b.Categories), needle) {
			continue
		}
		km := Haversine(q.Lat, q.Lng, b.Latitude, b.Longitude)
		matches = append(matches, scored{
			match: Match{
				BusinessID: b.ID,
				Name:       b.Name,
				Categories: b.Categories,
				Stars:      b.Stars,
				Latitude:   b.Latitude,
				Longitude:  b.Longitude,
				DistanceKM: roundTo2Decimals(km),
			},
			km: km,
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].km != matches[j].km {
			return matches[i].km < matches[j].km
		}
		return matches[i].match.BusinessID < matches[j].match.BusinessID
	})

	result := &Result{Nearby: []Match{}, Others: []Match{}}
	for _, m := range matches {
		if m.km <= opts.RadiusKM {
			if len(result.Nearby) < opts.MaxResults {
				result.Nearby = append(result.Nearby, m.match)
			}
		} else if len(result.Others) < opts.MaxResults {
			result.Others = append(result.Others, m.match)
		}
	}

	metrics.SearchMatches.WithLabelValues("nearby").Observe(float64(len(result.Nearby)))
	metrics.SearchMatches.WithLabelValues("others").Observe(float64(len(result.Others)))
	return result, nil
}

func validate(q Query) error {
	if strings.TrimSpace(q.Text) == "" {
		return &InvalidQueryError{Reason: "query text is required"}
	}
	if math.IsNaN(q.Lat) || q.Lat < -90 || q.Lat > 90 {
		return &InvalidQueryError{Reason: fmt.Sprintf("latitude %v out of range", q.Lat)}
	}
	if math.IsNaN(q.Lng) || q.Lng < -180 || q.Lng > 180 {
		return &InvalidQueryError{Reason: fmt.Sprintf("longitude %v out of range", q.Lng)}
	}
	return nil
}

// Haversine returns the great-circle distance between two points in
// kilometers.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371.0

	lat1Rad := lat1 * math.Pi / 180.0
	lon1Rad := lon1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0
	lon2Rad := lon2 * math.Pi / 180.0

	dLat := lat2Rad - lat1Rad
	dLon := lon2Rad - lon1Rad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func roundTo2Decimals(v float64) float64 {
	return math.Round(v*100) / 100
}
