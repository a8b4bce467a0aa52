// Restaurant Recommendation - Hybrid Graph Recommendations and Geospatial Search
// Copyright 2026 Gayathri Priya (Gayathri-Priya98)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Gayathri-Priya98/restaurant-recommendation

// Package dataset defines the typed entity tables the recommendation
// pipeline consumes, and the sources that produce them.
//
// The three tables (users, businesses, interactions) are projected from a
// single harmonized CSV. Raw tabular data is ragged by design: columns may
// be missing, ids may repeat, coordinates may be absent. All of that is
// resolved once at this boundary — missing numerics default to zero,
// duplicate ids collapse, identifiers are normalized — so downstream
// components never re-validate.
package dataset

import (
	"math"
	"strings"
	"time"
)

// User is one deduplicated user record with aggregate rating behavior.
type User struct {
	// ID is the normalized stable identifier.
	ID string

	// AverageStars is the mean rating this user has given.
	AverageStars float64

	// ReviewCount is how many reviews the user has written.
	ReviewCount float64

	// Useful, Funny, and Cool are engagement counters from review votes.
	// Zero when the source dataset lacks the columns.
	Useful float64
	Funny  float64
	Cool   float64
}

// Features returns the user's raw numeric attribute vector.
// The graph builder pads this to the model input width.
func (u User) Features() []float64 {
	return []float64{u.AverageStars, u.ReviewCount, u.Useful, u.Funny, u.Cool}
}

// Business is one deduplicated business record.
type Business struct {
	// ID is the normalized stable identifier.
	ID string

	// Name is the display name.
	Name string

	// Categories is the free-text, comma-separated category tag string.
	Categories string

	// Stars is the aggregate rating.
	Stars float64

	// ReviewCount is how many reviews the business has received.
	ReviewCount float64

	// Latitude and Longitude are geographic coordinates. (0, 0) means
	// "unknown", never a real location; use HasLocation before any
	// geospatial computation.
	Latitude  float64
	Longitude float64
}

// Features returns the business's raw numeric attribute vector.
func (b Business) Features() []float64 {
	return []float64{b.Stars, b.ReviewCount}
}

// HasLocation reports whether the business has usable coordinates.
// Zero-valued and non-finite coordinates are treated as absent.
func (b Business) HasLocation() bool {
	if b.Latitude == 0 && b.Longitude == 0 {
		return false
	}
	if math.IsNaN(b.Latitude) || math.IsNaN(b.Longitude) {
		return false
	}
	return b.Latitude >= -90 && b.Latitude <= 90 &&
		b.Longitude >= -180 && b.Longitude <= 180
}

// Interaction is one review/rating event connecting a user to a business.
type Interaction struct {
	UserID     string
	BusinessID string

	// Stars is the rating value the user gave in this review.
	Stars float64

	// Date is when the review was written. Zero when the source dataset
	// has no date column; collapse then falls back to last-record-wins.
	Date time.Time
}

// Tables bundles the three entity tables. A Tables value is immutable once
// published: every consumer reads, nobody writes.
type Tables struct {
	Users        []User
	Businesses   []Business
	Interactions []Interaction
}

// NormalizeID canonicalizes a raw identifier for dedup and index lookups.
func NormalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
