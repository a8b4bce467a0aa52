// Restaurant Recommendation - Hybrid Graph Recommendations and Geospatial Search
// Copyright 2026 Gayathri Priya (Gayathri-Priya98)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Gayathri-Priya98/restaurant-recommendation

// Package recommend fuses candidates from embedding similarity,
// collaborative filtering, and popularity into a single ranked list.
package recommend

// Source identifies which generator produced a candidate.
type Source string

const (
	SourceEmbedding     Source = "embedding"
	SourceCollaborative Source = "collaborative"
	SourcePopularity    Source = "popularity"
)

// Candidate is a single scored business from one generator. Scores are only
// comparable within a generator; fusion never compares them across sources.
type Candidate struct {
	BusinessID string
	Score      float64
	Source     Source
}

// Recommendation is a fused candidate resolved against business metadata.
type Recommendation struct {
	BusinessID  string  `json:"business_id"`
	Name        string  `json:"name"`
	Categories  string  `json:"categories"`
	Stars       float64 `json:"stars"`
	ReviewCount float64 `json:"review_count"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Score       float64 `json:"score"`
	Source      Source  `json:"source"`
}
