// Restaurant Recommendation - Hybrid Graph Recommendations and Geospatial Search
// Copyright 2026 Gayathri Priya (Gayathri-Priya98)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Gayathri-Priya98/restaurant-recommendation

package recommend

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/dataset"
	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/embedding"
	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/graph"
	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/logging"
	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/metrics"
)

// Snapshot is an immutable view of the dataset, its interaction graph, and
// the embeddings computed over it. Requests read one snapshot for their whole
// lifetime; rebuilds swap in a new one atomically.
type Snapshot struct {
	Tables     *dataset.Tables
	Graph      *graph.Graph
	Embeddings *embedding.Table
	BuiltAt    time.Time

	// ratings[u] maps business index (relative to the business list) to the
	// star rating user u gave it. A missing key means unrated; ratings of 0
	// are stored as given, they are not a sentinel.
	ratings []map[int]float64
}

// Ratings returns user u's rated businesses by relative business index.
func (s *Snapshot) Ratings(u int) map[int]float64 {
	return s.ratings[u]
}

// Store holds the current snapshot and rebuilds it from a dataset source.
type Store struct {
	source dataset.Source
	model  *embedding.Model
	dim    int

	current atomic.Pointer[Snapshot]
}

// NewStore creates a snapshot store. featureDim is the width node features
// are padded to before inference, which must match the model's input width.
func NewStore(source dataset.Source, model *embedding.Model, featureDim int) *Store {
	return &Store{source: source, model: model, dim: featureDim}
}

// Current returns the active snapshot, or nil before the first rebuild.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Rebuild loads the dataset, builds the graph, runs embedding inference, and
// swaps the result in. On failure the previous snapshot stays active.
func (s *Store) Rebuild(ctx context.Context) error {
	start := time.Now()

	snap, err := s.build(ctx)
	if err != nil {
		metrics.SnapshotRebuildsTotal.WithLabelValues("error").Inc()
		return err
	}

	s.current.Store(snap)
	metrics.SnapshotRebuildsTotal.WithLabelValues("success").Inc()
	metrics.SnapshotRebuildDuration.Observe(time.Since(start).Seconds())

	logging.Info().
		Int("users", snap.Graph.NumUsers()).
		Int("businesses", snap.Graph.NumBusinesses()).
		Int("edges", len(snap.Graph.Edges)/2).
		Dur("elapsed", time.Since(start)).
		Msg("Snapshot rebuilt")
	return nil
}

func (s *Store) build(ctx context.Context) (*Snapshot, error) {
	tables, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	g := graph.Build(tables, s.dim)

	table, err := s.model.Embed(g)
	if err != nil {
		return nil, fmt.Errorf("embed graph: %w", err)
	}

	return &Snapshot{
		Tables:     tables,
		Graph:      g,
		Embeddings: table,
		BuiltAt:    time.Now(),
		ratings:    buildRatings(tables, g),
	}, nil
}

// buildRatings indexes collapsed interactions as per-user rating maps keyed
// by relative business index. Interactions referencing unknown ids were
// already dropped during graph construction and are skipped here too.
func buildRatings(tables *dataset.Tables, g *graph.Graph) []map[int]float64 {
	ratings := make([]map[int]float64, g.NumUsers())
	for _, in := range tables.Interactions {
		u, ok := g.UserIndex[in.UserID]
		if !ok {
			continue
		}
		b, ok := g.BusinessIndex[in.BusinessID]
		if !ok {
			continue
		}
		if ratings[u] == nil {
			ratings[u] = make(map[int]float64)
		}
		ratings[u][b-g.NumUsers()] = in.Stars
	}
	return ratings
}
