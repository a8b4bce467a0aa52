// Restaurant Recommendation - Hybrid Graph Recommendations and Geospatial Search
// Copyright 2026 Gayathri Priya (Gayathri-Priya98)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Gayathri-Priya98/restaurant-recommendation

// Package graph builds the bipartite user-business interaction graph the
// embedding model runs on.
//
// Nodes live in one contiguous integer index space: user indices come
// first, in table order, then business indices. That ordering is a
// contract — the embedding table and the candidate generators address
// nodes by it — so it must never change between a graph and anything
// derived from it.
package graph

import (
	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/dataset"
	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/logging"
	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/metrics"
)

// Graph is the indexed bipartite interaction graph with aligned node
// features. It is immutable once built.
type Graph struct {
	// UserIDs and BusinessIDs hold ids in index order. UserIDs[i] is the
	// user at node index i; BusinessIDs[j] is the business at node index
	// NumUsers()+j.
	UserIDs     []string
	BusinessIDs []string

	// UserIndex maps a user id to its node index in [0, NumUsers).
	UserIndex map[string]int

	// BusinessIndex maps a business id to its absolute node index in
	// [NumUsers, NumUsers+NumBusinesses).
	BusinessIndex map[string]int

	// Edges is the directed edge list. Every resolved interaction
	// contributes both (user, business) and (business, user), making the
	// adjacency undirected for embedding propagation.
	Edges [][2]int

	// Features holds one fixed-width feature row per node, user block
	// first, then business block, both in index order.
	Features [][]float64

	// Dropped counts interactions excluded because either endpoint did
	// not resolve to a known node.
	Dropped int

	adjacency [][]int
}

// NumUsers returns the number of user nodes.
func (g *Graph) NumUsers() int { return len(g.UserIDs) }

// NumBusinesses returns the number of business nodes.
func (g *Graph) NumBusinesses() int { return len(g.BusinessIDs) }

// NumNodes returns the total node count.
func (g *Graph) NumNodes() int { return len(g.UserIDs) + len(g.BusinessIDs) }

// FeatureDim returns the width of each node feature row.
func (g *Graph) FeatureDim() int {
	if len(g.Features) == 0 {
		return 0
	}
	return len(g.Features[0])
}

// Neighbors returns the node indices adjacent to node i.
// The returned slice is shared; callers must not mutate it.
func (g *Graph) Neighbors(i int) []int {
	return g.adjacency[i]
}

// Build constructs the graph from normalized entity tables.
//
// featureDim is the embedding model's declared input width: every node's
// raw attribute vector is right-padded with zeros (or truncated) to it.
// Interactions whose user or business id is unknown are dropped and
// counted, never treated as errors. A graph with zero resolved edges is
// valid; isolated nodes embed from self-features alone.
func Build(tables *dataset.Tables, featureDim int) *Graph {
	numUsers := len(tables.Users)
	numBusinesses := len(tables.Businesses)

	g := &Graph{
		UserIDs:       make([]string, numUsers),
		BusinessIDs:   make([]string, numBusinesses),
		UserIndex:     make(map[string]int, numUsers),
		BusinessIndex: make(map[string]int, numBusinesses),
		Features:      make([][]float64, 0, numUsers+numBusinesses),
	}

	for i, u := range tables.Users {
		g.UserIDs[i] = u.ID
		g.UserIndex[u.ID] = i
		g.Features = append(g.Features, padFeatures(u.Features(), featureDim))
	}

	for j, b := range tables.Businesses {
		g.BusinessIDs[j] = b.ID
		g.BusinessIndex[b.ID] = numUsers + j
		g.Features = append(g.Features, padFeatures(b.Features(), featureDim))
	}

	g.adjacency = make([][]int, g.NumNodes())
	for _, in := range tables.Interactions {
		ui, uok := g.UserIndex[in.UserID]
		bi, bok := g.BusinessIndex[in.BusinessID]
		if !uok || !bok {
			g.Dropped++
			continue
		}
		g.Edges = append(g.Edges, [2]int{ui, bi}, [2]int{bi, ui})
		g.adjacency[ui] = append(g.adjacency[ui], bi)
		g.adjacency[bi] = append(g.adjacency[bi], ui)
	}

	metrics.GraphNodes.WithLabelValues("user").Set(float64(numUsers))
	metrics.GraphNodes.WithLabelValues("business").Set(float64(numBusinesses))
	metrics.GraphEdges.Set(float64(len(g.Edges)))
	metrics.GraphDroppedInteractions.Set(float64(g.Dropped))

	evt := logging.Debug()
	if g.Dropped > 0 {
		evt = logging.Warn()
	}
	evt.
		Int("users", numUsers).
		Int("businesses", numBusinesses).
		Int("edges", len(g.Edges)).
		Int("dropped_interactions", g.Dropped).
		Msg("interaction graph built")

	return g
}

// padFeatures right-pads raw with zeros to width, truncating when raw is
// longer. Missing attributes arrive as zeros from the dataset layer, so a
// short row is never an error here.
func padFeatures(raw []float64, width int) []float64 {
	row := make([]float64, width)
	copy(row, raw)
	return row
}
