// Restaurant Recommendation - Hybrid Graph Recommendations and Geospatial Search
// Copyright 2026 Gayathri Priya (Gayathri-Priya98)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Gayathri-Priya98/restaurant-recommendation

// Package embedding runs pre-trained graph convolution weights over the
// interaction graph to produce node embeddings for users and businesses.
package embedding

import (
	"fmt"

	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/graph"
)

// DimensionMismatchError reports a graph whose feature width does not match
// the width the model weights were trained for.
type DimensionMismatchError struct {
	Got  int
	Want int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("embedding: feature dimension mismatch: graph has %d, model expects %d", e.Got, e.Want)
}

// Model holds the weights of a two-layer graph convolution. Layer 1 projects
// input features to the hidden width and applies ReLU; layer 2 projects
// hidden to output, linear. Weights are row-major: W1[i][h] maps input
// feature i to hidden unit h.
type Model struct {
	W1 [][]float64
	B1 []float64
	W2 [][]float64
	B2 []float64
}

// InputDim returns the feature width the model expects.
func (m *Model) InputDim() int {
	return len(m.W1)
}

// HiddenDim returns the width of the intermediate layer.
func (m *Model) HiddenDim() int {
	if len(m.W1) == 0 {
		return 0
	}
	return len(m.W1[0])
}

// OutputDim returns the embedding width produced by Embed.
func (m *Model) OutputDim() int {
	if len(m.W2) == 0 {
		return 0
	}
	return len(m.W2[0])
}

// validate checks that the weight matrices chain together.
func (m *Model) validate() error {
	if len(m.W1) == 0 || len(m.W2) == 0 {
		return fmt.Errorf("embedding: model has empty weight matrices")
	}
	hidden := m.HiddenDim()
	for i, row := range m.W1 {
		if len(row) != hidden {
			return fmt.Errorf("embedding: W1 row %d has width %d, want %d", i, len(row), hidden)
		}
	}
	if len(m.W2) != hidden {
		return fmt.Errorf("embedding: W2 has %d rows, want %d", len(m.W2), hidden)
	}
	out := m.OutputDim()
	for i, row := range m.W2 {
		if len(row) != out {
			return fmt.Errorf("embedding: W2 row %d has width %d, want %d", i, len(row), out)
		}
	}
	if len(m.B1) != 0 && len(m.B1) != hidden {
		return fmt.Errorf("embedding: B1 has length %d, want %d", len(m.B1), hidden)
	}
	if len(m.B2) != 0 && len(m.B2) != out {
		return fmt.Errorf("embedding: B2 has length %d, want %d", len(m.B2), out)
	}
	return nil
}

// Table is the read-only embedding matrix produced by a forward pass. Rows
// follow graph node ordering: users first, then businesses.
type Table struct {
	rows     [][]float64
	numUsers int
	dim      int
}

// Dim returns the embedding width.
func (t *Table) Dim() int { return t.dim }

// User returns the embedding row for user index i.
func (t *Table) User(i int) []float64 { return t.rows[i] }

// Business returns the embedding row for business index j (relative to the
// business list, not the combined node index).
func (t *Table) Business(j int) []float64 { return t.rows[t.numUsers+j] }

// Embed runs the forward pass over g and returns the node embedding table.
// Each layer first aggregates a node's own features with the mean of its
// direct neighbors', then applies the layer's linear projection.
func (m *Model) Embed(g *graph.Graph) (*Table, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}
	if g.FeatureDim() != m.InputDim() {
		return nil, &DimensionMismatchError{Got: g.FeatureDim(), Want: m.InputDim()}
	}

	hidden := convolve(g, g.Features, m.W1, m.B1, true)
	out := convolve(g, hidden, m.W2, m.B2, false)

	return &Table{rows: out, numUsers: g.NumUsers(), dim: m.OutputDim()}, nil
}

// convolve performs one graph convolution layer: neighborhood mean
// aggregation followed by a linear projection, with optional ReLU.
func convolve(g *graph.Graph, feats [][]float64, w [][]float64, bias []float64, relu bool) [][]float64 {
	n := g.NumNodes()
	inDim := len(w)
	outDim := 0
	if inDim > 0 {
		outDim = len(w[0])
	}

	// Aggregate: mean of the node's own feature vector and its neighbors'.
	agg := make([][]float64, n)
	for v := 0; v < n; v++ {
		row := make([]float64, inDim)
		copy(row, feats[v])
		neighbors := g.Neighbors(v)
		for _, u := range neighbors {
			for k := 0; k < inDim; k++ {
				row[k] += feats[u][k]
			}
		}
		scale := 1.0 / float64(len(neighbors)+1)
		for k := 0; k < inDim; k++ {
			row[k] *= scale
		}
		agg[v] = row
	}

	// Project.
	out := make([][]float64, n)
	for v := 0; v < n; v++ {
		row := make([]float64, outDim)
		if bias != nil {
			copy(row, bias)
		}
		for k := 0; k < inDim; k++ {
			x := agg[v][k]
			if x == 0 {
				continue
			}
			wk := w[k]
			for h := 0; h < outDim; h++ {
				row[h] += x * wk[h]
			}
		}
		if relu {
			for h := 0; h < outDim; h++ {
				if row[h] < 0 {
					row[h] = 0
				}
			}
		}
		out[v] = row
	}
	return out
}
