// Restaurant Recommendation - Hybrid Graph Recommendations and Geospatial Search
// Copyright 2026 Gayathri Priya (Gayathri-Priya98)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Gayathri-Priya98/restaurant-recommendation

package recommend

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/dataset"
	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/logging"
	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/metrics"
)

// ErrNotReady is returned while no snapshot has been built yet.
var ErrNotReady = errors.New("recommend: no snapshot available")

// Options tunes the engine. Zero values fall back to the defaults the
// config package declares.
type Options struct {
	TopN             int
	EmbeddingK       int
	SimilarUsers     int
	GeneratorTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.TopN <= 0 {
		o.TopN = 5
	}
	if o.EmbeddingK <= 0 {
		o.EmbeddingK = 10
	}
	if o.SimilarUsers <= 0 {
		o.SimilarUsers = 10
	}
	if o.GeneratorTimeout <= 0 {
		o.GeneratorTimeout = 5 * time.Second
	}
	return o
}

// Engine runs the three candidate generators against the current snapshot
// and fuses their output.
type Engine struct {
	store *Store
	opts  Options
}

func NewEngine(store *Store, opts Options) *Engine {
	return &Engine{store: store, opts: opts.withDefaults()}
}

// genResult holds one generator's output.
type genResult struct {
	source     Source
	candidates []Candidate
}

// Recommend returns the fused top-N list for userID. Unknown users and graphs
// without interaction edges fall back to the popularity generator alone, so
// the caller always gets a list rather than an error once a snapshot exists.
func (e *Engine) Recommend(ctx context.Context, userID string) ([]Recommendation, error) {
	snap := e.store.Current()
	if snap == nil {
		return nil, ErrNotReady
	}

	metrics.RecommendRequestsTotal.Inc()

	userIdx, known := snap.Graph.UserIndex[dataset.NormalizeID(userID)]
	personalized := known && len(snap.Graph.Edges) > 0
	if !personalized {
		if !known {
			logging.Debug().Str("user_id", userID).Msg("User not in graph, serving popularity only")
		} else {
			logging.Debug().Msg("Graph has no interaction edges, serving popularity only")
		}
		pop := e.runSingleGenerator(ctx, SourcePopularity, func() []Candidate {
			return popularityCandidates(snap, e.opts.TopN)
		})
		fused := Fuse(e.opts.TopN, pop.candidates)
		if len(fused) == 0 {
			metrics.RecommendEmptyResults.Inc()
		}
		return resolve(snap, fused), nil
	}

	results := e.runGenerators(ctx, snap, userIdx)

	fused := Fuse(e.opts.TopN,
		results[SourceEmbedding],
		results[SourceCollaborative],
		results[SourcePopularity],
	)
	if len(fused) == 0 {
		metrics.RecommendEmptyResults.Inc()
	}

	return resolve(snap, fused), nil
}

// runGenerators runs all three generators in parallel, each under its own
// timeout. A generator that times out or panics contributes an empty list so
// the others still serve.
func (e *Engine) runGenerators(ctx context.Context, snap *Snapshot, userIdx int) map[Source][]Candidate {
	type job struct {
		source Source
		run    func() []Candidate
	}
	jobs := []job{
		{SourceEmbedding, func() []Candidate { return embeddingCandidates(snap, userIdx, e.opts.EmbeddingK) }},
		{SourceCollaborative, func() []Candidate {
			return collaborativeCandidates(snap, userIdx, e.opts.SimilarUsers, e.opts.EmbeddingK)
		}},
		{SourcePopularity, func() []Candidate { return popularityCandidates(snap, e.opts.TopN) }},
	}

	results := make([]genResult, len(jobs))
	var wg sync.WaitGroup
	for i, j := range jobs {
		wg.Add(1)
		go func(idx int, j job) {
			defer wg.Done()
			results[idx] = e.runSingleGenerator(ctx, j.source, j.run)
		}(i, j)
	}
	wg.Wait()

	out := make(map[Source][]Candidate, len(results))
	for _, r := range results {
		out[r.source] = r.candidates
	}
	return out
}

func (e *Engine) runSingleGenerator(ctx context.Context, source Source, run func() []Candidate) genResult {
	start := time.Now()
	result := genResult{source: source}

	genCtx, cancel := context.WithTimeout(ctx, e.opts.GeneratorTimeout)
	defer cancel()

	done := make(chan []Candidate, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				metrics.GeneratorFailures.WithLabelValues(string(source), "error").Inc()
				logging.Error().Str("generator", string(source)).Interface("panic", r).Msg("Generator panicked")
				done <- nil
			}
		}()
		done <- run()
	}()

	select {
	case cs := <-done:
		result.candidates = cs
	case <-genCtx.Done():
		metrics.GeneratorFailures.WithLabelValues(string(source), "timeout").Inc()
		logging.Warn().
			Str("generator", string(source)).
			Dur("timeout", e.opts.GeneratorTimeout).
			Msg("Generator timed out, serving without it")
	}

	metrics.GeneratorDuration.WithLabelValues(string(source)).Observe(time.Since(start).Seconds())
	return result
}

// resolve attaches business metadata to fused candidates. Candidates whose
// business vanished between snapshot reads cannot occur because the fused
// list and the tables come from the same snapshot.
func resolve(snap *Snapshot, fused []Candidate) []Recommendation {
	byID := make(map[string]dataset.Business, len(snap.Tables.Businesses))
	for _, b := range snap.Tables.Businesses {
		byID[b.ID] = b
	}

	out := make([]Recommendation, 0, len(fused))
	for _, c := range fused {
		b := byID[c.BusinessID]
		out = append(out, Recommendation{
			BusinessID:  c.BusinessID,
			Name:        b.Name,
			Categories:  b.Categories,
			Stars:       b.Stars,
			ReviewCount: b.ReviewCount,
			Latitude:    b.Latitude,
			Longitude:   b.Longitude,
			Score:       c.Score,
			Source:      c.Source,
		})
	}
	return out
}
