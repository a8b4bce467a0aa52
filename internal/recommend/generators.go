// Restaurant Recommendation - Hybrid Graph Recommendations and Geospatial Search
// Copyright 2026 Gayathri Priya (Gayathri-Priya98)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Gayathri-Priya98/restaurant-recommendation

package recommend

import (
	"math"
	"sort"
)

// embeddingCandidates scores every business by cosine similarity between the
// user's embedding and the business embedding, keeping the top k.
func embeddingCandidates(snap *Snapshot, userIdx, k int) []Candidate {
	userVec := snap.Embeddings.User(userIdx)
	n := snap.Graph.NumBusinesses()

	out := make([]Candidate, 0, n)
	for j := 0; j < n; j++ {
		out = append(out, Candidate{
			BusinessID: snap.Graph.BusinessIDs[j],
			Score:      cosine(userVec, snap.Embeddings.Business(j)),
			Source:     SourceEmbedding,
		})
	}
	sortCandidates(out)
	return truncate(out, k)
}

// collaborativeCandidates finds the users with the most similar rating rows
// and returns the businesses they rated, scored by how many of them rated
// each one.
func collaborativeCandidates(snap *Snapshot, userIdx, similarUsers, k int) []Candidate {
	target := snap.Ratings(userIdx)
	if len(target) == 0 {
		return nil
	}

	type neighbor struct {
		idx int
		sim float64
	}
	neighbors := make([]neighbor, 0, snap.Graph.NumUsers())
	for u := 0; u < snap.Graph.NumUsers(); u++ {
		if u == userIdx {
			continue
		}
		sim := ratingCosine(target, snap.Ratings(u))
		if sim <= 0 {
			continue
		}
		neighbors = append(neighbors, neighbor{idx: u, sim: sim})
	}
	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].sim != neighbors[j].sim {
			return neighbors[i].sim > neighbors[j].sim
		}
		return snap.Graph.UserIDs[neighbors[i].idx] < snap.Graph.UserIDs[neighbors[j].idx]
	})
	if len(neighbors) > similarUsers {
		neighbors = neighbors[:similarUsers]
	}

	// Endorsement count: each similar user who rated a business counts once.
	counts := make(map[int]int)
	for _, nb := range neighbors {
		for b := range snap.Ratings(nb.idx) {
			counts[b]++
		}
	}

	out := make([]Candidate, 0, len(counts))
	for b, c := range counts {
		out = append(out, Candidate{
			BusinessID: snap.Graph.BusinessIDs[b],
			Score:      float64(c),
			Source:     SourceCollaborative,
		})
	}
	sortCandidates(out)
	return truncate(out, k)
}

// popularityCandidates ranks businesses by stars, then review count, then id.
// It needs no per-user state and serves as the fallback generator.
func popularityCandidates(snap *Snapshot, k int) []Candidate {
	businesses := snap.Tables.Businesses
	idx := make([]int, len(businesses))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		x, y := businesses[idx[a]], businesses[idx[b]]
		if x.Stars != y.Stars {
			return x.Stars > y.Stars
		}
		if x.ReviewCount != y.ReviewCount {
			return x.ReviewCount > y.ReviewCount
		}
		return x.ID < y.ID
	})

	out := make([]Candidate, 0, min(k, len(idx)))
	for _, i := range idx {
		if len(out) == k {
			break
		}
		out = append(out, Candidate{
			BusinessID: businesses[i].ID,
			Score:      businesses[i].Stars,
			Source:     SourcePopularity,
		})
	}
	return out
}

// cosine returns the cosine similarity of two dense vectors, or 0 when
// either has zero magnitude.
func cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// ratingCosine computes cosine similarity over sparse rating rows. Unrated
// businesses contribute nothing to either norm.
func ratingCosine(a, b map[int]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	var dot, na, nb float64
	for k, x := range a {
		na += x * x
		if y, ok := b[k]; ok {
			dot += x * y
		}
	}
	for _, y := range b {
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// sortCandidates orders by score descending with business id as a stable
// tiebreak so equal scores always rank the same way.
func sortCandidates(cs []Candidate) {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].Score != cs[j].Score {
			return cs[i].Score > cs[j].Score
		}
		return cs[i].BusinessID < cs[j].BusinessID
	})
}

func truncate(cs []Candidate, k int) []Candidate {
	if len(cs) > k {
		return cs[:k]
	}
	return cs
}
