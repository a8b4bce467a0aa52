// Restaurant Recommendation - Hybrid Graph Recommendations and Geospatial Search
// Copyright 2026 Gayathri Priya (Gayathri-Priya98)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Gayathri-Priya98/restaurant-recommendation

package recommend

// Fuse concatenates candidate lists in priority order, drops later duplicates
// of a business already seen, and truncates to topN. Scores are never
// compared across lists; priority position alone decides ties between
// sources.
func Fuse(topN int, lists ...[]Candidate) []Candidate {
	seen := make(map[string]struct{})
	out := make([]Candidate, 0, topN)
	for _, list := range lists {
		for _, c := range list {
			if _, dup := seen[c.BusinessID]; dup {
				continue
			}
			seen[c.BusinessID] = struct{}{}
			out = append(out, c)
			if len(out) == topN {
				return out
			}
		}
	}
	return out
}
