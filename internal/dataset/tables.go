// Restaurant Recommendation - Hybrid Graph Recommendations and Geospatial Search
// Copyright 2026 Gayathri Priya (Gayathri-Priya98)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Gayathri-Priya98/restaurant-recommendation

package dataset

import (
	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/logging"
)

// Normalize applies the entity-table invariants to raw rows and returns the
// cleaned Tables:
//
//   - identifiers are normalized (trimmed, lowercased)
//   - users and businesses are deduplicated by id, first-seen wins
//   - duplicate (user, business) interaction pairs collapse to the record
//     with the most recent date; records with equal or missing dates
//     collapse last-record-wins
//   - interactions with an empty user or business id are dropped
//
// Data-quality findings are logged as warnings with counts. They are never
// errors: the system has to operate on ragged real-world tabular data.
func Normalize(users []User, businesses []Business, interactions []Interaction) *Tables {
	t := &Tables{
		Users:        dedupUsers(users),
		Businesses:   dedupBusinesses(businesses),
		Interactions: collapseInteractions(interactions),
	}

	logging.Debug().
		Int("users", len(t.Users)).
		Int("businesses", len(t.Businesses)).
		Int("interactions", len(t.Interactions)).
		Msg("entity tables normalized")

	return t
}

func dedupUsers(users []User) []User {
	seen := make(map[string]struct{}, len(users))
	out := make([]User, 0, len(users))
	dropped := 0

	for _, u := range users {
		u.ID = NormalizeID(u.ID)
		if u.ID == "" {
			dropped++
			continue
		}
		if _, ok := seen[u.ID]; ok {
			dropped++
			continue
		}
		seen[u.ID] = struct{}{}
		out = append(out, u)
	}

	if dropped > 0 {
		logging.Warn().
			Int("dropped", dropped).
			Msg("duplicate or empty user ids collapsed")
	}
	return out
}

func dedupBusinesses(businesses []Business) []Business {
	seen := make(map[string]struct{}, len(businesses))
	out := make([]Business, 0, len(businesses))
	dropped := 0

	for _, b := range businesses {
		b.ID = NormalizeID(b.ID)
		if b.ID == "" {
			dropped++
			continue
		}
		if _, ok := seen[b.ID]; ok {
			dropped++
			continue
		}
		seen[b.ID] = struct{}{}
		out = append(out, b)
	}

	if dropped > 0 {
		logging.Warn().
			Int("dropped", dropped).
			Msg("duplicate or empty business ids collapsed")
	}
	return out
}

// collapseInteractions keeps one interaction per (user, business) pair.
// The surviving record is the most recent by date; when dates tie or are
// absent, the later record in table order wins.
func collapseInteractions(interactions []Interaction) []Interaction {
	type slot struct {
		idx int
	}

	byPair := make(map[[2]string]slot, len(interactions))
	out := make([]Interaction, 0, len(interactions))
	collapsed := 0
	dropped := 0

	for _, in := range interactions {
		in.UserID = NormalizeID(in.UserID)
		in.BusinessID = NormalizeID(in.BusinessID)
		if in.UserID == "" || in.BusinessID == "" {
			dropped++
			continue
		}

		key := [2]string{in.UserID, in.BusinessID}
		if s, ok := byPair[key]; ok {
			collapsed++
			if !in.Date.Before(out[s.idx].Date) {
				out[s.idx] = in
			}
			continue
		}

		byPair[key] = slot{idx: len(out)}
		out = append(out, in)
	}

	if collapsed > 0 || dropped > 0 {
		logging.Warn().
			Int("collapsed", collapsed).
			Int("dropped", dropped).
			Msg("duplicate or incomplete interactions collapsed")
	}
	return out
}
