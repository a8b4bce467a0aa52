// Restaurant Recommendation - Hybrid Graph Recommendations and Geospatial Search
// Copyright 2026 Gayathri Priya (Gayathri-Priya98)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Gayathri-Priya98/restaurant-recommendation

package api

import (
	"net/http"
	"time"
)

// healthResponse is the data payload of GET /healthz.
type healthResponse struct {
	Status     string     `json:"status"`
	Ready      bool       `json:"ready"`
	Users      int        `json:"users,omitempty"`
	Businesses int        `json:"businesses,omitempty"`
	SnapshotAt *time.Time `json:"snapshot_at,omitempty"`
}

// HandleHealth reports liveness always and readiness once a snapshot has
// been built. It intentionally stays cheap enough for aggressive probe
// intervals.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	resp := healthResponse{Status: "ok"}
	if snap := h.store.Current(); snap != nil {
		resp.Ready = true
		resp.Users = snap.Graph.NumUsers()
		resp.Businesses = snap.Graph.NumBusinesses()
		resp.SnapshotAt = &snap.BuiltAt
	}
	rw.Success(resp)
}
