// Restaurant Recommendation - Hybrid Graph Recommendations and Geospatial Search
// Copyright 2026 Gayathri Priya (Gayathri-Priya98)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Gayathri-Priya98/restaurant-recommendation

package dataset

import "context"

// Source produces the three entity tables from some backing dataset.
// Load returns fully normalized tables, safe to publish as-is.
type Source interface {
	Load(ctx context.Context) (*Tables, error)
}
