// Restaurant Recommendation - Hybrid Graph Recommendations and Geospatial Search
// Copyright 2026 Gayathri Priya (Gayathri-Priya98)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Gayathri-Priya98/restaurant-recommendation

package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDuckDBSourceLoad(t *testing.T) {
	csv := `user_id,business_id,review_stars,average_stars,user_review_count,business_stars,business_review_count,name,categories,latitude,longitude
u1,b1,5,4.2,10,4.5,100,Pizza Hut,"Pizza, Fast Food",12.98,77.60
u1,b2,3,4.2,10,3.5,50,Dosa Corner,"South Indian",12.90,77.55
u2,b1,4,3.8,5,4.5,100,Pizza Hut,"Pizza, Fast Food",12.98,77.60
`
	src := NewDuckDBSource(writeCSV(t, csv))

	tables, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if len(tables.Users) != 2 {
		t.Errorf("len(Users) = %d, want 2", len(tables.Users))
	}
	if len(tables.Businesses) != 2 {
		t.Errorf("len(Businesses) = %d, want 2", len(tables.Businesses))
	}
	if len(tables.Interactions) != 3 {
		t.Errorf("len(Interactions) = %d, want 3", len(tables.Interactions))
	}

	if tables.Users[0].ID != "u1" || tables.Users[0].AverageStars != 4.2 {
		t.Errorf("Users[0] = %+v, want u1 with average_stars 4.2", tables.Users[0])
	}
	if tables.Businesses[0].Name != "Pizza Hut" || tables.Businesses[0].Stars != 4.5 {
		t.Errorf("Businesses[0] = %+v, want Pizza Hut with stars 4.5", tables.Businesses[0])
	}
	if !tables.Businesses[0].HasLocation() {
		t.Error("Businesses[0] should have a valid location")
	}
}

func TestDuckDBSourceDefaultsMissingColumns(t *testing.T) {
	// No engagement counters, no coordinates, no date.
	csv := `user_id,business_id,review_stars,name,business_stars
u1,b1,5,Cafe One,4.0
`
	src := NewDuckDBSource(writeCSV(t, csv))

	tables, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if len(tables.Users) != 1 || len(tables.Businesses) != 1 {
		t.Fatalf("got %d users, %d businesses, want 1 and 1", len(tables.Users), len(tables.Businesses))
	}

	u := tables.Users[0]
	if u.Useful != 0 || u.Funny != 0 || u.Cool != 0 || u.ReviewCount != 0 {
		t.Errorf("missing user columns should default to zero, got %+v", u)
	}

	b := tables.Businesses[0]
	if b.Latitude != 0 || b.Longitude != 0 {
		t.Errorf("missing coordinates should default to zero, got %+v", b)
	}
	if b.HasLocation() {
		t.Error("business without coordinates must not report a location")
	}
}

func TestDuckDBSourceRejectsUnusableDataset(t *testing.T) {
	csv := `some_col,other_col
1,2
`
	src := NewDuckDBSource(writeCSV(t, csv))

	if _, err := src.Load(context.Background()); err == nil {
		t.Error("Load() = nil error for dataset missing required columns")
	}
}
