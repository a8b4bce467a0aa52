// Restaurant Recommendation - Hybrid Graph Recommendations and Geospatial Search
// Copyright 2026 Gayathri Priya (Gayathri-Priya98)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Gayathri-Priya98/restaurant-recommendation

package services

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/logging"
)

type countingStore struct {
	rebuilds atomic.Int32
	err      error
}

func (c *countingStore) Rebuild(context.Context) error {
	c.rebuilds.Add(1)
	return c.err
}

func TestRefreshServiceRebuildsOnTicks(t *testing.T) {
	store := &countingStore{}
	svc := NewRefreshService(store, RefreshServiceConfig{
		Interval:         15 * time.Millisecond,
		RebuildOnStartup: true,
	}, logging.NewTestLogger(io.Discard))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := svc.Serve(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve err = %v, want deadline exceeded", err)
	}

	// One startup rebuild plus at least one tick.
	if got := store.rebuilds.Load(); got < 2 {
		t.Errorf("rebuilds = %d, want at least 2", got)
	}
}

func TestRefreshServiceSurvivesRebuildFailure(t *testing.T) {
	store := &countingStore{err: errors.New("dataset unreadable")}
	svc := NewRefreshService(store, RefreshServiceConfig{Interval: 10 * time.Millisecond}, logging.NewTestLogger(io.Discard))

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve err = %v, want deadline exceeded", err)
	}
	if got := store.rebuilds.Load(); got < 2 {
		t.Errorf("rebuilds = %d, want the loop to keep retrying", got)
	}
}
