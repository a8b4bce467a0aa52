// Restaurant Recommendation - Hybrid Graph Recommendations and Geospatial Search
// Copyright 2026 Gayathri Priya (Gayathri-Priya98)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Gayathri-Priya98/restaurant-recommendation

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// SnapshotStore is the subset of the recommendation store the refresh
// service drives.
type SnapshotStore interface {
	Rebuild(ctx context.Context) error
}

// RefreshServiceConfig holds configuration for periodic snapshot refresh.
type RefreshServiceConfig struct {
	// Interval is how often to rebuild the snapshot.
	Interval time.Duration

	// RebuildOnStartup triggers a rebuild when the service starts. Leave
	// false when the caller already built the initial snapshot.
	RebuildOnStartup bool
}

// RefreshService rebuilds the dataset snapshot on a fixed interval. A failed
// rebuild keeps the previous snapshot serving and retries on the next tick.
type RefreshService struct {
	store  SnapshotStore
	config RefreshServiceConfig
	logger zerolog.Logger
	name   string
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRefreshService(store SnapshotStore, cfg RefreshServiceConfig, logger zerolog.Logger) *RefreshService {
	if cfg.Interval <= 0 {
		cfg.Interval = 24 * time.Hour
	}
	return &RefreshService{
		store:  store,
		config: cfg,
		logger: logger.With().Str("service", "snapshot-refresh").Logger(),
		name:   "snapshot-refresh",
	}
}

// Serve implements the suture.Service interface.
func (s *RefreshService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("interval", s.config.Interval).
		Bool("rebuild_on_startup", s.config.RebuildOnStartup).
		Msg("snapshot refresh service starting")

	if s.config.RebuildOnStartup {
		s.rebuild(ctx)
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("snapshot refresh service stopping")
			return ctx.Err()
		case <-ticker.C:
			s.rebuild(ctx)
		}
	}
}

func (s *RefreshService) rebuild(ctx context.Context) {
	if err := s.store.Rebuild(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("snapshot rebuild failed, keeping previous snapshot")
	}
}

// String implements fmt.Stringer; suture uses it in log messages.
func (s *RefreshService) String() string {
	return s.name
}
