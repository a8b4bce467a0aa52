// Restaurant Recommendation - Hybrid Graph Recommendations and Geospatial Search
// Copyright 2026 Gayathri Priya (Gayathri-Priya98)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Gayathri-Priya98/restaurant-recommendation

// Package config provides layered application configuration.
//
// Configuration is resolved from three sources, in increasing precedence:
//
//  1. Built-in defaults
//  2. Optional YAML config file (config.yaml, or CONFIG_PATH)
//  3. Environment variables (SERVER_PORT, DATASET_PATH, LOG_LEVEL, ...)
//
// The resolved Config is validated once at startup and then passed by
// reference; nothing downstream re-reads the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Dataset   DatasetConfig   `koanf:"dataset"`
	Model     ModelConfig     `koanf:"model"`
	Recommend RecommendConfig `koanf:"recommend"`
	Search    SearchConfig    `koanf:"search"`
	Places    PlacesConfig    `koanf:"places"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout         time.Duration `koanf:"timeout" validate:"min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"min=1s"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs" validate:"min=1"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window" validate:"min=1s"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// DatasetConfig locates the harmonized tabular dataset and controls how
// often the in-memory snapshot is rebuilt from it.
type DatasetConfig struct {
	// Path is the harmonized CSV produced by the (out-of-scope) ingestion
	// pipeline. One row per review, with user and business columns joined in.
	Path string `koanf:"path" validate:"required"`

	// RefreshInterval is how often the refresh service reloads the tables
	// and rebuilds the graph and embeddings. Zero disables periodic refresh.
	RefreshInterval time.Duration `koanf:"refresh_interval"`
}

// ModelConfig locates the pre-trained embedding model artifact.
// The artifact declares its own input/hidden/output dimensions; they are
// not configurable here on purpose, since reinterpreting trained weights
// under different dimensions would corrupt their semantics.
type ModelConfig struct {
	Path string `koanf:"path" validate:"required"`
}

// RecommendConfig holds recommendation pipeline knobs.
type RecommendConfig struct {
	// TopN is the length cap of the fused recommendation list.
	TopN int `koanf:"top_n" validate:"min=1,max=100"`

	// EmbeddingK is how many candidates the embedding-similarity
	// generator contributes before fusion.
	EmbeddingK int `koanf:"embedding_k" validate:"min=1,max=1000"`

	// SimilarUsers is how many nearest users the collaborative
	// generator unions rated businesses from.
	SimilarUsers int `koanf:"similar_users" validate:"min=1,max=1000"`

	// GeneratorTimeout bounds each candidate generator independently.
	// A timed-out generator contributes an empty list, not an error.
	GeneratorTimeout time.Duration `koanf:"generator_timeout" validate:"min=10ms"`
}

// SearchConfig holds local geospatial search settings.
type SearchConfig struct {
	// RadiusKM is the inclusive nearby/others boundary for the dataset scan.
	RadiusKM float64 `koanf:"radius_km" validate:"gt=0"`

	// MaxResults caps each of the nearby and others buckets.
	MaxResults int `koanf:"max_results" validate:"min=1,max=100"`
}

// PlacesConfig holds settings for the external places-lookup API.
type PlacesConfig struct {
	Enabled bool   `koanf:"enabled"`
	BaseURL string `koanf:"base_url" validate:"omitempty,url"`
	APIKey  string `koanf:"api_key"`

	// RadiusM is the circle filter radius in meters for the external lookup.
	RadiusM int `koanf:"radius_m" validate:"min=1"`

	// Limit caps the number of features requested from the API.
	Limit int `koanf:"limit" validate:"min=1,max=100"`

	Timeout time.Duration `koanf:"timeout" validate:"min=100ms"`

	// RatePerSecond throttles outbound lookups.
	RatePerSecond float64 `koanf:"rate_per_second" validate:"gt=0"`
}

// defaultConfig returns a Config with all default values.
// Defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Dataset: DatasetConfig{
			Path:            "/data/final_dataset.csv",
			RefreshInterval: 24 * time.Hour,
		},
		Model: ModelConfig{
			Path: "/data/gnn_recommender.model",
		},
		Recommend: RecommendConfig{
			TopN:             5,
			EmbeddingK:       10,
			SimilarUsers:     10,
			GeneratorTimeout: 5 * time.Second,
		},
		Search: SearchConfig{
			RadiusKM:   10,
			MaxResults: 10,
		},
		Places: PlacesConfig{
			Enabled:       false,
			BaseURL:       "https://api.geoapify.com/v2/places",
			APIKey:        "",
			RadiusM:       5000,
			Limit:         20,
			Timeout:       5 * time.Second,
			RatePerSecond: 5,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) && len(errs) > 0 {
			first := errs[0]
			return fmt.Errorf("invalid config: field %s failed %q validation", first.Namespace(), first.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}

	if c.Places.Enabled && c.Places.APIKey == "" {
		return fmt.Errorf("invalid config: places.api_key is required when places.enabled is true")
	}

	return nil
}
