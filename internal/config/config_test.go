// Restaurant Recommendation - Hybrid Graph Recommendations and Geospatial Search
// Copyright 2026 Gayathri Priya (Gayathri-Priya98)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Gayathri-Priya98/restaurant-recommendation

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Recommend.TopN != 5 {
		t.Errorf("default TopN = %d, want 5", cfg.Recommend.TopN)
	}
	if cfg.Search.RadiusKM != 10 {
		t.Errorf("default RadiusKM = %v, want 10", cfg.Search.RadiusKM)
	}
	if cfg.Places.RadiusM != 5000 {
		t.Errorf("default places RadiusM = %d, want 5000", cfg.Places.RadiusM)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port out of range", func(c *Config) { c.Server.Port = 0 }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
		{"missing dataset path", func(c *Config) { c.Dataset.Path = "" }},
		{"missing model path", func(c *Config) { c.Model.Path = "" }},
		{"zero top_n", func(c *Config) { c.Recommend.TopN = 0 }},
		{"negative radius", func(c *Config) { c.Search.RadiusKM = -1 }},
		{"places enabled without key", func(c *Config) { c.Places.Enabled = true; c.Places.APIKey = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"DATASET_PATH", "dataset.path"},
		{"MODEL_PATH", "model.path"},
		{"RECOMMEND_TOP_N", "recommend.top_n"},
		{"RECOMMEND_GENERATOR_TIMEOUT", "recommend.generator_timeout"},
		{"SEARCH_RADIUS_KM", "search.radius_km"},
		{"HTTP_PORT", "server.port"},
		{"LOG_LEVEL", "logging.level"},
		{"LOG_FORMAT", "logging.format"},
		{"PLACES_API_KEY", "places.api_key"},
		{"SERVER_CORS_ORIGINS", "server.cors_origins"},
		{"PATH", ""},
		{"HOME", ""},
		{"UNRELATED_VAR", ""},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			if got := envTransformFunc(tt.env); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

func TestLoadLayering(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	yamlContent := `
server:
  port: 9090
dataset:
  path: /tmp/dataset.csv
model:
  path: /tmp/model.bin
recommend:
  top_n: 7
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(ConfigPathEnvVar, configPath)
	t.Setenv("RECOMMEND_TOP_N", "9")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// File overrides defaults
	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090 (from file)", cfg.Server.Port)
	}
	// Env overrides file
	if cfg.Recommend.TopN != 9 {
		t.Errorf("TopN = %d, want 9 (from env)", cfg.Recommend.TopN)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want debug (from env)", cfg.Logging.Level)
	}
	// Defaults survive where nothing overrides
	if cfg.Recommend.GeneratorTimeout != 5*time.Second {
		t.Errorf("GeneratorTimeout = %v, want 5s (default)", cfg.Recommend.GeneratorTimeout)
	}
}

func TestLoadEnvSlices(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	yamlContent := `
dataset:
  path: /tmp/dataset.csv
model:
  path: /tmp/model.bin
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(ConfigPathEnvVar, configPath)
	t.Setenv("SERVER_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.Server.CORSOrigins) != len(want) {
		t.Fatalf("CORSOrigins = %v, want %v", cfg.Server.CORSOrigins, want)
	}
	for i := range want {
		if cfg.Server.CORSOrigins[i] != want[i] {
			t.Errorf("CORSOrigins[%d] = %q, want %q", i, cfg.Server.CORSOrigins[i], want[i])
		}
	}
}
