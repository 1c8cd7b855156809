package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, BackendNeo4j, cfg.GraphBackend)
	assert.Equal(t, 10, cfg.MaxOverlapRows)
	assert.Equal(t, 15*time.Second, cfg.Neo4jQueryTimeout)
	assert.False(t, cfg.IsLambda)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadConfig_FileThenEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "careergraph.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
graph_backend: memory
dataset_path: /data/officers.csv
max_overlap_rows: 25
neo4j_query_timeout: 5s
cors_origins:
  - https://dashboards.example.org
`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("MAX_OVERLAP_ROWS", "12")
	t.Setenv("GRAPH_BACKEND", "")
	t.Setenv("RATE_LIMIT_REFILL", "250ms")
	t.Setenv("WATCH_DATASET", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, cfg.GraphBackend)
	assert.Equal(t, "/data/officers.csv", cfg.DatasetPath)
	assert.Equal(t, 12, cfg.MaxOverlapRows, "environment wins over the file")
	assert.Equal(t, 5*time.Second, cfg.Neo4jQueryTimeout)
	assert.Equal(t, 250*time.Millisecond, cfg.RateLimitRefill)
	assert.Equal(t, []string{"https://dashboards.example.org"}, cfg.CORSOrigins)
	assert.False(t, cfg.WatchDataset)
}

func TestLoadConfig_BadFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "failed to open config file")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "no dataset", mutate: func(c *Config) { c.DatasetPath = "" }, errMsg: "DATASET_PATH"},
		{name: "unknown backend", mutate: func(c *Config) { c.GraphBackend = "sqlite" }, errMsg: "GRAPH_BACKEND"},
		{name: "no uri", mutate: func(c *Config) { c.Neo4jURI = "" }, errMsg: "NEO4J_URI"},
		{name: "production password", mutate: func(c *Config) { c.Environment = "production" }, errMsg: "NEO4J_PASSWORD"},
		{name: "memory needs no neo4j", mutate: func(c *Config) { c.GraphBackend = BackendMemory; c.Neo4jURI = "" }},
		{name: "row limit", mutate: func(c *Config) { c.MaxOverlapRows = 0 }, errMsg: "MAX_OVERLAP_ROWS"},
		{name: "sample rate", mutate: func(c *Config) { c.TraceSampleRate = 2 }, errMsg: "TRACE_SAMPLE_RATE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}
