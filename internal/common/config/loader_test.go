package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	t.Setenv("LLM_API_KEY", "sk-test")
	path := writeConfig(t, `
camunda:
  broker_address: localhost:26500
catalog:
  source: file
  file_path: techniques.json
workers:
  analyze-study-profile:
    enabled: true
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.True(t, cfg.LLM.Enabled())
	assert.Equal(t, 0.7, cfg.Engine.SimilarityThreshold)
	assert.Equal(t, 5, cfg.Engine.TopN)
	assert.Equal(t, 3, cfg.Engine.MinTechniques)
	assert.Equal(t, 7, cfg.Engine.MaxTechniques)
	assert.Equal(t, 30000, cfg.LLM.Timeout)
	assert.Equal(t, ":8080", cfg.Server.Address)

	w := GetWorkerConfig(cfg, "analyze-study-profile")
	assert.Equal(t, 5, w.MaxJobsActive)
	assert.True(t, w.Enabled)

	missing := GetWorkerConfig(&Config{}, "unknown-task")
	assert.Equal(t, WorkerConfig{Enabled: true, MaxJobsActive: 5, Timeout: 30000}, missing)
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{
			Camunda: CamundaConfig{BrokerAddress: "localhost:26500"},
			Catalog: CatalogConfig{Source: "postgres"},
			Database: DatabaseConfig{Postgres: PostgresConfig{
				Host: "localhost", Database: "foresight", User: "foresight",
			}},
		}
		applyDefaults(cfg)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing broker", func(c *Config) { c.Camunda.BrokerAddress = "" }, "camunda.broker_address"},
		{"missing postgres host", func(c *Config) { c.Database.Postgres.Host = "" }, "database.postgres.host"},
		{"unknown source", func(c *Config) { c.Catalog.Source = "s3" }, "catalog.source"},
		{"cache without redis", func(c *Config) { c.Catalog.CacheTTL = 60 }, "database.redis.address"},
		{"threshold out of range", func(c *Config) { c.Engine.SimilarityThreshold = 1.5 }, "similarity_threshold"},
		{"min above max", func(c *Config) { c.Engine.MinTechniques = 6; c.Engine.MaxTechniques = 4 }, "min_techniques"},
		{"top_n above bound", func(c *Config) { c.Engine.TopN = 10 }, "engine.top_n"},
		{"top_n negative", func(c *Config) { c.Engine.TopN = -1 }, "engine.top_n"},
		{"max_techniques above bound", func(c *Config) { c.Engine.MaxTechniques = 12 }, "engine.max_techniques"},
		{"top_n and max at bound", func(c *Config) { c.Engine.TopN = 7; c.Engine.MaxTechniques = 7 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestApplyDefaults_ClampsTemperature(t *testing.T) {
	cfg := &Config{LLM: LLMConfig{Temperature: 1.8}}
	applyDefaults(cfg)
	assert.Equal(t, 1.0, cfg.LLM.Temperature)
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
}
