package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/ontoquery/errors"
	"github.com/c360/ontoquery/vocabulary"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, vocabulary.DefaultBaseNamespace, cfg.Graph.BaseNamespace)
	assert.Equal(t, 0.5, cfg.Pipeline.GenerateConfidence)
	assert.Equal(t, 128, cfg.Pipeline.CacheSize)
	assert.False(t, cfg.LLM.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"graph": {"schema_path": "/data/onto.ttl"},
		"pipeline": {"cache_size": 16},
		"llm": {"enabled": true, "model": "llama3", "base_url": "http://localhost:11434/v1"},
		"logging": {"level": "debug", "format": "json"}
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/onto.ttl", cfg.Graph.SchemaPath)
	// Untouched fields keep their defaults.
	assert.Equal(t, "data/instances.ttl", cfg.Graph.InstancePath)
	assert.Equal(t, 16, cfg.Pipeline.CacheSize)
	assert.Equal(t, 0.5, cfg.Pipeline.RefineConfidence)
	assert.True(t, cfg.LLM.Enabled)
	assert.Equal(t, "llama3", cfg.LLM.Model)
	assert.Equal(t, slog.LevelDebug, cfg.Logging.SlogLevel())
}

func TestLoad_APIKeyFromEnvironment(t *testing.T) {
	t.Setenv(APIKeyEnv, "sk-test")
	path := writeConfig(t, `{"llm": {"enabled": true, "model": "gpt-4o-mini"}}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.True(t, errors.IsFatal(err))
}

func TestParse_RejectsInvalidConfigs(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{"graph":`},
		{"unknown section", `{"storage": {}}`},
		{"unknown field", `{"graph": {"schema_file": "x.ttl"}}`},
		{"wrong type", `{"pipeline": {"cache_size": "big"}}`},
		{"confidence out of range", `{"pipeline": {"generate_confidence": 1.5}}`},
		{"bad log level", `{"logging": {"level": "loud"}}`},
		{"bad namespace", `{"graph": {"base_namespace": "not-a-url"}}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parse([]byte(tc.body))
			require.Error(t, err)
			assert.True(t, errors.IsInvalid(err))
		})
	}
}

func TestParse_EnabledLLMRequiresModel(t *testing.T) {
	_, err := parse([]byte(`{"llm": {"enabled": true, "model": ""}}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrMissingConfig)
}

func TestLLMConfigTimeout(t *testing.T) {
	cfg := LLMConfig{TimeoutSeconds: 30}
	assert.Equal(t, 30*time.Second, cfg.Timeout())
}

func TestLoggingConfigSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, LoggingConfig{Level: tc.level}.SlogLevel())
	}
}
