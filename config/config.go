package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/c360/ontoquery/errors"
	"github.com/c360/ontoquery/vocabulary"
)

//go:embed schema.json
var configSchema []byte

// APIKeyEnv is the environment variable holding the LLM API key.
const APIKeyEnv = "ONTOQUERY_LLM_API_KEY"

// GraphConfig locates the persisted graph files.
type GraphConfig struct {
	SchemaPath    string `json:"schema_path"`
	InstancePath  string `json:"instance_path"`
	BaseNamespace string `json:"base_namespace"`
}

// PipelineConfig tunes the resolution pipeline.
type PipelineConfig struct {
	GenerateConfidence     float64 `json:"generate_confidence"`
	RefineConfidence       float64 `json:"refine_confidence"`
	CacheSize              int     `json:"cache_size"`
	MaxInferenceIterations int     `json:"max_inference_iterations"`
}

// LLMConfig configures the chat-completion collaborators. The API key
// is read from APIKeyEnv, never from the file.
type LLMConfig struct {
	Enabled        bool   `json:"enabled"`
	BaseURL        string `json:"base_url"`
	Model          string `json:"model"`
	TimeoutSeconds int    `json:"timeout_seconds"`

	APIKey string `json:"-"`
}

// Timeout returns the request timeout as a duration.
func (c LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CatalogConfig configures the bibliographic catalog client.
type CatalogConfig struct {
	BaseURL string `json:"base_url"`
	MailTo  string `json:"mailto"`
}

// LoggingConfig configures the slog handler.
type LoggingConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// SlogLevel maps the configured level onto slog.
func (c LoggingConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Addr    string `json:"addr"`
}

// Config is the full service configuration.
type Config struct {
	Graph    GraphConfig    `json:"graph"`
	Pipeline PipelineConfig `json:"pipeline"`
	LLM      LLMConfig      `json:"llm"`
	Catalog  CatalogConfig  `json:"catalog"`
	Logging  LoggingConfig  `json:"logging"`
	Metrics  MetricsConfig  `json:"metrics"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Graph: GraphConfig{
			SchemaPath:    "data/schema.ttl",
			InstancePath:  "data/instances.ttl",
			BaseNamespace: vocabulary.DefaultBaseNamespace,
		},
		Pipeline: PipelineConfig{
			GenerateConfidence:     0.5,
			RefineConfidence:       0.5,
			CacheSize:              128,
			MaxInferenceIterations: 100,
		},
		LLM: LLMConfig{
			Enabled:        false,
			Model:          "gpt-4o-mini",
			TimeoutSeconds: 60,
		},
		Catalog: CatalogConfig{},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Addr: ":9090",
		},
	}
}

// Load reads and validates the configuration file, layering it over
// DefaultConfig. The LLM API key is then read from the environment.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.WrapFatal(err, "config", "Load", "reading config file")
	}
	cfg, err := parse(data)
	if err != nil {
		return Config{}, err
	}
	cfg.LLM.APIKey = os.Getenv(APIKeyEnv)
	return cfg, nil
}

// parse validates raw JSON against the embedded schema and decodes it
// over the defaults.
func parse(data []byte) (Config, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(configSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return Config{}, errors.WrapInvalid(err, "config", "parse", "config is not valid JSON")
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
		}
		return Config{}, errors.WrapInvalid(errors.ErrInvalidConfig, "config", "parse",
			strings.Join(details, "; "))
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.WrapInvalid(err, "config", "parse", "decoding config failed")
	}
	if cfg.LLM.Enabled && cfg.LLM.Model == "" {
		return Config{}, errors.WrapInvalid(errors.ErrMissingConfig, "config", "parse",
			"llm.model is required when llm.enabled is true")
	}
	return cfg, nil
}
