// Package config defines ArchSage configuration and loads it from an optional
// YAML file, a .env file and ARCHSAGE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/archsage/internal/llm"
	"github.com/alexanderramin/archsage/internal/logging"
)

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

// LLMConfig holds generation gateway settings.
type LLMConfig struct {
	Backend         string  `mapstructure:"backend"` // "gemini" | "ollama"
	Endpoint        string  `mapstructure:"endpoint"`
	Model           string  `mapstructure:"model"`
	APIKey          string  `mapstructure:"api_key"`
	TimeoutMs       int     `mapstructure:"timeout_ms"`
	Temperature     float64 `mapstructure:"temperature"`
	TopK            int     `mapstructure:"top_k"`
	TopP            float64 `mapstructure:"top_p"`
	MaxOutputTokens int     `mapstructure:"max_output_tokens"`
	SafetyThreshold string  `mapstructure:"safety_threshold"`
	LogCalls        bool    `mapstructure:"log_calls"`
}

// AnalysisConfig holds orchestrator limits.
type AnalysisConfig struct {
	GenerationTimeout time.Duration `mapstructure:"generation_timeout"`
	MaxImages         int           `mapstructure:"max_images"`
	MaxImageBytes     int           `mapstructure:"max_image_bytes"`
	MaxBatchSize      int           `mapstructure:"max_batch_size"`
}

// MetricsConfig controls Prometheus instrumentation.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// Config is the root configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      logging.Config `mapstructure:"log"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	gw := llm.DefaultConfig()
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			Mode:            "release",
			CORSOrigins:     []string{"*"},
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    20 << 20,
		},
		Log: logging.Config{
			Level:  "info",
			Format: "json",
		},
		LLM: LLMConfig{
			Backend:         string(gw.Backend),
			Model:           gw.Model,
			TimeoutMs:       gw.TimeoutMs,
			Temperature:     gw.Generation.Temperature,
			TopK:            gw.Generation.TopK,
			TopP:            gw.Generation.TopP,
			MaxOutputTokens: gw.Generation.MaxOutputTokens,
			SafetyThreshold: string(gw.SafetyThreshold),
		},
		Analysis: AnalysisConfig{
			GenerationTimeout: 45 * time.Second,
			MaxImages:         4,
			MaxImageBytes:     5 << 20,
			MaxBatchSize:      10,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "archsage",
		},
	}
}

var validModes = map[string]bool{"debug": true, "release": true, "test": true}

// Validate checks the configuration for values that would break startup.
func (c *Config) Validate() error {
	var errs []error

	if !validModes[c.Server.Mode] {
		errs = append(errs, fmt.Errorf("server.mode %q must be debug, release or test", c.Server.Mode))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	switch llm.Backend(strings.ToLower(c.LLM.Backend)) {
	case llm.BackendGemini, llm.BackendOllama:
	default:
		errs = append(errs, fmt.Errorf("llm.backend %q must be gemini or ollama", c.LLM.Backend))
	}
	if c.LLM.TimeoutMs <= 0 {
		errs = append(errs, errors.New("llm.timeout_ms must be positive"))
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		errs = append(errs, fmt.Errorf("llm.temperature %v must be within [0,2]", c.LLM.Temperature))
	}
	if c.LLM.TopP <= 0 || c.LLM.TopP > 1 {
		errs = append(errs, fmt.Errorf("llm.top_p %v must be within (0,1]", c.LLM.TopP))
	}
	if c.LLM.MaxOutputTokens <= 0 {
		errs = append(errs, errors.New("llm.max_output_tokens must be positive"))
	}
	if !llm.ValidThresholds[llm.SafetyThreshold(strings.ToUpper(c.LLM.SafetyThreshold))] {
		errs = append(errs, fmt.Errorf("llm.safety_threshold %q is not supported", c.LLM.SafetyThreshold))
	}

	if c.Analysis.GenerationTimeout <= 0 {
		errs = append(errs, errors.New("analysis.generation_timeout must be positive"))
	}
	if c.Analysis.MaxBatchSize <= 0 {
		errs = append(errs, errors.New("analysis.max_batch_size must be positive"))
	}

	return errors.Join(errs...)
}

// GatewayConfig converts the LLM section into the gateway's own config type.
func (c LLMConfig) GatewayConfig() llm.Config {
	return llm.Config{
		Backend:   llm.Backend(strings.ToLower(c.Backend)),
		Endpoint:  c.Endpoint,
		Model:     c.Model,
		APIKey:    c.APIKey,
		TimeoutMs: c.TimeoutMs,
		Generation: llm.GenerationConfig{
			Temperature:     c.Temperature,
			TopK:            c.TopK,
			TopP:            c.TopP,
			MaxOutputTokens: c.MaxOutputTokens,
		},
		SafetyThreshold: llm.SafetyThreshold(strings.ToUpper(c.SafetyThreshold)),
	}
}
