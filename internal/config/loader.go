package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix for every setting, e.g.
// ARCHSAGE_LLM_BACKEND or ARCHSAGE_SERVER_ADDR.
const envPrefix = "ARCHSAGE"

// defaultConfigName is searched for in the working directory when no
// explicit config path is given.
const defaultConfigName = "archsage"

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v, Default())
	// Accept the provider's conventional variables as well.
	_ = v.BindEnv("llm.api_key", envPrefix+"_LLM_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY")
	return v
}

// setDefaults registers every key so AutomaticEnv can resolve it during Unmarshal.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.mode", d.Server.Mode)
	v.SetDefault("server.cors_origins", d.Server.CORSOrigins)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("server.max_body_bytes", d.Server.MaxBodyBytes)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.output_paths", d.Log.OutputPaths)

	v.SetDefault("llm.backend", d.LLM.Backend)
	v.SetDefault("llm.endpoint", d.LLM.Endpoint)
	v.SetDefault("llm.model", d.LLM.Model)
	v.SetDefault("llm.api_key", d.LLM.APIKey)
	v.SetDefault("llm.timeout_ms", d.LLM.TimeoutMs)
	v.SetDefault("llm.temperature", d.LLM.Temperature)
	v.SetDefault("llm.top_k", d.LLM.TopK)
	v.SetDefault("llm.top_p", d.LLM.TopP)
	v.SetDefault("llm.max_output_tokens", d.LLM.MaxOutputTokens)
	v.SetDefault("llm.safety_threshold", d.LLM.SafetyThreshold)
	v.SetDefault("llm.log_calls", d.LLM.LogCalls)

	v.SetDefault("analysis.generation_timeout", d.Analysis.GenerationTimeout)
	v.SetDefault("analysis.max_images", d.Analysis.MaxImages)
	v.SetDefault("analysis.max_image_bytes", d.Analysis.MaxImageBytes)
	v.SetDefault("analysis.max_batch_size", d.Analysis.MaxBatchSize)

	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.namespace", d.Metrics.Namespace)
}

// Load reads .env (if present), then the YAML file at path (or ./archsage.yaml
// when path is empty and the file exists), then ARCHSAGE_* environment
// overrides. The returned Viper can be passed to Watch.
func Load(path string) (*Config, *viper.Viper, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, nil, fmt.Errorf("config: loading .env: %w", err)
	}

	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, nil, fmt.Errorf("config: reading %q: %w", path, err)
		}
	} else {
		v.SetConfigName(defaultConfigName)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, nil, fmt.Errorf("config: reading config: %w", err)
			}
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, nil, err
	}
	return cfg, v, nil
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

// Watch re-reads the config file on change and calls onChange with the new
// Config. Invalid edits are reported through onError and otherwise ignored.
// Watch does nothing when no config file was loaded.
func Watch(v *viper.Viper, onChange func(*Config), onError func(error)) bool {
	if v == nil || v.ConfigFileUsed() == "" {
		return false
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := decode(v)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
	return true
}
