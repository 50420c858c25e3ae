// Package app wires configuration, logging, metrics and the analysis
// pipeline into a single Runtime shared by the CLI and HTTP server.
package app

import (
	"context"
	"fmt"

	"github.com/alexanderramin/archsage/internal/config"
	"github.com/alexanderramin/archsage/internal/intelligence"
	"github.com/alexanderramin/archsage/internal/knowledge"
	"github.com/alexanderramin/archsage/internal/llm"
	"github.com/alexanderramin/archsage/internal/logging"
	"github.com/alexanderramin/archsage/internal/metrics"
	"github.com/alexanderramin/archsage/internal/persona"
	"github.com/alexanderramin/archsage/internal/prompt"
	"github.com/alexanderramin/archsage/internal/retrieval"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Runtime holds every long-lived component. The knowledge store, persona
// registry and retrieval engine are built once and only read afterwards.
type Runtime struct {
	Config    *config.Config
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
	Store     *knowledge.Store
	Personas  *persona.Registry
	Retrieval *retrieval.Engine
	Composer  *prompt.Composer
	Gateway   llm.Gateway
	Analysis  intelligence.AnalysisService

	level zap.AtomicLevel
	viper *viper.Viper
}

// Load reads configuration from configPath (optional), builds the logger and
// metrics, and wires the pipeline. A gateway that cannot be constructed is
// replaced by an offline gateway so analyses still return fallback responses.
func Load(ctx context.Context, configPath string) (*Runtime, error) {
	cfg, v, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger, level, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics.Namespace)
	}

	observer := gatewayObserver(cfg.LLM, logger, m)
	gw, err := llm.New(ctx, cfg.LLM.GatewayConfig(), observer)
	if err != nil {
		logger.Warn("generation backend unavailable; analyses will use fallback responses",
			zap.String("backend", cfg.LLM.Backend), zap.Error(err))
		gw = llm.NewOfflineGateway(err, observer)
	}

	rt := New(cfg, logger, gw, m)
	rt.level = level
	rt.viper = v
	return rt, nil
}

// New wires the pipeline around an existing gateway. m may be nil.
func New(cfg *config.Config, logger *zap.Logger, gw llm.Gateway, m *metrics.Metrics) *Runtime {
	if logger == nil {
		logger = logging.NewNop()
	}

	store := knowledge.NewDefaultStore()
	personas := persona.NewDefaultRegistry()
	engine := retrieval.NewEngine(store)
	composer := prompt.NewComposer(personas)

	observers := intelligence.MultiAnalysisObserver{intelligence.NewLogAnalysisObserver(logger)}
	if m != nil {
		observers = append(observers, m)
	}

	gwCfg := cfg.LLM.GatewayConfig()
	analysis := intelligence.NewAnalysisService(intelligence.Deps{
		Store:     store,
		Personas:  personas,
		Retrieval: engine,
		Composer:  composer,
		Gateway:   gw,
		Observer:  observers,
		Logger:    logger.Named("analysis"),
	}, intelligence.Options{
		GenerationTimeout: cfg.Analysis.GenerationTimeout,
		Generation:        gwCfg.Generation,
		Safety:            gwCfg.Safety(),
		MaxImages:         cfg.Analysis.MaxImages,
		MaxImageBytes:     cfg.Analysis.MaxImageBytes,
		MaxBatchSize:      cfg.Analysis.MaxBatchSize,
	})

	return &Runtime{
		Config:    cfg,
		Logger:    logger,
		Metrics:   m,
		Store:     store,
		Personas:  personas,
		Retrieval: engine,
		Composer:  composer,
		Gateway:   gw,
		Analysis:  analysis,
		level:     zap.NewAtomicLevel(),
	}
}

// WatchConfig reloads the log level whenever the config file changes. Other
// settings take effect on restart. It reports whether a file is being watched.
func (r *Runtime) WatchConfig() bool {
	return config.Watch(r.viper, func(cfg *config.Config) {
		lvl, err := logging.ParseLevel(cfg.Log.Level)
		if err != nil {
			r.Logger.Warn("ignoring invalid log level from config reload", zap.Error(err))
			return
		}
		if lvl != r.level.Level() {
			r.level.SetLevel(lvl)
			r.Logger.Info("log level changed", zap.String("level", lvl.String()))
		}
	}, func(err error) {
		r.Logger.Warn("config reload failed", zap.Error(err))
	})
}

// Close flushes buffered log entries.
func (r *Runtime) Close() error {
	// Sync on stderr returns EINVAL on some platforms; nothing is lost.
	_ = r.Logger.Sync()
	return nil
}

func gatewayObserver(cfg config.LLMConfig, logger *zap.Logger, m *metrics.Metrics) llm.Observer {
	var obs llm.MultiObserver
	if cfg.LogCalls {
		obs = append(obs, llm.NewLogObserver(logger.Named("llm")))
	}
	if m != nil {
		obs = append(obs, m)
	}
	if len(obs) == 0 {
		return llm.NoopObserver{}
	}
	return obs
}
