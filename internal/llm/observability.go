package llm

import "go.uber.org/zap"

// CallEvent records metadata about a single gateway invocation.
type CallEvent struct {
	Backend   string
	Model     string
	LatencyMs int64
	Success   bool
	ErrorKind ErrorKind
}

// Observer receives events about gateway calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes gateway call events to a zap logger.
type LogObserver struct {
	logger *zap.Logger
}

// NewLogObserver creates an Observer that logs events to logger.
func NewLogObserver(logger *zap.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	fields := []zap.Field{
		zap.String("backend", event.Backend),
		zap.String("model", event.Model),
		zap.Int64("latency_ms", event.LatencyMs),
		zap.Bool("success", event.Success),
	}
	if !event.Success {
		o.logger.Warn("llm_call", append(fields, zap.String("error_kind", string(event.ErrorKind)))...)
		return
	}
	o.logger.Info("llm_call", fields...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}

// MultiObserver fans each event out to every observer in order.
type MultiObserver []Observer

func (m MultiObserver) OnCallComplete(event CallEvent) {
	for _, o := range m {
		if o != nil {
			o.OnCallComplete(event)
		}
	}
}
