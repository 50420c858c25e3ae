// Package metrics exposes Prometheus instrumentation for gateway calls,
// analyses and HTTP traffic.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/alexanderramin/archsage/internal/intelligence"
	"github.com/alexanderramin/archsage/internal/knowledge"
	"github.com/alexanderramin/archsage/internal/llm"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Default buckets.
var (
	DefaultHTTPDurationBuckets     = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	DefaultLLMDurationBuckets      = []float64{.5, 1, 2, 5, 10, 30, 60, 120}
	DefaultAnalysisDurationBuckets = []float64{.1, .5, 1, 2, 5, 10, 30, 60}
	SustainabilityScoreBuckets     = []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
)

const (
	outcomeSuccess = "success"
	modeGenerated  = "generated"
	modeFallback   = "fallback"
	modeCancelled  = "cancelled"
)

// Metrics owns a private registry so tests and multiple instances never
// collide on the global default registerer.
type Metrics struct {
	registry *prometheus.Registry

	LLMCallsTotal        *prometheus.CounterVec
	LLMCallDuration      *prometheus.HistogramVec
	AnalysesTotal        *prometheus.CounterVec
	FallbacksTotal       *prometheus.CounterVec
	AnalysisDuration     *prometheus.HistogramVec
	SustainabilityScores *prometheus.HistogramVec
	KnowledgeRetrieved   prometheus.Histogram
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
}

// New registers every metric under namespace. Go runtime and process
// collectors are included.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		LLMCallsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "llm_calls_total", Help: "Generation gateway calls by backend and outcome.",
		}, []string{"backend", "outcome"}),
		LLMCallDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "llm_call_duration_seconds", Help: "Generation gateway call latency.",
			Buckets: DefaultLLMDurationBuckets,
		}, []string{"backend"}),
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "analyses_total", Help: "Completed analyses by tool type and mode.",
		}, []string{"tool_type", "mode"}),
		FallbacksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "fallbacks_total", Help: "Fallback responses by gateway error kind.",
		}, []string{"reason"}),
		AnalysisDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "analysis_duration_seconds", Help: "End-to-end analysis latency.",
			Buckets: DefaultAnalysisDurationBuckets,
		}, []string{"mode"}),
		SustainabilityScores: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "sustainability_score", Help: "Sustainability scores of returned analyses.",
			Buckets: SustainabilityScoreBuckets,
		}, []string{"tool_type"}),
		KnowledgeRetrieved: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "knowledge_entries_retrieved", Help: "Knowledge entries injected per prompt.",
			Buckets: prometheus.LinearBuckets(0, 5, 7),
		}),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status_code"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds", Help: "HTTP request latency.",
			Buckets: DefaultHTTPDurationBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.LLMCallsTotal,
		m.LLMCallDuration,
		m.AnalysesTotal,
		m.FallbacksTotal,
		m.AnalysisDuration,
		m.SustainabilityScores,
		m.KnowledgeRetrieved,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// OnCallComplete implements llm.Observer.
func (m *Metrics) OnCallComplete(e llm.CallEvent) {
	outcome := outcomeSuccess
	if !e.Success {
		outcome = string(e.ErrorKind)
		if outcome == "" {
			outcome = string(llm.KindTransport)
		}
	}
	m.LLMCallsTotal.WithLabelValues(e.Backend, outcome).Inc()
	if e.LatencyMs > 0 {
		m.LLMCallDuration.WithLabelValues(e.Backend).Observe(float64(e.LatencyMs) / 1000)
	}
}

// OnAnalysisComplete implements intelligence.AnalysisObserver.
func (m *Metrics) OnAnalysisComplete(_ context.Context, t intelligence.AnalysisTrace) {
	mode := modeGenerated
	switch {
	case t.Err != nil:
		mode = modeCancelled
	case t.Fallback:
		mode = modeFallback
		m.FallbacksTotal.WithLabelValues(string(t.FallbackKind)).Inc()
	}

	m.AnalysesTotal.WithLabelValues(toolLabel(t.ToolType), mode).Inc()
	m.AnalysisDuration.WithLabelValues(mode).Observe(t.Duration.Seconds())
	if t.Err == nil {
		m.SustainabilityScores.WithLabelValues(toolLabel(t.ToolType)).Observe(float64(t.SustainabilityScore))
		m.KnowledgeRetrieved.Observe(float64(t.EntriesRetrieved))
	}
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// toolLabel bounds label cardinality: free-form tool types collapse to "other".
func toolLabel(toolType string) string {
	if d, ok := knowledge.ParseDomain(toolType); ok {
		return string(d)
	}
	return "other"
}
