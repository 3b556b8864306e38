package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once              sync.Once
	transformDuration *prom.HistogramVec
	runDuration       prom.Histogram
	transformResults  *prom.CounterVec
	pipelineBuilds    *prom.CounterVec
	refResolutions    *prom.CounterVec
	duplicateDefs     prom.Counter
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.transformDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "lexdraft",
			Name:      "transform_duration_seconds",
			Help:      "Duration of individual document transforms",
			Buckets:   prom.DefBuckets,
		}, []string{"transform"})
		pr.runDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "lexdraft",
			Name:      "run_duration_seconds",
			Help:      "Total document processing run duration",
			Buckets:   prom.DefBuckets,
		})
		pr.transformResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "lexdraft",
			Name:      "transform_results_total",
			Help:      "Transform result counts by outcome",
		}, []string{"transform", "result"})
		pr.pipelineBuilds = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "lexdraft",
			Name:      "pipeline_builds_total",
			Help:      "Pipeline build counts by validation outcome",
		}, []string{"valid"})
		pr.refResolutions = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "lexdraft",
			Name:      "reference_resolutions_total",
			Help:      "Cross-reference resolution counts by outcome",
		}, []string{"outcome"})
		pr.duplicateDefs = prom.NewCounter(prom.CounterOpts{
			Namespace: "lexdraft",
			Name:      "duplicate_definitions_total",
			Help:      "Duplicate cross-reference definitions ignored (first write wins)",
		})
		reg.MustRegister(pr.transformDuration, pr.runDuration, pr.transformResults, pr.pipelineBuilds, pr.refResolutions, pr.duplicateDefs)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveTransformDuration(transform string, d time.Duration) {
	if p == nil || p.transformDuration == nil {
		return
	}
	p.transformDuration.WithLabelValues(transform).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncTransformResult(transform string, result ResultLabel) {
	if p == nil || p.transformResults == nil {
		return
	}
	p.transformResults.WithLabelValues(transform, string(result)).Inc()
}

func (p *PrometheusRecorder) IncPipelineBuild(valid bool) {
	if p == nil || p.pipelineBuilds == nil {
		return
	}
	label := "false"
	if valid {
		label = "true"
	}
	p.pipelineBuilds.WithLabelValues(label).Inc()
}

func (p *PrometheusRecorder) IncReferenceResolution(outcome ResolutionLabel) {
	if p == nil || p.refResolutions == nil {
		return
	}
	p.refResolutions.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncDuplicateDefinition() {
	if p == nil || p.duplicateDefs == nil {
		return
	}
	p.duplicateDefs.Inc()
}
