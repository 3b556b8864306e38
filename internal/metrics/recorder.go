// Package metrics provides observability hooks for document processing.
//
// The package follows a null-object pattern: components receive a Recorder
// through dependency injection and default to NoopRecorder, so metrics
// collection never requires nil checks in the pipeline or transforms.
// A Prometheus-backed implementation is provided for deployments that
// scrape metrics.
package metrics

import "time"

// ResultLabel enumerates transform result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultWarning ResultLabel = "warning"
	ResultFatal   ResultLabel = "fatal"
)

// ResolutionLabel enumerates cross-reference resolution outcomes.
type ResolutionLabel string

const (
	ResolutionInternal ResolutionLabel = "internal"
	ResolutionMetadata ResolutionLabel = "metadata"
	ResolutionNone     ResolutionLabel = "unresolved"
)

// Recorder defines observability hooks for pipeline and transform metrics.
// Implementations may forward to Prometheus, OpenTelemetry, etc. All methods
// must be safe on the zero value so NoopRecorder can be embedded freely.
type Recorder interface {
	ObserveTransformDuration(transform string, d time.Duration)
	ObserveRunDuration(d time.Duration)
	IncTransformResult(transform string, result ResultLabel)
	IncPipelineBuild(valid bool)
	IncReferenceResolution(outcome ResolutionLabel)
	IncDuplicateDefinition()
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveTransformDuration(string, time.Duration) {}
func (NoopRecorder) ObserveRunDuration(time.Duration)               {}
func (NoopRecorder) IncTransformResult(string, ResultLabel)         {}
func (NoopRecorder) IncPipelineBuild(bool)                          {}
func (NoopRecorder) IncReferenceResolution(ResolutionLabel)         {}
func (NoopRecorder) IncDuplicateDefinition()                        {}
