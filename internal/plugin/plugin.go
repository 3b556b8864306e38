// Package plugin defines the transform metadata model and registry used to
// order document transforms.
//
// The registry is plain data: it describes every available transform (phase,
// capabilities, ordering constraints, conflicts) without referencing the
// implementations, so pipeline construction never needs to invoke a
// transform to reason about it. Implementations satisfy the Transform
// interface and are matched to registry entries by name at execution time.
package plugin

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/lexdraft/internal/config"
	"git.home.luguber.info/inful/lexdraft/internal/docmodel"
	"git.home.luguber.info/inful/lexdraft/internal/fieldtrack"
	"git.home.luguber.info/inful/lexdraft/internal/metrics"
)

// Phase is a coarse, totally ordered processing stage. Every transform
// belongs to exactly one phase; earlier phases always run before later ones.
type Phase int

const (
	PhaseContentLoading Phase = iota + 1
	PhaseVariableExpansion
	PhaseConditionalEval
	PhaseStructureParsing
	PhasePostProcessing
)

// Phases returns all phases in execution order.
func Phases() []Phase {
	return []Phase{
		PhaseContentLoading,
		PhaseVariableExpansion,
		PhaseConditionalEval,
		PhaseStructureParsing,
		PhasePostProcessing,
	}
}

// IsValid returns true if the phase is recognized.
func (p Phase) IsValid() bool {
	return p >= PhaseContentLoading && p <= PhasePostProcessing
}

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseContentLoading:
		return "content-loading"
	case PhaseVariableExpansion:
		return "variable-expansion"
	case PhaseConditionalEval:
		return "conditional-eval"
	case PhaseStructureParsing:
		return "structure-parsing"
	case PhasePostProcessing:
		return "post-processing"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Metadata describes a transform's identity, phase, capabilities, and
// ordering constraints. Capability tags are free-form strings; the registry
// validates at construction time that every name reference resolves.
type Metadata struct {
	// Name is the unique transform identifier.
	Name string

	// Phase assigns the transform to a processing stage.
	Phase Phase

	// Description provides a human-readable summary.
	Description string

	// Provides lists capability tags established by running this transform.
	Provides []string

	// Requires lists capability tags that must be provided by an
	// earlier-running transform.
	Requires []string

	// RunBefore/RunAfter are intra-phase ordering hints naming other
	// transforms.
	RunBefore []string
	RunAfter  []string

	// Conflicts names mutually exclusive transforms.
	Conflicts []string

	// Required marks transforms that must always be present in a pipeline.
	Required bool
}

// Validate checks the metadata in isolation (name and phase). Reference
// validation across entries happens at registry construction.
func (m Metadata) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("transform name is required")
	}
	if !m.Phase.IsValid() {
		return fmt.Errorf("transform %s has no valid phase assigned", m.Name)
	}
	return nil
}

// String returns a human-readable representation of the metadata.
func (m Metadata) String() string {
	return fmt.Sprintf("%s (%s)", m.Name, m.Phase)
}

// Context carries the shared state one pipeline run exposes to transforms.
// It is scoped to a single document run and discarded afterward.
type Context struct {
	// Metadata is the parsed frontmatter supplied by the context-building
	// collaborator.
	Metadata map[string]any

	// Exported accumulates metadata handed to the format-generation
	// collaborator after the run (including the _cross_references list).
	Exported map[string]any

	// Formats is the per-level numbering format configuration.
	Formats config.LevelFormats

	// Options is the processing configuration for this run.
	Options config.Options

	// Tracker receives one call per resolved or unresolved field.
	Tracker fieldtrack.Tracker

	// Recorder receives observability events.
	Recorder metrics.Recorder
}

// NewContext creates a run context with safe defaults for the optional
// collaborators.
func NewContext(metadata map[string]any, opts config.Options) *Context {
	if metadata == nil {
		metadata = map[string]any{}
	}
	return &Context{
		Metadata: metadata,
		Exported: map[string]any{},
		Formats:  config.LevelFormatsFromMetadata(metadata),
		Options:  opts,
		Tracker:  fieldtrack.NoopTracker{},
		Recorder: metrics.NoopRecorder{},
	}
}

// Transform is the uniform contract all document transforms implement.
// Apply mutates the document tree in place and must not retain a reference
// to it after returning.
type Transform interface {
	// Name returns the registry name this implementation answers to.
	Name() string

	// Apply runs the transform against the shared document tree.
	Apply(ctx context.Context, doc *docmodel.Document, tc *Context) error
}
