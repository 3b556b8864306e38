// Package process wires the pipeline builder, executor, and built-in
// transforms into a single document-processing entry point.
package process

import (
	"context"

	"git.home.luguber.info/inful/lexdraft/internal/config"
	lexerrors "git.home.luguber.info/inful/lexdraft/internal/errors"
	"git.home.luguber.info/inful/lexdraft/internal/fieldtrack"
	"git.home.luguber.info/inful/lexdraft/internal/frontmatter"
	"git.home.luguber.info/inful/lexdraft/internal/markdown"
	"git.home.luguber.info/inful/lexdraft/internal/metrics"
	"git.home.luguber.info/inful/lexdraft/internal/pipeline"
	"git.home.luguber.info/inful/lexdraft/internal/plugin"
	"git.home.luguber.info/inful/lexdraft/internal/transform/crossref"
	"git.home.luguber.info/inful/lexdraft/internal/transform/headers"
	"git.home.luguber.info/inful/lexdraft/internal/transform/meta"
)

// Result is the outcome of one processing run, handed to the
// format-generation collaborator.
type Result struct {
	// Output is the transformed document, rendered back to markdown.
	Output []byte

	// Exported is the metadata map for serialization, including the
	// _cross_references list.
	Exported map[string]any

	// Pipeline is the ordered pipeline the run executed.
	Pipeline *pipeline.OrderedPipeline

	// Tracked lists every field substitution reported during the run.
	Tracked []fieldtrack.Field
}

// Processor owns the registry and executor for repeated runs. Independent
// documents may be processed in parallel through the same Processor since
// all run state lives in the per-run context.
type Processor struct {
	registry *plugin.Registry
	executor *pipeline.Executor
	recorder metrics.Recorder
}

// NewProcessor creates a processor with the built-in registry and
// transforms.
func NewProcessor() *Processor {
	return &Processor{
		registry: plugin.NewBuiltinRegistry(),
		executor: pipeline.NewExecutor(
			meta.NewLoader(),
			headers.NewStructure(),
			headers.NewNumbering(),
			headers.NewPlain(),
			crossref.NewResolver(),
		),
		recorder: metrics.NoopRecorder{},
	}
}

// WithRecorder attaches a metrics recorder to the processor and its
// executor.
func (p *Processor) WithRecorder(r metrics.Recorder) *Processor {
	if r != nil {
		p.recorder = r
		p.executor.WithRecorder(r)
	}
	return p
}

// Registry exposes the transform registry (for listing and validation
// commands).
func (p *Processor) Registry() *plugin.Registry {
	return p.registry
}

// BuildPipeline builds and validates the pipeline for opts without touching
// a document.
func (p *Processor) BuildPipeline(opts config.Options) (*pipeline.OrderedPipeline, error) {
	pl, err := pipeline.Build(opts, p.registry)
	p.recorder.IncPipelineBuild(err == nil)
	return pl, err
}

// Run processes one source document: frontmatter split, parse, pipeline
// build, and transform execution. Configuration errors surface before the
// document is parsed; content anomalies never abort the run.
func (p *Processor) Run(ctx context.Context, source []byte, opts config.Options) (*Result, error) {
	pl, err := p.BuildPipeline(opts)
	if err != nil {
		return nil, err
	}

	fmRaw, body, _, _, err := frontmatter.Split(source)
	if err != nil {
		return nil, lexerrors.Wrap(err, lexerrors.CategoryContent, lexerrors.SeverityError, "frontmatter split failed")
	}
	fields, err := frontmatter.ParseYAML(fmRaw)
	if err != nil {
		return nil, lexerrors.Wrap(err, lexerrors.CategoryContent, lexerrors.SeverityError, "frontmatter parse failed")
	}

	doc, err := markdown.Parse(body)
	if err != nil {
		return nil, lexerrors.Wrap(err, lexerrors.CategoryContent, lexerrors.SeverityError, "document parse failed")
	}

	tracker := fieldtrack.NewRecorder()
	tc := plugin.NewContext(fields, opts)
	tc.Tracker = tracker
	tc.Recorder = p.recorder

	if err := p.executor.Run(ctx, pl, doc, tc); err != nil {
		return nil, err
	}

	return &Result{
		Output:   doc.Render(),
		Exported: tc.Exported,
		Pipeline: pl,
		Tracked:  tracker.Fields(),
	}, nil
}
