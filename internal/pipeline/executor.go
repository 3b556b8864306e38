package pipeline

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/lexdraft/internal/docmodel"
	lexerrors "git.home.luguber.info/inful/lexdraft/internal/errors"
	"git.home.luguber.info/inful/lexdraft/internal/metrics"
	"git.home.luguber.info/inful/lexdraft/internal/observability"
	"git.home.luguber.info/inful/lexdraft/internal/plugin"
)

// Executor applies an ordered pipeline to one exclusively-owned document
// tree, transform after transform. Processing is single-threaded within a
// run; independent documents may be processed in parallel by independent
// executors since all run state lives in the plugin.Context.
type Executor struct {
	impls    map[string]plugin.Transform
	recorder metrics.Recorder
}

// NewExecutor creates an executor from transform implementations, indexed
// by their registry names.
func NewExecutor(transforms ...plugin.Transform) *Executor {
	impls := make(map[string]plugin.Transform, len(transforms))
	for _, t := range transforms {
		impls[t.Name()] = t
	}
	return &Executor{impls: impls, recorder: metrics.NoopRecorder{}}
}

// WithRecorder attaches a metrics recorder.
func (e *Executor) WithRecorder(r metrics.Recorder) *Executor {
	if r != nil {
		e.recorder = r
	}
	return e
}

// Run executes the pipeline order against doc. The tree is owned by the
// executor for the duration of the run; transforms must not retain it.
func (e *Executor) Run(ctx context.Context, p *OrderedPipeline, doc *docmodel.Document, tc *plugin.Context) error {
	ctx = observability.WithRunID(ctx, p.BuildID)
	if tc.Recorder == nil {
		tc.Recorder = e.recorder
	}

	runStart := time.Now()
	for _, name := range p.Names {
		impl, ok := e.impls[name]
		if !ok {
			return lexerrors.ConfigErrorf("no implementation registered for transform %s", name)
		}

		stageCtx := observability.WithStage(ctx, name)
		observability.DebugContext(stageCtx, "applying transform")

		start := time.Now()
		err := impl.Apply(stageCtx, doc, tc)
		e.recorder.ObserveTransformDuration(name, time.Since(start))
		if err != nil {
			e.recorder.IncTransformResult(name, metrics.ResultFatal)
			return lexerrors.Wrap(err, lexerrors.CategoryRuntime, lexerrors.SeverityError, "transform "+name+" failed")
		}
		e.recorder.IncTransformResult(name, metrics.ResultSuccess)
	}
	e.recorder.ObserveRunDuration(time.Since(runStart))

	observability.InfoContext(ctx, "pipeline run complete",
		slog.Int("transforms", len(p.Names)),
		slog.Int("nodes", len(doc.Nodes)))
	return nil
}
