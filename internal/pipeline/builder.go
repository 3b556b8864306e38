package pipeline

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/lexdraft/internal/config"
	lexerrors "git.home.luguber.info/inful/lexdraft/internal/errors"
	"git.home.luguber.info/inful/lexdraft/internal/plugin"
	"git.home.luguber.info/inful/lexdraft/internal/util/sets"
)

// OrderedPipeline is the immutable output of Build: the single execution
// order for one transform set, plus the capability set available after
// running it. It is constructed fresh per processing run but may be cached
// and shared across runs that use an identical transform set, since Build
// is pure given the registry.
type OrderedPipeline struct {
	// Names is the final execution order.
	Names []string

	// ByPhase maps each phase to its subsequence of Names.
	ByPhase map[plugin.Phase][]string

	// Capabilities is the union of capabilities provided by the full order.
	Capabilities sets.Set[string]

	// Validation holds order/capability findings per the resolved mode.
	Validation ValidationResult

	// Mode is the validation mode the pipeline was built under.
	Mode config.ValidationMode

	// BuildID uniquely identifies this build.
	BuildID string

	// BuiltAt is the build timestamp.
	BuiltAt time.Time

	// Options is the configuration the pipeline was built from.
	Options config.Options
}

// Build resolves the validation mode, groups the enabled transforms by
// phase, topologically sorts each phase, validates the complete order, and
// packages the result.
//
// Transforms marked Required in the registry are always included, ahead of
// the requested names. Given the same options and registry, Build always
// returns the same order.
//
// Unregistered names and intra-phase cycles are fatal regardless of mode.
// Order/capability findings are fatal only in strict mode; in warn mode they
// are attached as warnings and in silent mode discarded.
func Build(opts config.Options, reg *plugin.Registry) (*OrderedPipeline, error) {
	mode := config.ResolveValidationMode(opts)

	names := withRequired(opts.EnabledTransforms, reg)
	grouped, err := reg.GroupByPhase(names)
	if err != nil {
		return nil, err
	}

	ordered := make([]string, 0, len(names))
	byPhase := make(map[plugin.Phase][]string)
	for _, phase := range plugin.Phases() {
		phaseNames := grouped[phase]
		if len(phaseNames) == 0 {
			continue
		}
		sorted, err := topoSort(phaseNames, reg)
		if err != nil {
			return nil, err
		}
		byPhase[phase] = sorted
		ordered = append(ordered, sorted...)
	}

	findings := checkOrder(ordered, reg)

	result := ValidationResult{Valid: true}
	switch mode {
	case config.ValidationStrict:
		result.Errors = findings
		result.Valid = len(findings) == 0
	case config.ValidationWarn:
		result.Warnings = findings
	case config.ValidationSilent:
		// No reporting.
	}

	capabilities := sets.New[string]()
	for _, name := range ordered {
		m, _ := reg.Get(name)
		capabilities.AddAll(m.Provides...)
	}

	p := &OrderedPipeline{
		Names:        ordered,
		ByPhase:      byPhase,
		Capabilities: capabilities,
		Validation:   result,
		Mode:         mode,
		BuildID:      uuid.NewString(),
		BuiltAt:      time.Now(),
		Options:      opts,
	}

	if !result.Valid {
		return p, lexerrors.New(lexerrors.CategoryValidation, lexerrors.SeverityFatal,
			"pipeline validation failed: "+strings.Join(result.Errors, "; "))
	}
	return p, nil
}

// withRequired prepends the registry's required transforms (in registration
// order) to the requested names, deduplicating while preserving request
// order for the rest.
func withRequired(requested []string, reg *plugin.Registry) []string {
	seen := sets.New[string]()
	out := make([]string, 0, len(requested))
	for _, name := range reg.Required() {
		if !seen.Has(name) {
			seen.Add(name)
			out = append(out, name)
		}
	}
	for _, name := range requested {
		if !seen.Has(name) {
			seen.Add(name)
			out = append(out, name)
		}
	}
	return out
}
