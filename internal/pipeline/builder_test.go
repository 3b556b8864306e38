package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/lexdraft/internal/config"
	lexerrors "git.home.luguber.info/inful/lexdraft/internal/errors"
	"git.home.luguber.info/inful/lexdraft/internal/plugin"
)

func builderRegistry(t *testing.T) *plugin.Registry {
	t.Helper()
	reg, err := plugin.NewRegistry(
		plugin.Metadata{Name: "loader", Phase: plugin.PhaseContentLoading, Provides: []string{"content:loaded"}, Required: true},
		plugin.Metadata{Name: "vars", Phase: plugin.PhaseVariableExpansion, Requires: []string{"content:loaded"}, Provides: []string{"vars:expanded"}},
		plugin.Metadata{Name: "structure", Phase: plugin.PhaseStructureParsing, Provides: []string{"headers:parsed"}},
		plugin.Metadata{Name: "numbering", Phase: plugin.PhaseStructureParsing, Requires: []string{"headers:parsed"}, RunAfter: []string{"structure"}, Provides: []string{"headers:numbered"}, Conflicts: []string{"plain"}},
		plugin.Metadata{Name: "plain", Phase: plugin.PhaseStructureParsing, Requires: []string{"headers:parsed"}, RunAfter: []string{"structure"}, Conflicts: []string{"numbering"}},
		plugin.Metadata{Name: "refs", Phase: plugin.PhasePostProcessing, Requires: []string{"headers:numbered"}, Provides: []string{"refs:resolved"}},
	)
	require.NoError(t, err)
	return reg
}

func strictOpts(names ...string) config.Options {
	return config.Options{EnabledTransforms: names, ValidationMode: config.ValidationStrict}
}

func TestBuild_PhaseOrderAndSort(t *testing.T) {
	reg := builderRegistry(t)

	p, err := Build(strictOpts("refs", "numbering", "structure", "vars"), reg)
	require.NoError(t, err)
	require.Equal(t, []string{"loader", "vars", "structure", "numbering", "refs"}, p.Names)
	require.Equal(t, []string{"structure", "numbering"}, p.ByPhase[plugin.PhaseStructureParsing])
	require.True(t, p.Validation.Valid)
}

func TestBuild_Deterministic(t *testing.T) {
	reg := builderRegistry(t)
	opts := strictOpts("refs", "numbering", "structure", "vars")

	first, err := Build(opts, reg)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Build(opts, reg)
		require.NoError(t, err)
		require.Equal(t, first.Names, again.Names)
		require.Equal(t, first.ByPhase, again.ByPhase)
	}
}

func TestBuild_RequiredAlwaysIncluded(t *testing.T) {
	reg := builderRegistry(t)

	p, err := Build(strictOpts("structure"), reg)
	require.NoError(t, err)
	require.Equal(t, []string{"loader", "structure"}, p.Names)
}

func TestBuild_CapabilitiesCollected(t *testing.T) {
	reg := builderRegistry(t)

	p, err := Build(strictOpts("vars", "structure", "numbering", "refs"), reg)
	require.NoError(t, err)
	for _, cap := range []string{"content:loaded", "vars:expanded", "headers:parsed", "headers:numbered", "refs:resolved"} {
		require.True(t, p.Capabilities.Has(cap), "missing capability %s", cap)
	}
}

func TestBuild_UnregisteredNameFatalInAnyMode(t *testing.T) {
	reg := builderRegistry(t)

	for _, mode := range []config.ValidationMode{config.ValidationStrict, config.ValidationWarn, config.ValidationSilent} {
		opts := config.Options{EnabledTransforms: []string{"ghost"}, ValidationMode: mode}
		_, err := Build(opts, reg)
		require.Error(t, err, "mode %s", mode)
		require.True(t, lexerrors.IsCategory(err, lexerrors.CategoryConfig))
	}
}

func TestBuild_CycleFatalInAnyMode(t *testing.T) {
	reg, err := plugin.NewRegistry(
		plugin.Metadata{Name: "a", Phase: plugin.PhaseStructureParsing, RunAfter: []string{"b"}},
		plugin.Metadata{Name: "b", Phase: plugin.PhaseStructureParsing, RunAfter: []string{"a"}},
	)
	require.NoError(t, err)

	for _, mode := range []config.ValidationMode{config.ValidationStrict, config.ValidationWarn, config.ValidationSilent} {
		opts := config.Options{EnabledTransforms: []string{"a", "b"}, ValidationMode: mode}
		_, err := Build(opts, reg)
		require.Error(t, err, "mode %s", mode)
	}
}

func TestBuild_ConflictStrictRefusesSuccess(t *testing.T) {
	reg := builderRegistry(t)

	p, err := Build(strictOpts("structure", "numbering", "plain"), reg)
	require.Error(t, err)
	require.NotNil(t, p)
	require.False(t, p.Validation.Valid)
	require.NotEmpty(t, p.Validation.Errors)
}

func TestBuild_ConflictWarnContinues(t *testing.T) {
	reg := builderRegistry(t)
	opts := config.Options{
		EnabledTransforms: []string{"structure", "numbering", "plain"},
		ValidationMode:    config.ValidationWarn,
	}

	p, err := Build(opts, reg)
	require.NoError(t, err)
	require.True(t, p.Validation.Valid)
	require.NotEmpty(t, p.Validation.Warnings)
}

func TestBuild_ConflictSilentSuppressed(t *testing.T) {
	reg := builderRegistry(t)
	opts := config.Options{
		EnabledTransforms: []string{"structure", "numbering", "plain"},
		ValidationMode:    config.ValidationSilent,
	}

	p, err := Build(opts, reg)
	require.NoError(t, err)
	require.Empty(t, p.Validation.Errors)
	require.Empty(t, p.Validation.Warnings)
}

func TestBuild_MissingCapabilityStrict(t *testing.T) {
	reg := builderRegistry(t)

	// refs requires headers:numbered, but numbering is not enabled.
	p, err := Build(strictOpts("structure", "refs"), reg)
	require.Error(t, err)
	require.False(t, p.Validation.Valid)
	require.Contains(t, p.Validation.Errors[0], "requires capability headers:numbered, not yet provided")
}

func TestBuild_CapabilitySatisfiedAcrossPhases(t *testing.T) {
	reg := builderRegistry(t)

	// vars requires content:loaded, provided by loader in an earlier phase.
	p, err := Build(strictOpts("vars"), reg)
	require.NoError(t, err)
	require.Equal(t, []string{"loader", "vars"}, p.Names)
	require.True(t, p.Validation.Valid)
}

func TestBuild_PipelineMetadata(t *testing.T) {
	reg := builderRegistry(t)

	p, err := Build(strictOpts("structure"), reg)
	require.NoError(t, err)
	require.NotEmpty(t, p.BuildID)
	require.False(t, p.BuiltAt.IsZero())
	require.Equal(t, config.ValidationStrict, p.Mode)
}
