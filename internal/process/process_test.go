package process

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/lexdraft/internal/config"
	lexerrors "git.home.luguber.info/inful/lexdraft/internal/errors"
	"git.home.luguber.info/inful/lexdraft/internal/fieldtrack"
	"git.home.luguber.info/inful/lexdraft/internal/plugin"
	"git.home.luguber.info/inful/lexdraft/internal/transform/crossref"
)

func defaultOpts() config.Options {
	return config.Options{
		EnabledTransforms: []string{plugin.NameHeaderNumbering, plugin.NameCrossReferences},
		ValidationMode:    config.ValidationStrict,
	}
}

func TestRun_RoundTrip(t *testing.T) {
	source := []byte(`---
level-1: "Article %n."
---
# Payment |pay|

See |pay|.
`)

	result, err := NewProcessor().Run(context.Background(), source, defaultOpts())
	require.NoError(t, err)

	out := string(result.Output)
	require.Contains(t, out, "# Article 1. Payment\n")
	require.Contains(t, out, "See Article 1..\n")

	refs, ok := result.Exported[crossref.ExportKey].([]crossref.Definition)
	require.True(t, ok)
	require.Equal(t, []crossref.Definition{{
		Key:           "pay",
		SectionNumber: "Article 1.",
		SectionText:   "Article 1. Payment",
	}}, refs)
}

func TestRun_MetadataFallbackAndUnresolved(t *testing.T) {
	source := []byte(`---
level-1: "Article %n."
client_name: Acme
---
# Scope

Prepared for |client_name|, ref |unknown_key|.
`)

	result, err := NewProcessor().Run(context.Background(), source, defaultOpts())
	require.NoError(t, err)

	out := string(result.Output)
	require.Contains(t, out, "Prepared for Acme, ref |unknown_key|.")

	var unresolved []fieldtrack.Field
	for _, f := range result.Tracked {
		if f.Resolution == fieldtrack.Unresolved {
			unresolved = append(unresolved, f)
		}
	}
	require.Len(t, unresolved, 1)
}

func TestRun_NestedNumbering(t *testing.T) {
	source := []byte(`---
level-1: "%l1"
level-2: "%l1.%l2"
level-3: "%l1.%l2.%l3"
---
# One

## Sub

## Sub again

### Deep
`)

	result, err := NewProcessor().Run(context.Background(), source, defaultOpts())
	require.NoError(t, err)

	out := string(result.Output)
	require.Contains(t, out, "# 1 One\n")
	require.Contains(t, out, "## 1.1 Sub\n")
	require.Contains(t, out, "## 1.2 Sub again\n")
	require.Contains(t, out, "### 1.2.1 Deep\n")
}

func TestRun_ConflictingTransformsStrictFails(t *testing.T) {
	opts := config.Options{
		EnabledTransforms: []string{plugin.NameHeaderNumbering, plugin.NamePlainHeaders},
		ValidationMode:    config.ValidationStrict,
	}

	_, err := NewProcessor().Run(context.Background(), []byte("# Heading\n"), opts)
	require.Error(t, err)
	require.True(t, lexerrors.IsCategory(err, lexerrors.CategoryValidation))
}

func TestRun_UnregisteredTransformFails(t *testing.T) {
	opts := config.Options{
		EnabledTransforms: []string{"ghost"},
		ValidationMode:    config.ValidationWarn,
	}

	_, err := NewProcessor().Run(context.Background(), []byte("# Heading\n"), opts)
	require.Error(t, err)
	require.True(t, lexerrors.IsCategory(err, lexerrors.CategoryConfig))
}

func TestRun_PlainHeadersConfiguration(t *testing.T) {
	opts := config.Options{
		EnabledTransforms: []string{plugin.NamePlainHeaders},
		ValidationMode:    config.ValidationStrict,
	}

	source := []byte("# Payment |pay|\n\nBody.\n")
	result, err := NewProcessor().Run(context.Background(), source, opts)
	require.NoError(t, err)
	require.Contains(t, string(result.Output), "# Payment\n")
}

func TestRun_UnconfiguredLevelPlaceholderSurvivesPipeline(t *testing.T) {
	source := []byte(`---
level-1: "Article %n."
---
# Top

## Nested
`)

	result, err := NewProcessor().Run(context.Background(), source, defaultOpts())
	require.NoError(t, err)
	require.Contains(t, string(result.Output), "## {level-2} Nested\n")
}

func TestRun_ExportedMetadataIncludesScalars(t *testing.T) {
	source := []byte(`---
level-1: "%n."
title: Master Agreement
client_name: Acme
---
# Scope
`)

	result, err := NewProcessor().Run(context.Background(), source, defaultOpts())
	require.NoError(t, err)
	require.Equal(t, "Acme", result.Exported["client_name"])
	require.Equal(t, "Master Agreement", result.Exported["title"])
}

func TestRun_IndependentRunsShareProcessor(t *testing.T) {
	processor := NewProcessor()
	source := []byte(`---
level-1: "%n."
---
# A

# B
`)

	first, err := processor.Run(context.Background(), source, defaultOpts())
	require.NoError(t, err)
	second, err := processor.Run(context.Background(), source, defaultOpts())
	require.NoError(t, err)

	// Counter state is scoped to a run; a second pass starts from scratch.
	require.Equal(t, string(first.Output), string(second.Output))
}
