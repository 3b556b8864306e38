package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveValidationMode_ExplicitWins(t *testing.T) {
	t.Setenv("CI", "true")
	t.Setenv("LEXDRAFT_ENV", "production")

	mode := ResolveValidationMode(Options{ValidationMode: ValidationSilent})
	require.Equal(t, ValidationSilent, mode)
}

func TestResolveValidationMode_CIDefaultsStrict(t *testing.T) {
	t.Setenv("CI", "true")
	t.Setenv("LEXDRAFT_ENV", "")

	mode := ResolveValidationMode(Options{})
	require.Equal(t, ValidationStrict, mode)
}

func TestResolveValidationMode_ProductionDefaultsWarn(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("LEXDRAFT_ENV", "production")

	mode := ResolveValidationMode(Options{})
	require.Equal(t, ValidationWarn, mode)
}

func TestResolveValidationMode_DevelopmentDefaultsStrict(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("LEXDRAFT_ENV", "")

	mode := ResolveValidationMode(Options{})
	require.Equal(t, ValidationStrict, mode)
}

func TestNormalizeValidationMode(t *testing.T) {
	require.Equal(t, ValidationStrict, NormalizeValidationMode("strict"))
	require.Equal(t, ValidationWarn, NormalizeValidationMode("Warning"))
	require.Equal(t, ValidationSilent, NormalizeValidationMode("none"))
	require.Equal(t, ValidationMode(""), NormalizeValidationMode("bogus"))
}

func TestLevelFormatsFromMetadata_AcceptedSpellings(t *testing.T) {
	fields := map[string]any{
		"level-1":     "Article %n.",
		"level_2":     "Section %l1.%n",
		"level-three": "(%a)",
		"level_four":  "%r.",
	}

	lf := LevelFormatsFromMetadata(fields)

	f1, ok := lf.Get(1)
	require.True(t, ok)
	require.Equal(t, "Article %n.", f1)

	f2, ok := lf.Get(2)
	require.True(t, ok)
	require.Equal(t, "Section %l1.%n", f2)

	f3, ok := lf.Get(3)
	require.True(t, ok)
	require.Equal(t, "(%a)", f3)

	f4, ok := lf.Get(4)
	require.True(t, ok)
	require.Equal(t, "%r.", f4)

	_, ok = lf.Get(5)
	require.False(t, ok)
}

func TestLevelFormatsFromMetadata_EmptyStringIsConfigured(t *testing.T) {
	lf := LevelFormatsFromMetadata(map[string]any{"level-2": ""})

	f, ok := lf.Get(2)
	require.True(t, ok, "explicitly empty format must be distinct from unconfigured")
	require.Equal(t, "", f)

	_, ok = lf.Get(1)
	require.False(t, ok)
}

func TestLevelFormatsFromMetadata_NonStringValuesIgnored(t *testing.T) {
	lf := LevelFormatsFromMetadata(map[string]any{"level-1": 42})

	_, ok := lf.Get(1)
	require.False(t, ok)
}

func TestLevelFormats_GetOutOfRange(t *testing.T) {
	var lf LevelFormats
	lf.Set(1, "%n")

	_, ok := lf.Get(0)
	require.False(t, ok)
	_, ok = lf.Get(10)
	require.False(t, ok)
}
