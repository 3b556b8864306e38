package meta

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/lexdraft/internal/config"
	"git.home.luguber.info/inful/lexdraft/internal/docmodel"
	"git.home.luguber.info/inful/lexdraft/internal/plugin"
)

func TestLoader_CopiesScalarsOnly(t *testing.T) {
	tc := plugin.NewContext(map[string]any{
		"client_name": "Acme",
		"revision":    3,
		"final":       true,
		"nested":      map[string]any{"inner": "x"},
		"list":        []any{"a"},
	}, config.Options{})

	require.NoError(t, NewLoader().Apply(context.Background(), &docmodel.Document{}, tc))

	require.Equal(t, "Acme", tc.Exported["client_name"])
	require.Equal(t, 3, tc.Exported["revision"])
	require.Equal(t, true, tc.Exported["final"])
	require.NotContains(t, tc.Exported, "nested")
	require.NotContains(t, tc.Exported, "list")
}

func TestLoader_SeedsTitle(t *testing.T) {
	tc := plugin.NewContext(map[string]any{"title": "Master Agreement"}, config.Options{})
	doc := &docmodel.Document{}

	require.NoError(t, NewLoader().Apply(context.Background(), doc, tc))
	require.Equal(t, "Master Agreement", doc.Title)
	require.Equal(t, "Master Agreement", tc.Exported["title"])
}

func TestLoader_ExistingTitleKept(t *testing.T) {
	tc := plugin.NewContext(nil, config.Options{})
	doc := &docmodel.Document{Title: "Preset"}

	require.NoError(t, NewLoader().Apply(context.Background(), doc, tc))
	require.Equal(t, "Preset", doc.Title)
	require.Equal(t, "Preset", tc.Exported["title"])
}
