package headers

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/lexdraft/internal/docmodel"
	"git.home.luguber.info/inful/lexdraft/internal/observability"
	"git.home.luguber.info/inful/lexdraft/internal/plugin"
)

// Structure normalizes legal heading levels into the tracked 1-9 range
// before any numbering runs. It establishes the headers:parsed capability.
type Structure struct{}

// NewStructure creates the structure transform.
func NewStructure() *Structure {
	return &Structure{}
}

// Name returns the registry name.
func (*Structure) Name() string {
	return plugin.NameStructure
}

// Apply clamps out-of-range heading levels.
func (*Structure) Apply(ctx context.Context, doc *docmodel.Document, tc *plugin.Context) error {
	headings := 0
	doc.Walk(func(n *docmodel.Node) {
		if n.Kind != docmodel.KindLegalHeading {
			return
		}
		headings++
		if n.Level < 1 {
			n.Level = 1
		}
		if n.Level > docmodel.MaxLevel {
			n.Level = docmodel.MaxLevel
		}
	})
	observability.DebugContext(ctx, "structure pass complete", slog.Int("headings", headings))
	return nil
}
