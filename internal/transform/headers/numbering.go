package headers

import (
	"context"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/lexdraft/internal/docmodel"
	"git.home.luguber.info/inful/lexdraft/internal/fieldtrack"
	"git.home.luguber.info/inful/lexdraft/internal/observability"
	"git.home.luguber.info/inful/lexdraft/internal/plugin"
)

// Numbering is the hierarchical section numbering engine. It walks legal
// headings in document order, maintains the per-level counter state, and
// prefixes each heading's text with the rendered section number.
type Numbering struct{}

// NewNumbering creates the numbering transform.
func NewNumbering() *Numbering {
	return &Numbering{}
}

// Name returns the registry name.
func (*Numbering) Name() string {
	return plugin.NameHeaderNumbering
}

// Apply numbers the legal headings of doc.
//
// A level with no configured format renders the placeholder token
// `{level-N}`; a level configured with an explicitly empty format renders
// no prefix at all. The two never produce the same output.
func (*Numbering) Apply(ctx context.Context, doc *docmodel.Document, tc *plugin.Context) error {
	state := &State{}
	idx := 0
	doc.Walk(func(n *docmodel.Node) {
		if n.Kind != docmodel.KindLegalHeading {
			return
		}
		idx++
		state.Visit(n.Level, tc.Options.NoReset)

		format, configured := tc.Formats.Get(n.Level)
		var section string
		switch {
		case !configured:
			section = fmt.Sprintf("{level-%d}", n.Level)
			if tc.Options.Debug {
				observability.DebugContext(ctx, "no format configured for level, rendering placeholder",
					slog.Int("level", n.Level), slog.String("heading", n.Text))
			}
		case format == "":
			// Explicitly empty format: heading keeps its text unnumbered.
			section = ""
		default:
			section = Render(format, n.Level, state)
		}

		n.SectionNumber = section
		if section != "" {
			n.Text = section + " " + n.Text
		}

		tc.Tracker.Track(fieldtrack.Field{
			ID:         fmt.Sprintf("heading:%d", idx),
			Value:      section,
			Resolution: fieldtrack.ResolvedInternal,
			Computed:   true,
		})
	})
	return nil
}
