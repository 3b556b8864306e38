package headers

import (
	"context"
	"regexp"

	"git.home.luguber.info/inful/lexdraft/internal/docmodel"
	"git.home.luguber.info/inful/lexdraft/internal/plugin"
)

// trailingMarkerRe matches a trailing |key| definition marker on a heading.
var trailingMarkerRe = regexp.MustCompile(`\s*\|[A-Za-z0-9_.-]+\|$`)

// Plain renders legal headings without section numbers. It conflicts with
// the numbering transform; enabling both is an ordering violation.
type Plain struct{}

// NewPlain creates the plain-headers transform.
func NewPlain() *Plain {
	return &Plain{}
}

// Name returns the registry name.
func (*Plain) Name() string {
	return plugin.NamePlainHeaders
}

// Apply strips definition markers from headings, leaving their text
// otherwise untouched. Cross-reference resolution cannot run in this
// configuration (it requires numbered headers), so the markers would
// otherwise leak into rendered output.
func (*Plain) Apply(ctx context.Context, doc *docmodel.Document, tc *plugin.Context) error {
	doc.Walk(func(n *docmodel.Node) {
		if n.Kind != docmodel.KindLegalHeading {
			return
		}
		n.Text = trailingMarkerRe.ReplaceAllString(n.Text, "")
	})
	return nil
}
