// Package crossref implements cross-reference resolution: |key| definitions
// attached to headings are extracted, and |key| usages in body text are
// rewritten with the resolved section number or a metadata fallback.
//
// The transform runs strictly after header numbering (declared registry
// dependency) since definitions capture the section number the numbering
// engine just computed.
package crossref

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"git.home.luguber.info/inful/lexdraft/internal/docmodel"
	"git.home.luguber.info/inful/lexdraft/internal/fieldtrack"
	"git.home.luguber.info/inful/lexdraft/internal/frontmatter"
	"git.home.luguber.info/inful/lexdraft/internal/metrics"
	"git.home.luguber.info/inful/lexdraft/internal/observability"
	"git.home.luguber.info/inful/lexdraft/internal/plugin"
)

// ExportKey is the exported-metadata key carrying the ordered definition
// list for the format-generation collaborator.
const ExportKey = "_cross_references"

// Definition records one |key| definition extracted from a heading.
// Definitions are never mutated after creation and are discarded at end of
// run.
type Definition struct {
	// Key is the document-unique reference key.
	Key string `yaml:"key" json:"key"`

	// SectionNumber is the formatted number the numbering engine produced
	// for the heading carrying this key.
	SectionNumber string `yaml:"sectionNumber" json:"sectionNumber"`

	// SectionText is the section number concatenated with the heading's
	// plain text.
	SectionText string `yaml:"sectionText" json:"sectionText"`
}

// definitionRe matches a trailing |key| marker on a heading.
var definitionRe = regexp.MustCompile(`^(.*?)\s*\|([A-Za-z0-9_.-]+)\|$`)

// usageRe matches |key| occurrences in body text.
var usageRe = regexp.MustCompile(`\|([A-Za-z0-9_.-]+)\|`)

// Resolver is the cross-reference resolution transform.
type Resolver struct{}

// NewResolver creates the cross-reference transform.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Name returns the registry name.
func (*Resolver) Name() string {
	return plugin.NameCrossReferences
}

// Apply runs the two resolution passes and exports the definition list.
func (*Resolver) Apply(ctx context.Context, doc *docmodel.Document, tc *plugin.Context) error {
	defs, ordered := extractDefinitions(ctx, doc, tc)
	resolveUsages(doc, defs, tc)
	tc.Exported[ExportKey] = ordered
	return nil
}

// extractDefinitions strips |key| markers from headings and records a
// definition per key. Duplicate keys are first-write-wins: later duplicates
// are ignored, not overwritten.
func extractDefinitions(ctx context.Context, doc *docmodel.Document, tc *plugin.Context) (map[string]Definition, []Definition) {
	defs := make(map[string]Definition)
	var ordered []Definition

	doc.Walk(func(n *docmodel.Node) {
		if n.Kind != docmodel.KindLegalHeading {
			return
		}
		m := definitionRe.FindStringSubmatch(n.Text)
		if m == nil {
			return
		}
		n.Text = m[1]
		key := m[2]

		if _, exists := defs[key]; exists {
			tc.Recorder.IncDuplicateDefinition()
			if tc.Options.Debug {
				observability.DebugContext(ctx, "duplicate cross-reference key ignored",
					slog.String("key", key), slog.String("heading", n.Text))
			}
			return
		}
		def := Definition{
			Key:           key,
			SectionNumber: n.SectionNumber,
			SectionText:   n.Text,
		}
		defs[key] = def
		ordered = append(ordered, def)
	})

	return defs, ordered
}

// resolveUsages rewrites |key| occurrences in non-heading text. Each
// occurrence resolves against the definitions first, then against caller
// metadata (top-level or dotted path), and is otherwise left unchanged.
// Every outcome, including the unresolved case, is reported to the field
// tracker.
func resolveUsages(doc *docmodel.Document, defs map[string]Definition, tc *plugin.Context) {
	occurrence := 0
	doc.Walk(func(n *docmodel.Node) {
		if n.Kind != docmodel.KindParagraph {
			return
		}
		n.Text = usageRe.ReplaceAllStringFunc(n.Text, func(match string) string {
			occurrence++
			key := match[1 : len(match)-1]
			id := fmt.Sprintf("xref:%s:%d", key, occurrence)

			if def, ok := defs[key]; ok {
				tc.Recorder.IncReferenceResolution(metrics.ResolutionInternal)
				tc.Tracker.Track(fieldtrack.Field{
					ID:         id,
					Value:      def.SectionNumber,
					Resolution: fieldtrack.ResolvedInternal,
					Computed:   true,
				})
				return def.SectionNumber
			}

			if v, ok := frontmatter.Lookup(tc.Metadata, key); ok {
				value := frontmatter.Stringify(v)
				tc.Recorder.IncReferenceResolution(metrics.ResolutionMetadata)
				tc.Tracker.Track(fieldtrack.Field{
					ID:         id,
					Value:      value,
					Resolution: fieldtrack.ResolvedMetadata,
					Computed:   false,
				})
				return value
			}

			tc.Recorder.IncReferenceResolution(metrics.ResolutionNone)
			tc.Tracker.Track(fieldtrack.Field{
				ID:         id,
				Resolution: fieldtrack.Unresolved,
				Computed:   true,
			})
			return match
		})
	})
}
