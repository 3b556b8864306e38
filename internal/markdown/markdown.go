// Package markdown parses preprocessed drafting source into the docmodel
// tree using Goldmark. Input is expected to be free of patterns that would
// fragment across block nodes (bracket conditionals, loop syntax); those are
// handled by the string-preprocessing step before parsing.
package markdown

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/lexdraft/internal/docmodel"
)

// legalMarkerRe matches the explicit level marker form `lN. Title` used for
// hierarchy levels deeper than markdown headings can express.
var legalMarkerRe = regexp.MustCompile(`^l([1-9])\.\s+(.+)$`)

// Parse converts a markdown body (frontmatter already removed) into the
// document tree.
//
// ATX headings become legal headings at their markdown depth (levels 1-6).
// A paragraph of the form `lN. Title` becomes a legal heading at level N,
// which is how levels 7-9 are expressed in source.
func Parse(body []byte) (*docmodel.Document, error) {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(body))

	doc := &docmodel.Document{}
	for child := root.FirstChild(); child != nil; child = child.NextSibling() {
		switch node := child.(type) {
		case *gmast.Heading:
			txt := nodeText(node, body)
			doc.Nodes = append(doc.Nodes, &docmodel.Node{
				Kind:  docmodel.KindLegalHeading,
				Level: node.Level,
				Text:  txt,
			})
			if doc.Title == "" && node.Level == 1 {
				doc.Title = txt
			}
		case *gmast.Paragraph, *gmast.TextBlock:
			txt := nodeText(node, body)
			if level, title, ok := splitLegalMarker(txt); ok {
				doc.Nodes = append(doc.Nodes, &docmodel.Node{
					Kind:  docmodel.KindLegalHeading,
					Level: level,
					Text:  title,
				})
				continue
			}
			doc.Nodes = append(doc.Nodes, &docmodel.Node{
				Kind: docmodel.KindParagraph,
				Text: txt,
			})
		default:
			// Lists, code blocks and other structures are carried through
			// as opaque paragraphs; the core transforms only touch headings
			// and plain text.
			txt := nodeText(node, body)
			if txt != "" {
				doc.Nodes = append(doc.Nodes, &docmodel.Node{
					Kind: docmodel.KindParagraph,
					Text: txt,
				})
			}
		}
	}
	return doc, nil
}

// splitLegalMarker recognizes the `lN. Title` marker form and returns the
// level and title text.
func splitLegalMarker(s string) (int, string, bool) {
	m := legalMarkerRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, "", false
	}
	level, err := strconv.Atoi(m[1])
	if err != nil || level < 1 || level > docmodel.MaxLevel {
		return 0, "", false
	}
	return level, m[2], true
}

// nodeText collects the literal text content of a node, joining soft line
// breaks with single spaces.
func nodeText(n gmast.Node, source []byte) string {
	var b strings.Builder
	collectText(n, source, &b)
	return strings.TrimSpace(b.String())
}

func collectText(n gmast.Node, source []byte, b *strings.Builder) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch t := child.(type) {
		case *gmast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteString(" ")
			}
		case *gmast.String:
			b.Write(t.Value)
		default:
			collectText(child, source, b)
		}
	}
}
