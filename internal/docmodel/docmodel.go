// Package docmodel defines the in-memory document tree that pipeline
// transforms operate on.
//
// The tree is a flat, ordered sequence of block nodes. Legal headings carry
// a logical hierarchy level from 1 to 9 that is independent of the depth a
// renderer can express; section numbering and cross-reference resolution
// both walk the sequence in document order.
//
// Ownership: one Document is exclusively owned by the executor driving a
// pipeline run. Transforms mutate it in place and must not retain a
// reference after their Apply call returns.
package docmodel

import (
	"strings"
)

// MaxLevel is the number of logical hierarchy levels tracked for legal
// headings.
const MaxLevel = 9

// MaxRenderDepth caps the heading depth emitted by the renderer. Markdown
// headings stop at six hashes even though nine logical levels are tracked.
const MaxRenderDepth = 6

// NodeKind identifies the block type of a node.
type NodeKind string

const (
	// KindLegalHeading is a heading carrying a 1-9 legal hierarchy level.
	KindLegalHeading NodeKind = "legal-heading"

	// KindHeading is an ordinary heading outside the legal numbering scheme.
	KindHeading NodeKind = "heading"

	// KindParagraph is a run of body text.
	KindParagraph NodeKind = "paragraph"
)

// Node is one block in the document sequence.
type Node struct {
	Kind NodeKind

	// Level is the legal hierarchy level (1-9) for KindLegalHeading, or the
	// markdown depth (1-6) for KindHeading. Zero for paragraphs.
	Level int

	// Text is the display text of the node. For headings this excludes the
	// marker syntax; transforms rewrite it in place.
	Text string

	// SectionNumber is the formatted number computed by the numbering
	// transform for this heading. Empty until numbering has run, and for
	// non-heading nodes.
	SectionNumber string
}

// Document is the root of a parsed drafting document.
type Document struct {
	Title string
	Nodes []*Node
}

// Walk visits every node in document order. The visitor may mutate nodes
// in place.
func (d *Document) Walk(visit func(*Node)) {
	for _, n := range d.Nodes {
		visit(n)
	}
}

// Headings returns the legal headings in document order.
func (d *Document) Headings() []*Node {
	var out []*Node
	for _, n := range d.Nodes {
		if n.Kind == KindLegalHeading {
			out = append(out, n)
		}
	}
	return out
}

// Render serializes the document back to markdown-shaped text for the
// format-generation collaborator. Legal heading depth is capped at
// MaxRenderDepth.
func (d *Document) Render() []byte {
	var b strings.Builder
	for i, n := range d.Nodes {
		if i > 0 {
			b.WriteString("\n")
		}
		switch n.Kind {
		case KindLegalHeading, KindHeading:
			depth := n.Level
			if depth > MaxRenderDepth {
				depth = MaxRenderDepth
			}
			if depth < 1 {
				depth = 1
			}
			b.WriteString(strings.Repeat("#", depth))
			b.WriteString(" ")
			b.WriteString(n.Text)
			b.WriteString("\n")
		case KindParagraph:
			b.WriteString(n.Text)
			b.WriteString("\n")
		}
	}
	return []byte(b.String())
}
