// Package meta implements the content-loading transform that seeds the run
// context's export set from document metadata.
package meta

import (
	"context"

	"git.home.luguber.info/inful/lexdraft/internal/docmodel"
	"git.home.luguber.info/inful/lexdraft/internal/plugin"
)

// Loader establishes the metadata:loaded capability. It copies scalar
// metadata fields into the export set so the format-generation collaborator
// sees them alongside computed entries like the cross-reference list.
type Loader struct{}

// NewLoader creates the metadata transform.
func NewLoader() *Loader {
	return &Loader{}
}

// Name returns the registry name.
func (*Loader) Name() string {
	return plugin.NameMetadata
}

// Apply seeds the export set and the document title.
func (*Loader) Apply(ctx context.Context, doc *docmodel.Document, tc *plugin.Context) error {
	for k, v := range tc.Metadata {
		switch v.(type) {
		case string, int, int64, float64, bool:
			tc.Exported[k] = v
		}
	}
	if title, ok := tc.Metadata["title"].(string); ok && title != "" {
		doc.Title = title
	}
	if doc.Title != "" {
		tc.Exported["title"] = doc.Title
	}
	return nil
}
