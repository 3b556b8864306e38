package plugin

// Capability tags established by the built-in transforms. Tags are an open
// string set; these constants exist for the built-ins' own wiring, not as a
// closed enum.
const (
	CapMetadataLoaded  = "metadata:loaded"
	CapHeadersParsed   = "headers:parsed"
	CapHeadersNumbered = "headers:numbered"
	CapHeadersPlain    = "headers:plain"
	CapRefsResolved    = "refs:resolved"
)

// Built-in transform names.
const (
	NameMetadata        = "metadata"
	NameStructure       = "structure"
	NamePlainHeaders    = "plain-headers"
	NameHeaderNumbering = "header-numbering"
	NameCrossReferences = "cross-references"
)

// BuiltinMetadata returns the metadata entries for the built-in transforms.
func BuiltinMetadata() []Metadata {
	return []Metadata{
		{
			Name:        NameMetadata,
			Phase:       PhaseContentLoading,
			Description: "Loads document metadata into the run context and export set",
			Provides:    []string{CapMetadataLoaded},
			Required:    true,
		},
		{
			Name:        NameStructure,
			Phase:       PhaseStructureParsing,
			Description: "Normalizes legal heading levels into the 1-9 range",
			Requires:    []string{CapMetadataLoaded},
			Provides:    []string{CapHeadersParsed},
			Required:    true,
		},
		{
			Name:        NamePlainHeaders,
			Phase:       PhaseStructureParsing,
			Description: "Renders legal headings without section numbers",
			Requires:    []string{CapHeadersParsed},
			RunAfter:    []string{NameStructure},
			Provides:    []string{CapHeadersPlain},
			Conflicts:   []string{NameHeaderNumbering},
		},
		{
			Name:        NameHeaderNumbering,
			Phase:       PhaseStructureParsing,
			Description: "Computes hierarchical section numbers for legal headings",
			Requires:    []string{CapHeadersParsed},
			RunAfter:    []string{NameStructure},
			Provides:    []string{CapHeadersNumbered},
			Conflicts:   []string{NamePlainHeaders},
		},
		{
			Name:        NameCrossReferences,
			Phase:       PhasePostProcessing,
			Description: "Extracts |key| definitions and resolves references against section numbers and metadata",
			Requires:    []string{CapHeadersNumbered},
			Provides:    []string{CapRefsResolved},
		},
	}
}

// NewBuiltinRegistry constructs a registry holding the built-in transforms.
// The built-in table is internally consistent, so construction cannot fail.
func NewBuiltinRegistry() *Registry {
	r, err := NewRegistry(BuiltinMetadata()...)
	if err != nil {
		panic(err)
	}
	return r
}
