// Package fieldtrack defines the field-tracking collaborator interface.
//
// Every substitution performed during a run, including the unresolved case,
// is reported here so downstream rendering can visually distinguish
// computed values, metadata values, and references that never resolved.
package fieldtrack

// Resolution tags how a field or reference was resolved.
type Resolution string

const (
	// ResolvedInternal: the value came from document-internal logic
	// (section numbering, cross-reference definitions).
	ResolvedInternal Resolution = "resolved-internal"

	// ResolvedMetadata: the value came from caller-supplied metadata.
	ResolvedMetadata Resolution = "resolved-from-metadata"

	// Unresolved: no value was found; the source text was left unchanged.
	Unresolved Resolution = "unresolved"
)

// Field is one tracked substitution event.
type Field struct {
	// ID is a stable identifier for the field occurrence.
	ID string

	// Value is the substituted value, empty when unresolved.
	Value string

	// Resolution tags the outcome.
	Resolution Resolution

	// Computed distinguishes logic-derived substitutions (numbering,
	// cross-references) from direct metadata substitutions.
	Computed bool
}

// Tracker receives one call per tracked field.
type Tracker interface {
	Track(f Field)
}

// NoopTracker discards all tracked fields (default when no collaborator is
// attached).
type NoopTracker struct{}

func (NoopTracker) Track(Field) {}

// Recorder collects tracked fields in order, for tests and for callers that
// post-process tracking data themselves.
type Recorder struct {
	fields []Field
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Track appends the field to the recording.
func (r *Recorder) Track(f Field) {
	r.fields = append(r.fields, f)
}

// Fields returns the recorded fields in tracking order.
func (r *Recorder) Fields() []Field {
	return r.fields
}

// ByResolution returns the recorded fields matching a resolution tag.
func (r *Recorder) ByResolution(res Resolution) []Field {
	var out []Field
	for _, f := range r.fields {
		if f.Resolution == res {
			out = append(out, f)
		}
	}
	return out
}
