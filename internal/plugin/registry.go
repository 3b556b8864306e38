package plugin

import (
	lexerrors "git.home.luguber.info/inful/lexdraft/internal/errors"
)

// Registry is the static table of transform metadata. It is an explicit,
// constructed value with no hidden global: build it once at startup and
// pass it to the pipeline builder and validator.
//
// The registry is immutable after construction and safe for concurrent
// readers.
type Registry struct {
	entries map[string]Metadata
	order   []string
}

// NewRegistry constructs a registry from metadata entries and validates all
// cross-entry references up front: every name mentioned in RunBefore,
// RunAfter, and Conflicts must exist, and every required capability must be
// satisfiable by a transform assigned to an equal-or-earlier phase.
func NewRegistry(entries ...Metadata) (*Registry, error) {
	r := &Registry{entries: make(map[string]Metadata, len(entries))}
	for _, m := range entries {
		if err := m.Validate(); err != nil {
			return nil, lexerrors.Wrap(err, lexerrors.CategoryConfig, lexerrors.SeverityFatal, "invalid transform metadata")
		}
		if _, exists := r.entries[m.Name]; exists {
			return nil, lexerrors.ConfigErrorf("transform %s registered twice", m.Name)
		}
		r.entries[m.Name] = m
		r.order = append(r.order, m.Name)
	}

	if err := r.checkReferences(); err != nil {
		return nil, err
	}
	if err := r.checkCapabilityPhases(); err != nil {
		return nil, err
	}
	return r, nil
}

// checkReferences verifies every transform name referenced by an entry
// resolves to a registered transform.
func (r *Registry) checkReferences() error {
	for _, name := range r.order {
		m := r.entries[name]
		for _, refs := range [][]string{m.RunBefore, m.RunAfter, m.Conflicts} {
			for _, ref := range refs {
				if _, ok := r.entries[ref]; !ok {
					return lexerrors.ConfigErrorf("transform %s references unknown transform %s", name, ref)
				}
			}
		}
	}
	return nil
}

// checkCapabilityPhases verifies each required capability has at least one
// provider in an equal-or-earlier phase. Whether the provider is actually
// enabled for a given run is checked later by the order validator; this
// guards against registry configurations that can never be satisfied.
func (r *Registry) checkCapabilityPhases() error {
	earliestProvider := map[string]Phase{}
	for _, name := range r.order {
		m := r.entries[name]
		for _, cap := range m.Provides {
			if p, ok := earliestProvider[cap]; !ok || m.Phase < p {
				earliestProvider[cap] = m.Phase
			}
		}
	}
	for _, name := range r.order {
		m := r.entries[name]
		for _, cap := range m.Requires {
			p, ok := earliestProvider[cap]
			if !ok {
				return lexerrors.ConfigErrorf("transform %s requires capability %s, which no registered transform provides", name, cap)
			}
			if p > m.Phase {
				return lexerrors.ConfigErrorf("transform %s requires capability %s, only provided in later phase %s", name, cap, p)
			}
		}
	}
	return nil
}

// Get returns the metadata for a transform name.
func (r *Registry) Get(name string) (Metadata, bool) {
	m, ok := r.entries[name]
	return m, ok
}

// Has reports whether a transform name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Names returns all registered transform names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Required returns the names of all transforms marked Required, in
// registration order.
func (r *Registry) Required() []string {
	var out []string
	for _, name := range r.order {
		if r.entries[name].Required {
			out = append(out, name)
		}
	}
	return out
}

// GroupByPhase partitions the given transform names by phase, preserving
// the input order within each phase. It fails with a configuration error if
// any name is unregistered.
func (r *Registry) GroupByPhase(names []string) (map[Phase][]string, error) {
	grouped := make(map[Phase][]string)
	for _, name := range names {
		m, ok := r.entries[name]
		if !ok {
			return nil, lexerrors.ConfigErrorf("transform %s is not registered", name)
		}
		if !m.Phase.IsValid() {
			return nil, lexerrors.ConfigErrorf("transform %s has no phase assigned", name)
		}
		grouped[m.Phase] = append(grouped[m.Phase], name)
	}
	return grouped, nil
}
