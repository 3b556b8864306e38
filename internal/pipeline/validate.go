package pipeline

import (
	"fmt"

	"git.home.luguber.info/inful/lexdraft/internal/plugin"
	"git.home.luguber.info/inful/lexdraft/internal/util/sets"
)

// ValidationResult reports order and capability findings for a built
// pipeline.
type ValidationResult struct {
	Errors   []string
	Warnings []string
	Valid    bool
}

// checkOrder scans a finalized order for conflicting pairs, RunAfter
// violations, and capability violations. It must run only once the order is
// fixed: capability satisfaction is order-dependent, and a requirement can
// be satisfied by any transform appearing earlier, regardless of phase.
func checkOrder(ordered []string, reg *plugin.Registry) []string {
	var findings []string

	position := make(map[string]int, len(ordered))
	for i, name := range ordered {
		position[name] = i
	}

	// Conflicting pairs both present. Conflicts are symmetric; report each
	// pair once.
	reported := sets.New[string]()
	for _, name := range ordered {
		m, _ := reg.Get(name)
		for _, other := range m.Conflicts {
			if _, present := position[other]; !present {
				continue
			}
			a, b := name, other
			if position[b] < position[a] {
				a, b = b, a
			}
			pair := a + "\x00" + b
			if reported.Has(pair) {
				continue
			}
			reported.Add(pair)
			findings = append(findings, fmt.Sprintf("transforms %s and %s conflict and cannot both be enabled", a, b))
		}
	}

	// RunAfter names appearing later than the transform itself.
	for _, name := range ordered {
		m, _ := reg.Get(name)
		for _, after := range m.RunAfter {
			pos, present := position[after]
			if present && pos > position[name] {
				findings = append(findings, fmt.Sprintf("%s must run after %s, but %s appears later in the order", name, after, after))
			}
		}
	}

	// Capability walk: accumulate provided capabilities left to right.
	provided := sets.New[string]()
	for _, name := range ordered {
		m, _ := reg.Get(name)
		for _, cap := range m.Requires {
			if !provided.Has(cap) {
				findings = append(findings, fmt.Sprintf("%s requires capability %s, not yet provided", name, cap))
			}
		}
		provided.AddAll(m.Provides...)
	}

	return findings
}
