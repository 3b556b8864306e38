package pipeline

import (
	"strings"

	lexerrors "git.home.luguber.info/inful/lexdraft/internal/errors"
	"git.home.luguber.info/inful/lexdraft/internal/plugin"
)

// topoSort orders the transforms of one phase so every RunBefore/RunAfter
// edge restricted to the given set is respected. Edges referencing names
// outside the set are ignored: cross-phase ordering is already guaranteed
// by phase assignment, not by this sort.
//
// Ties (no edge between two transforms) are broken by input order, so the
// result is deterministic for a given input slice.
func topoSort(names []string, reg *plugin.Registry) ([]string, error) {
	if len(names) <= 1 {
		return names, nil
	}

	index := make(map[string]int, len(names))
	for i, name := range names {
		index[name] = i
	}

	// adjacency[a] holds the names that must come after a.
	adjacency := make(map[string][]string, len(names))
	indegree := make(map[string]int, len(names))
	for _, name := range names {
		indegree[name] = 0
	}

	addEdge := func(before, after string) {
		adjacency[before] = append(adjacency[before], after)
		indegree[after]++
	}

	for _, name := range names {
		m, _ := reg.Get(name)
		for _, b := range m.RunBefore {
			if _, ok := index[b]; ok {
				addEdge(name, b)
			}
		}
		for _, a := range m.RunAfter {
			if _, ok := index[a]; ok {
				addEdge(a, name)
			}
		}
	}

	ordered := make([]string, 0, len(names))
	placed := make(map[string]bool, len(names))
	for len(ordered) < len(names) {
		// Pick the ready transform that appeared earliest in the input.
		next := ""
		nextIdx := -1
		for _, name := range names {
			if placed[name] || indegree[name] != 0 {
				continue
			}
			if nextIdx == -1 || index[name] < nextIdx {
				next = name
				nextIdx = index[name]
			}
		}
		if nextIdx == -1 {
			var remaining []string
			for _, name := range names {
				if !placed[name] {
					remaining = append(remaining, name)
				}
			}
			return nil, lexerrors.ConfigErrorf("ordering cycle among transforms: %s", strings.Join(remaining, ", "))
		}
		placed[next] = true
		ordered = append(ordered, next)
		for _, after := range adjacency[next] {
			indegree[after]--
		}
	}
	return ordered, nil
}
