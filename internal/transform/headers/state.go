// Package headers implements the heading-related transforms: structure
// normalization, the hierarchical section numbering engine, and the plain
// (unnumbered) alternative.
package headers

import (
	"git.home.luguber.info/inful/lexdraft/internal/docmodel"
)

// State holds the per-level section counters for one document pass.
//
// Ownership is exclusive to the numbering engine for the duration of a
// single run: a fresh State is created per pass and never aliased or
// reused across runs.
type State struct {
	counters [docmodel.MaxLevel]int
}

// Visit records a heading at the given 1-based level: the level's counter
// increments and, unless noReset is set, all deeper counters reset to 0.
// Under noReset, deeper counters keep incrementing monotonically across
// sibling groups.
func (s *State) Visit(level int, noReset bool) {
	if level < 1 {
		level = 1
	}
	if level > docmodel.MaxLevel {
		level = docmodel.MaxLevel
	}
	s.counters[level-1]++
	if noReset {
		return
	}
	for i := level; i < docmodel.MaxLevel; i++ {
		s.counters[i] = 0
	}
}

// Counter returns the current value of the counter at a 1-based level.
func (s *State) Counter(level int) int {
	if level < 1 || level > docmodel.MaxLevel {
		return 0
	}
	return s.counters[level-1]
}
