package config

import (
	"fmt"

	"git.home.luguber.info/inful/lexdraft/internal/docmodel"
)

// LevelFormats holds the per-level numbering format templates.
//
// A nil entry means the level is not configured and the numbering engine
// renders a placeholder. A non-nil empty string is an explicitly empty
// format: the heading keeps its text with no numbering prefix. The two
// must never collapse into each other.
type LevelFormats [docmodel.MaxLevel]*string

// Get returns the format for a 1-based level and whether it is configured.
func (lf *LevelFormats) Get(level int) (string, bool) {
	if level < 1 || level > docmodel.MaxLevel {
		return "", false
	}
	p := lf[level-1]
	if p == nil {
		return "", false
	}
	return *p, true
}

// Set assigns the format for a 1-based level.
func (lf *LevelFormats) Set(level int, format string) {
	if level < 1 || level > docmodel.MaxLevel {
		return
	}
	f := format
	lf[level-1] = &f
}

// levelWords maps 1-based levels to their spelled-out key form.
var levelWords = [docmodel.MaxLevel]string{
	"one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
}

// levelKeys returns the accepted metadata key spellings for a level, in
// lookup order. Dash and underscore separators are both accepted, as are
// digit and spelled-out level names.
func levelKeys(level int) []string {
	word := levelWords[level-1]
	return []string{
		fmt.Sprintf("level-%d", level),
		fmt.Sprintf("level_%d", level),
		fmt.Sprintf("level-%s", word),
		fmt.Sprintf("level_%s", word),
	}
}

// LevelFormatsFromMetadata extracts level format configuration from parsed
// document metadata. Only string values configure a format; other value
// types leave the level unconfigured.
func LevelFormatsFromMetadata(fields map[string]any) LevelFormats {
	var lf LevelFormats
	if fields == nil {
		return lf
	}
	for level := 1; level <= docmodel.MaxLevel; level++ {
		for _, key := range levelKeys(level) {
			v, ok := fields[key]
			if !ok {
				continue
			}
			s, ok := v.(string)
			if !ok {
				continue
			}
			lf.Set(level, s)
			break
		}
	}
	return lf
}
