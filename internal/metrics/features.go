package metrics

import (
	"strings"
	"unicode/utf8"
)

// Features holds basic local text features derived from an input string.
type Features struct {
	Bytes int `json:"bytes"`
	Runes int `json:"runes"`
	Words int `json:"words"`
	Lines int `json:"lines"`
}

// CountFeatures computes byte, rune, word, and line counts for s.
// Words split on Unicode whitespace; lines are 0 for "" and otherwise 1 + count of '\n'.
func CountFeatures(s string) Features {
	f := Features{
		Bytes: len(s),
		Runes: utf8.RuneCountInString(s),
		Words: len(strings.Fields(s)),
	}
	if s != "" {
		f.Lines = 1 + strings.Count(s, "\n")
	}
	return f
}

// LineRunes returns the rune length of each line, in order.
func LineRunes(lines []string) []int {
	out := make([]int, len(lines))
	for i, l := range lines {
		out[i] = utf8.RuneCountInString(l)
	}
	return out
}

// AsMap renders f for event payloads.
func (f Features) AsMap() map[string]any {
	return map[string]any{
		"bytes": f.Bytes,
		"runes": f.Runes,
		"words": f.Words,
		"lines": f.Lines,
	}
}
