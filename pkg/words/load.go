package words

import "strings"

// Load converts raw strings into Words, preserving order and duplicates.
// Empty and whitespace-only entries are dropped rather than rejected.
func Load(raw []string) []Word {
	out := make([]Word, 0, len(raw))
	for _, s := range raw {
		if strings.TrimSpace(s) == "" {
			continue
		}
		w, err := New(s)
		if err != nil {
			continue
		}
		out = append(out, w)
	}
	return out
}
