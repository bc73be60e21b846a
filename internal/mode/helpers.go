package mode

import (
	"sort"
	"strings"
)

func splitLines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

// sortedKeys orders bindings for display: single characters first in byte
// order, then named keys and chords alphabetically.
func sortedKeys(m map[Key]*Action) []Key {
	keys := make([]Key, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		si, sj := string(keys[i]), string(keys[j])
		li, lj := len([]rune(si)) == 1, len([]rune(sj)) == 1
		if li != lj {
			return li
		}
		return si < sj
	})
	return keys
}
