package suggest

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Closest returns the candidate nearest to input by edit distance, provided
// the distance is within a limit scaled by the candidate's length.
func Closest(input string, candidates []string) (string, bool) {
	in := normalise(input)
	if in == "" {
		return "", false
	}

	type scored struct {
		value string
		dist  int
	}
	matches := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		norm := normalise(c)
		if norm == "" {
			continue
		}
		dist := levenshtein.ComputeDistance(in, norm)
		if dist > limit(len(norm)) {
			continue
		}
		matches = append(matches, scored{value: c, dist: dist})
	}
	if len(matches) == 0 {
		return "", false
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].dist == matches[j].dist {
			return matches[i].value < matches[j].value
		}
		return matches[i].dist < matches[j].dist
	})
	return matches[0].value, true
}

func limit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

func normalise(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
