package store

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// fuzzy matches require the edit distance to stay under 40% of the longer string
const fuzzyThreshold = 0.4

// Filter returns the subset of tasks matching query, in original order.
// An empty query matches everything.
func Filter(tasks []Task, query string) []Task {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		out := make([]Task, len(tasks))
		copy(out, tasks)
		return out
	}
	var out []Task
	for _, t := range tasks {
		if Match(q, t.Description) {
			out = append(out, t)
		}
	}
	return out
}

// Match reports whether description matches the query, first by
// case-insensitive substring, then by per-word edit distance.
func Match(query, description string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	d := strings.ToLower(description)
	if strings.Contains(d, q) {
		return true
	}
	for _, word := range strings.Fields(d) {
		if fuzzyClose(q, word) {
			return true
		}
	}
	return false
}

// fuzzyClose compares in runes, matching how ComputeDistance counts, so
// accented descriptions don't get a looser cutoff than ASCII ones.
func fuzzyClose(a, b string) bool {
	maxlen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxlen {
		maxlen = n
	}
	if maxlen == 0 {
		return true
	}
	dist := levenshtein.ComputeDistance(a, b)
	return float64(dist)/float64(maxlen) < fuzzyThreshold
}
