// ABOUTME: Thin wrapper over sahilm/fuzzy for minibuffer completion
// ABOUTME: Ranks command and register names against typed input

package fuzzy

import "github.com/sahilm/fuzzy"

// Match is a single completion candidate.
type Match struct {
	Str   string
	Index int
	Score int
}

// Find returns the items matching pattern, best first. An empty pattern
// matches every item in its original order.
func Find(pattern string, items []string) []Match {
	if pattern == "" {
		out := make([]Match, len(items))
		for i, s := range items {
			out[i] = Match{Str: s, Index: i}
		}
		return out
	}
	results := fuzzy.Find(pattern, items)
	matches := make([]Match, len(results))
	for i, r := range results {
		matches[i] = Match{Str: r.Str, Index: r.Index, Score: r.Score}
	}
	return matches
}

// Strings returns only the matched strings of Find, best first.
func Strings(pattern string, items []string) []string {
	matches := Find(pattern, items)
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Str
	}
	return out
}
