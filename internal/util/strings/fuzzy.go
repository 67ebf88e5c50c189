// Package strings holds small string helpers shared by the registry and the
// command line tools.
package strings

import (
	"sort"
	"strings"
)

const (
	// DefaultMaxDistance is the default maximum edit distance to consider for fuzzy matching
	DefaultMaxDistance = 2
	// DefaultMaxSuggestions is the default maximum number of suggestions to return
	DefaultMaxSuggestions = 3
)

// FuzzyMatchOptions configures fuzzy matching behavior
type FuzzyMatchOptions struct {
	MaxDistance    int  // Maximum Levenshtein distance to consider (default: 2)
	MaxSuggestions int  // Maximum number of suggestions to return (default: 3)
	IgnoreCase     bool // Unit symbols are case-sensitive (mS vs ms), so the default is exact case
}

// suggestion represents a fuzzy match result with its edit distance
type suggestion struct {
	value    string
	distance int
}

// FindSimilar finds candidates within edit distance of target, closest
// first. Ties keep candidate order.
//
// Example:
//
//	FindSimilar("Nm", []string{"N", "nm", "Pa"}, nil)
//	// Returns: ["N", "nm"]
func FindSimilar(target string, candidates []string, opts *FuzzyMatchOptions) []string {
	o := FuzzyMatchOptions{
		MaxDistance:    DefaultMaxDistance,
		MaxSuggestions: DefaultMaxSuggestions,
	}
	if opts != nil {
		o.IgnoreCase = opts.IgnoreCase
		if opts.MaxDistance > 0 {
			o.MaxDistance = opts.MaxDistance
		}
		if opts.MaxSuggestions > 0 {
			o.MaxSuggestions = opts.MaxSuggestions
		}
	}

	targetCmp := target
	if o.IgnoreCase {
		targetCmp = strings.ToLower(target)
	}

	var suggestions []suggestion
	for _, candidate := range candidates {
		candidateCmp := candidate
		if o.IgnoreCase {
			candidateCmp = strings.ToLower(candidate)
		}

		dist := LevenshteinDistance(targetCmp, candidateCmp)
		if dist <= o.MaxDistance {
			suggestions = append(suggestions, suggestion{value: candidate, distance: dist})
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].distance < suggestions[j].distance
	})

	result := make([]string, 0, o.MaxSuggestions)
	for i := 0; i < len(suggestions) && i < o.MaxSuggestions; i++ {
		result = append(result, suggestions[i].value)
	}
	return result
}

// LevenshteinDistance calculates the minimum number of single-byte edits
// (insertions, deletions, or substitutions) turning s1 into s2.
//
// Example:
//
//	LevenshteinDistance("kitten", "sitting") // Returns: 3
func LevenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(s2)]
}
