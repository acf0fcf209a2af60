// Package fuzzy scores near-miss skill spellings with edit distance.
package fuzzy

import "unicode/utf8"

// DefaultThreshold is the similarity above which two tokens count as the same skill.
const DefaultThreshold = 0.85

// Distance computes the Levenshtein edit distance between a and b with unit
// costs, comparing runes.
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	// Single-row DP
	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[lb]
}

// Similarity returns 1 - Distance(a, b) / max(len(a), len(b)) in [0, 1].
// Two empty strings are identical and score 1.
func Similarity(a, b string) float64 {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1
	}
	return 1 - float64(Distance(a, b))/float64(longest)
}
