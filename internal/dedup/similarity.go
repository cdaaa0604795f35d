package dedup

import "strings"

// textSimilarity is the classic Ratcliff/Obershelp-style ratio: twice
// the longest-common-subsequence length over the combined length of
// both (lowercased) strings, in [0, 1].
//
// No library in the retrieved corpus implements this ratio (see
// SPEC_FULL.md section 9 for why github.com/sahilm/fuzzy, the
// one fuzzy-matching dependency in the pack, doesn't fit), so it is
// hand-rolled here as a straightforward dynamic-programming LCS.
func textSimilarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if a == "" && b == "" {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	lcs := lcsLength(a, b)
	return 2 * float64(lcs) / float64(len(a)+len(b))
}

// lcsLength computes the longest common subsequence length between a
// and b using the standard O(len(a)*len(b)) dynamic program, operated
// over bytes (descriptions are natural-language text; byte-wise LCS is
// sufficient for the similarity ratio's purpose).
func lcsLength(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
