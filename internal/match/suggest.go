package match

import "fmt"

// MinSimilarity is the lowest Similarity a candidate needs to be suggested.
const MinSimilarity = 0.5

// Closest returns the candidate most similar to name. Ties go to the earlier
// candidate. It reports false when no candidate reaches MinSimilarity or when
// name is itself a candidate.
func Closest(name string, candidates []string) (string, bool) {
	best, bestScore := "", 0.0

	for _, c := range candidates {
		if c == name {
			return "", false
		}

		if score := Similarity(name, c); score > bestScore {
			best, bestScore = c, score
		}
	}

	if bestScore < MinSimilarity {
		return "", false
	}

	return best, true
}

// Hint renders the suggestion for name as `did you mean "x"?`, or "" when
// there is none.
func Hint(name string, candidates []string) string {
	if best, ok := Closest(name, candidates); ok {
		return fmt.Sprintf("did you mean %q?", best)
	}

	return ""
}
