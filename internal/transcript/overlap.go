package transcript

import "strings"

// ContentOverlap returns the fraction of the expected sentence's
// distinct words that appear anywhere in the spoken text,
// case-insensitive. An empty expected sentence returns 1: there is
// nothing to miss.
func ContentOverlap(expected, spoken string) float64 {
	target := distinctWords(expected)
	if len(target) == 0 {
		return 1
	}

	said := distinctWords(spoken)
	matched := 0
	for w := range target {
		if said[w] {
			matched++
		}
	}
	return float64(matched) / float64(len(target))
}

// ContentMatches reports whether at least half of the expected
// sentence's distinct words were spoken, the pass bar for the
// paced-reading exercise.
func ContentMatches(expected, spoken string) bool {
	return ContentOverlap(expected, spoken) >= 0.5
}

func distinctWords(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		set[w] = true
	}
	return set
}
