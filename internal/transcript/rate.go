package transcript

import "math"

// WordsPerMinute derives the speech rate from word timings: word count
// over the span from the first word's start to the last word's end,
// scaled to a minute and rounded to one decimal. Fewer than two words,
// or a non-positive span, yields 0 rather than an error.
func WordsPerMinute(words []Word) float64 {
	if len(words) < 2 {
		return 0
	}

	duration := words[len(words)-1].EndSec - words[0].StartSec
	if duration <= 0 {
		return 0
	}

	wpm := float64(len(words)) / duration * 60
	return math.Round(wpm*10) / 10
}
