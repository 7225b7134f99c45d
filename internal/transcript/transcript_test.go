package transcript

import (
	"math"
	"testing"
)

func wordsAt(texts []string, startSec, eachSec float64) []Word {
	words := make([]Word, len(texts))
	for i, text := range texts {
		words[i] = Word{
			Text:       text,
			StartSec:   startSec + float64(i)*eachSec,
			EndSec:     startSec + float64(i+1)*eachSec,
			Confidence: 0.9,
		}
	}
	return words
}

func TestWordsPerMinute(t *testing.T) {
	// 4 words across 2 seconds is 120 WPM
	words := wordsAt([]string{"the", "cat", "sat", "down"}, 0, 0.5)
	if wpm := WordsPerMinute(words); wpm != 120.0 {
		t.Errorf("Expected 120.0 WPM, got %f", wpm)
	}
}

func TestWordsPerMinute_SingleWord(t *testing.T) {
	words := wordsAt([]string{"hello"}, 0, 0.5)
	if wpm := WordsPerMinute(words); wpm != 0 {
		t.Errorf("Expected 0 WPM for a single word, got %f", wpm)
	}
}

func TestWordsPerMinute_Empty(t *testing.T) {
	if wpm := WordsPerMinute(nil); wpm != 0 {
		t.Errorf("Expected 0 WPM for no words, got %f", wpm)
	}
}

func TestWordsPerMinute_NonPositiveDuration(t *testing.T) {
	// Degenerate timings must yield 0, never a division error
	words := []Word{
		{Text: "a", StartSec: 1.0, EndSec: 1.0},
		{Text: "b", StartSec: 1.0, EndSec: 1.0},
	}
	if wpm := WordsPerMinute(words); wpm != 0 {
		t.Errorf("Expected 0 WPM for zero duration, got %f", wpm)
	}
}

func TestWordsPerMinute_Rounding(t *testing.T) {
	// 3 words over 1.1s = 163.636... rounds to 163.6
	words := []Word{
		{Text: "a", StartSec: 0.0, EndSec: 0.3},
		{Text: "b", StartSec: 0.4, EndSec: 0.7},
		{Text: "c", StartSec: 0.8, EndSec: 1.1},
	}
	wpm := WordsPerMinute(words)
	if math.Abs(wpm-163.6) > 1e-9 {
		t.Errorf("Expected 163.6 WPM, got %f", wpm)
	}
}

func TestContentOverlap_FullMatch(t *testing.T) {
	if got := ContentOverlap("the big dog", "The BIG dog runs"); got != 1.0 {
		t.Errorf("Expected overlap 1.0, got %f", got)
	}
}

func TestContentOverlap_Partial(t *testing.T) {
	got := ContentOverlap("the big red dog", "the dog")
	if math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Expected overlap 0.5, got %f", got)
	}
}

func TestContentOverlap_EmptyExpected(t *testing.T) {
	if got := ContentOverlap("", "anything at all"); got != 1.0 {
		t.Errorf("Expected overlap 1.0 for empty expected text, got %f", got)
	}
}

func TestContentMatches_Boundary(t *testing.T) {
	// Exactly half of the distinct target words is a pass
	if !ContentMatches("one two three four", "one two") {
		t.Error("Expected 50% overlap to pass")
	}
	if ContentMatches("one two three four", "one") {
		t.Error("Expected 25% overlap to fail")
	}
}

func TestMeanConfidence(t *testing.T) {
	tr := Transcription{Words: []Word{
		{Text: "a", Confidence: 0.8},
		{Text: "b", Confidence: 0.6},
	}}
	if got := tr.MeanConfidence(); math.Abs(got-0.7) > 1e-9 {
		t.Errorf("Expected mean confidence 0.7, got %f", got)
	}

	empty := Transcription{}
	if got := empty.MeanConfidence(); got != 0 {
		t.Errorf("Expected 0 for empty transcript, got %f", got)
	}
}

func TestLowestConfidenceWord(t *testing.T) {
	tr := Transcription{Words: []Word{
		{Text: "smooth", Confidence: 0.95},
		{Text: "s-s-snake", Confidence: 0.42},
		{Text: "slides", Confidence: 0.88},
	}}

	w, ok := tr.LowestConfidenceWord()
	if !ok {
		t.Fatal("Expected a word from a non-empty transcript")
	}
	if w.Text != "s-s-snake" {
		t.Errorf("Expected lowest-confidence word 's-s-snake', got '%s'", w.Text)
	}

	if _, ok := (Transcription{}).LowestConfidenceWord(); ok {
		t.Error("Expected ok=false for empty transcript")
	}
}
