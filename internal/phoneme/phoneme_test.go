package phoneme

import (
	"strings"
	"testing"

	"github.com/fluentpal/analysis-gateway/internal/transcript"
)

func testLexicon() *Lexicon {
	return NewLexicon(map[string][]string{
		"moon":   {"M", "UW1", "N"},
		"snake":  {"S", "N", "EY1", "K"},
		"sun":    {"S", "AH1", "N"},
		"see":    {"S", "IY1"},
		"lemon":  {"L", "EH1", "M", "AH0", "N"},
		"turtle": {"T", "ER1", "T", "AH0", "L"},
	})
}

func wordsFor(texts ...string) []transcript.Word {
	words := make([]transcript.Word, len(texts))
	for i, text := range texts {
		words[i] = transcript.Word{Text: text, Confidence: 0.9}
	}
	return words
}

func TestSimplify(t *testing.T) {
	cases := map[string]string{
		"AH0": "u",
		"IY1": "ee",
		"UW1": "oo",
		"M":   "m",
		"ZH":  "zh",
		"EY2": "a",
		"QX":  "qx", // unmapped passes through lower-cased
	}
	for raw, want := range cases {
		if got := Simplify(raw); got != want {
			t.Errorf("Simplify(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestIsVoicedTarget(t *testing.T) {
	for _, target := range []string{"m", "a", "oo", "z", "NG", " r "} {
		if !IsVoicedTarget(target) {
			t.Errorf("Expected %q to be a voiced target", target)
		}
	}
	for _, target := range []string{"s", "sh", "t", "f", "h", ""} {
		if IsVoicedTarget(target) {
			t.Errorf("Expected %q to not be a voiced target", target)
		}
	}
}

func TestMatchTarget_Confirmed(t *testing.T) {
	m := NewMatcher(testLexicon())

	// "moon" expands to m-oo-n; target "m" is present
	if got := m.MatchTarget("m", wordsFor("moon")); got != MatchConfirmed {
		t.Errorf("Expected MatchConfirmed, got %v", got)
	}

	// Case-insensitive target
	if got := m.MatchTarget("M", wordsFor("moon")); got != MatchConfirmed {
		t.Errorf("Expected MatchConfirmed for uppercase target, got %v", got)
	}
}

func TestMatchTarget_Absent(t *testing.T) {
	m := NewMatcher(testLexicon())

	// "sun" has no "l" sound: words were heard, target was not
	if got := m.MatchTarget("l", wordsFor("sun")); got != MatchAbsent {
		t.Errorf("Expected MatchAbsent, got %v", got)
	}
}

func TestMatchTarget_UnknownOnEmptyTranscript(t *testing.T) {
	m := NewMatcher(testLexicon())

	// Absence of transcription is not evidence of absence, for any target
	for _, target := range []string{"m", "s", "ee", "zz"} {
		if got := m.MatchTarget(target, nil); got != MatchUnknown {
			t.Errorf("Expected MatchUnknown for empty transcript and target %q, got %v", target, got)
		}
	}
}

func TestMatchTarget_StopsAtFirstHit(t *testing.T) {
	m := NewMatcher(testLexicon())

	// Both words contain "s"; first-hit semantics still report confirmed
	if got := m.MatchTarget("s", wordsFor("snake", "sun")); got != MatchConfirmed {
		t.Errorf("Expected MatchConfirmed, got %v", got)
	}
}

func TestMatchTarget_UnknownWordsContributeNothing(t *testing.T) {
	m := NewMatcher(testLexicon())

	// A word outside the lexicon cannot confirm, and heard words that
	// don't match mean absent
	if got := m.MatchTarget("m", wordsFor("xyzzy")); got != MatchAbsent {
		t.Errorf("Expected MatchAbsent for out-of-lexicon word, got %v", got)
	}
}

func TestMatchTarget_StripsPunctuation(t *testing.T) {
	m := NewMatcher(testLexicon())

	if got := m.MatchTarget("m", wordsFor("Moon.")); got != MatchConfirmed {
		t.Errorf("Expected MatchConfirmed for punctuated word, got %v", got)
	}
}

func TestMatchJSONValue(t *testing.T) {
	if v := MatchConfirmed.JSONValue(); v == nil || !*v {
		t.Error("Expected MatchConfirmed to serialize as true")
	}
	if v := MatchAbsent.JSONValue(); v == nil || *v {
		t.Error("Expected MatchAbsent to serialize as false")
	}
	if v := MatchUnknown.JSONValue(); v != nil {
		t.Error("Expected MatchUnknown to serialize as null")
	}
}

func TestParseLexicon(t *testing.T) {
	dict := `;;; comment line
MOON  M UW1 N
MOON(2)  M UW0 N
SNAKE  S N EY1 K

`
	lex, err := ParseLexicon(strings.NewReader(dict))
	if err != nil {
		t.Fatalf("ParseLexicon() failed: %v", err)
	}

	if lex.Size() != 2 {
		t.Errorf("Expected 2 entries (alternate dropped), got %d", lex.Size())
	}

	phonemes := lex.Phonemes("moon")
	if len(phonemes) != 3 || phonemes[0] != "M" || phonemes[1] != "UW1" {
		t.Errorf("Unexpected phonemes for 'moon': %v", phonemes)
	}

	if lex.Phonemes("absent") != nil {
		t.Error("Expected nil for a word not in the lexicon")
	}
}
