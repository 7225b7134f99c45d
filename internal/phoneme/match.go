// Package phoneme implements the grapheme-to-phoneme lexicon lookup and
// the tri-valued matching of a target phoneme against transcript words.
package phoneme

import (
	"strings"

	"github.com/fluentpal/analysis-gateway/internal/transcript"
)

// Match is the tri-valued outcome of checking a target phoneme against
// a transcript. The third state carries real policy weight: an empty
// transcript is insufficient evidence, not evidence of absence, and
// several scoring rules treat it differently from a confirmed miss.
type Match int

const (
	// MatchUnknown means the evidence was insufficient to decide
	// (no words recognized)
	MatchUnknown Match = iota
	// MatchConfirmed means a recognized word contains the target phoneme
	MatchConfirmed
	// MatchAbsent means words were recognized and none contains the target
	MatchAbsent
)

// String returns the match state name
func (m Match) String() string {
	switch m {
	case MatchConfirmed:
		return "true"
	case MatchAbsent:
		return "false"
	default:
		return "unknown"
	}
}

// JSONValue renders the tri-state the way API clients expect:
// true, false, or null for unknown.
func (m Match) JSONValue() *bool {
	switch m {
	case MatchConfirmed:
		v := true
		return &v
	case MatchAbsent:
		v := false
		return &v
	default:
		return nil
	}
}

// Matcher checks transcripts for a target phoneme using a lexicon
type Matcher struct {
	lexicon *Lexicon
}

// NewMatcher creates a matcher backed by the given lexicon
func NewMatcher(lexicon *Lexicon) *Matcher {
	return &Matcher{lexicon: lexicon}
}

// MatchTarget expands each transcript word to its simplified phonemes,
// in transcript order, and stops at the first word containing the
// target. Words were heard but none carried the sound: MatchAbsent.
// Nothing was heard at all: MatchUnknown.
func (m *Matcher) MatchTarget(target string, words []transcript.Word) Match {
	if len(words) == 0 {
		return MatchUnknown
	}

	target = strings.ToLower(strings.TrimSpace(target))
	if target == "" {
		return MatchUnknown
	}

	for _, w := range words {
		for _, raw := range m.lexicon.Phonemes(w.Text) {
			if Simplify(raw) == target {
				return MatchConfirmed
			}
		}
	}
	return MatchAbsent
}
