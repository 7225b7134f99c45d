package phoneme

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Lexicon is a read-only grapheme-to-phoneme dictionary in CMUdict
// format: one entry per line, word followed by its ARPAbet phonemes.
// It is loaded once at startup and shared across requests; lookups
// never mutate it.
type Lexicon struct {
	entries map[string][]string
}

// LoadLexicon reads a CMUdict-format dictionary file
func LoadLexicon(path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open lexicon: %w", err)
	}
	defer f.Close()

	lex, err := ParseLexicon(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse lexicon %s: %w", path, err)
	}
	return lex, nil
}

// ParseLexicon reads CMUdict-format entries from r. Comment lines
// (";;;") are skipped. Alternate pronunciations like "word(2)" are
// dropped in favor of the primary entry.
func ParseLexicon(r io.Reader) (*Lexicon, error) {
	entries := make(map[string][]string)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";;;") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		word := strings.ToLower(fields[0])
		if strings.Contains(word, "(") {
			continue // alternate pronunciation
		}
		entries[word] = fields[1:]
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return &Lexicon{entries: entries}, nil
}

// NewLexicon builds a lexicon directly from a word->phonemes map,
// useful for tests and embedded fallbacks.
func NewLexicon(entries map[string][]string) *Lexicon {
	copied := make(map[string][]string, len(entries))
	for w, p := range entries {
		copied[strings.ToLower(w)] = p
	}
	return &Lexicon{entries: copied}
}

// Phonemes returns the ordered ARPAbet phoneme sequence for a word, or
// nil when the word is not in the dictionary. Surrounding punctuation
// from the recognizer is stripped before lookup.
func (l *Lexicon) Phonemes(word string) []string {
	cleaned := strings.ToLower(strings.Trim(word, ".,!?;:'\""))
	return l.entries[cleaned]
}

// Size returns the number of dictionary entries
func (l *Lexicon) Size() int {
	return len(l.entries)
}
