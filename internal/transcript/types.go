// Package transcript holds the transcription evidence types and the
// derived lexical measurements (speech rate, content overlap).
package transcript

// Word is one recognized word with its timing and confidence
type Word struct {
	Text       string  `json:"word"`
	StartSec   float64 `json:"start"`
	EndSec     float64 `json:"end"`
	Confidence float64 `json:"confidence"`
}

// Transcription is the full output of the transcription service for one
// clip. An empty word list is a valid, meaningful state (no speech
// detected), not an error.
type Transcription struct {
	FullText string `json:"transcript"`
	Words    []Word `json:"words"`
}

// Empty reports whether no speech was recognized
func (t Transcription) Empty() bool {
	return len(t.Words) == 0
}

// WordCount returns the number of recognized words
func (t Transcription) WordCount() int {
	return len(t.Words)
}

// MeanConfidence returns the average per-word confidence, 0 when empty
func (t Transcription) MeanConfidence() float64 {
	if len(t.Words) == 0 {
		return 0
	}
	var sum float64
	for _, w := range t.Words {
		sum += w.Confidence
	}
	return sum / float64(len(t.Words))
}

// LowestConfidenceWord returns the word the recognizer was least sure
// about, often the disfluent one. ok is false for an empty transcript.
func (t Transcription) LowestConfidenceWord() (Word, bool) {
	if len(t.Words) == 0 {
		return Word{}, false
	}
	lowest := t.Words[0]
	for _, w := range t.Words[1:] {
		if w.Confidence < lowest.Confidence {
			lowest = w
		}
	}
	return lowest, true
}
