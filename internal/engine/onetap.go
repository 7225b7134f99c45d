package engine

import (
	"context"
	"strings"

	"github.com/fluentpal/analysis-gateway/internal/audio"
)

// Expected-duration model for a single word: a fixed per-syllable cost
// on top of a baseline, with a generous validity band around it.
const (
	syllableSec         = 0.15
	durationBaselineSec = 0.5
	durationBandLow     = 0.5
	durationBandHigh    = 2.5
	defaultSyllables    = 2
)

// OneTapInput carries the single-word exercise's form fields
type OneTapInput struct {
	TargetWord  string
	Syllables   []string
	DurationSec float64 // client-measured recording duration
}

// OneTapResult is the single-clean-word verdict
type OneTapResult struct {
	RepetitionDetected    bool    `json:"repetition_detected"`
	RepetitionProbability float64 `json:"repetition_probability"`
	Confidence            float64 `json:"confidence"`
	WordCount             int     `json:"word_count"`
	Transcript            string  `json:"transcript"`
	DurationValid         bool    `json:"duration_valid"`
	ExpectedDuration      float64 `json:"expected_duration"`
	ClassifierLabel       string  `json:"wav2vec_label"`
	ClassifierConfidence  float64 `json:"wav2vec_confidence"`
	ElapsedMs             int64   `json:"elapsed_ms"`
}

// AnalyzeOneTap grades a single-word attempt with an ordered guard
// chain: a multi-word transcript is a repetition no matter what else
// the evidence says; a clean single word in the duration band passes;
// overlong or non-fluent attempts fall through to repetition; an
// ambiguous attempt (no transcript, fluent label) gets a weak pass.
func (e *Engine) AnalyzeOneTap(ctx context.Context, clip *audio.Clip, in OneTapInput) (*OneTapResult, error) {
	ev, err := e.gather(ctx, clip, true)
	if err != nil {
		return nil, err
	}

	wordCount := countWords(ev.Transcript.FullText)

	syllableCount := len(in.Syllables)
	if syllableCount == 0 {
		syllableCount = defaultSyllables
	}
	expected := float64(syllableCount)*syllableSec + durationBaselineSec
	minDuration := expected * durationBandLow
	maxDuration := expected * durationBandHigh
	durationValid := in.DurationSec >= minDuration && in.DurationSec <= maxDuration

	isFluent := ev.Verdict.IsFluent()

	var repetition bool
	var probability float64
	switch {
	case wordCount > 1:
		repetition, probability = true, 0.9
	case wordCount == 1 && durationValid && isFluent:
		repetition, probability = false, 0.1
	case in.DurationSec > maxDuration:
		repetition, probability = true, 0.7
	case !isFluent:
		repetition, probability = true, ev.Verdict.Confidence
	default:
		repetition, probability = false, 0.3
	}

	confidence := ev.Transcript.MeanConfidence()
	if ev.Verdict.Confidence > confidence {
		confidence = ev.Verdict.Confidence
	}

	return &OneTapResult{
		RepetitionDetected:    repetition,
		RepetitionProbability: probability,
		Confidence:            confidence,
		WordCount:             wordCount,
		Transcript:            strings.TrimSpace(ev.Transcript.FullText),
		DurationValid:         durationValid,
		ExpectedDuration:      expected,
		ClassifierLabel:       ev.Verdict.Label,
		ClassifierConfidence:  ev.Verdict.Confidence,
	}, nil
}

func countWords(text string) int {
	return len(strings.Fields(strings.ToLower(text)))
}
