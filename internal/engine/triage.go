package engine

import (
	"context"

	"github.com/fluentpal/analysis-gateway/internal/audio"
	"github.com/fluentpal/analysis-gateway/internal/phoneme"
)

// TriageResult labels a clip fluent or stuttered without any exercise
// context, and names the likely problem sound when one can be found.
type TriageResult struct {
	IsStutter      bool    `json:"is_stutter"`
	StutterScore   float64 `json:"stutter_score"`
	Type           string  `json:"type"`
	ProblemPhoneme *string `json:"problem_phoneme"`
	Transcript     string  `json:"transcript"`
	ElapsedMs      int64   `json:"elapsed_ms"`
}

// AnalyzeTriage runs the general (non-exercise) analysis: the
// classifier decides fluent versus stuttered, and for stuttered clips
// the lowest-confidence transcript word, the one the recognizer
// struggled with, points at the problem phoneme.
func (e *Engine) AnalyzeTriage(ctx context.Context, clip *audio.Clip) (*TriageResult, error) {
	ev, err := e.gather(ctx, clip, true)
	if err != nil {
		return nil, err
	}

	isStutter := !ev.Verdict.IsFluent()

	stutterType := "Fluent"
	if isStutter {
		stutterType = ev.Verdict.Subtype()
	}

	var problem *string
	if isStutter {
		if culprit, ok := ev.Transcript.LowestConfidenceWord(); ok {
			if raw := e.lexicon.Phonemes(culprit.Text); len(raw) > 0 {
				simplified := phoneme.Simplify(raw[0])
				problem = &simplified
			}
		}
	}

	return &TriageResult{
		IsStutter:      isStutter,
		StutterScore:   ev.Verdict.Confidence,
		Type:           stutterType,
		ProblemPhoneme: problem,
		Transcript:     ev.Transcript.FullText,
	}, nil
}
