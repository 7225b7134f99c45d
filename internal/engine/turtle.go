package engine

import (
	"context"

	"github.com/fluentpal/analysis-gateway/internal/audio"
	"github.com/fluentpal/analysis-gateway/internal/transcript"
)

// TurtleInput carries the paced-reading exercise's form fields
type TurtleInput struct {
	ExpectedText string // sentence shown on screen; empty skips the content check
}

// TurtleResult is the paced-reading verdict
type TurtleResult struct {
	WPM             float64 `json:"wpm"`
	GamePass        bool    `json:"game_pass"`
	StutterDetected bool    `json:"stutter_detected"`
	BlockDetected   bool    `json:"block_detected"`
	ClinicalPass    bool    `json:"clinical_pass"`
	ContentPass     bool    `json:"content_pass"`
	Confidence      float64 `json:"confidence"`
	Transcript      string  `json:"transcript"`
	Feedback        string  `json:"feedback"`
	ElapsedMs       int64   `json:"elapsed_ms"`
}

// AnalyzeTurtle grades a paced-reading attempt. The turtle moves only
// when the child read the right sentence, inside the pacing band, with
// no confident block.
func (e *Engine) AnalyzeTurtle(ctx context.Context, clip *audio.Clip, in TurtleInput) (*TurtleResult, error) {
	ev, err := e.gather(ctx, clip, true)
	if err != nil {
		return nil, err
	}

	blockDetected := ev.Verdict.IndicatesBlock() && ev.Verdict.Confidence > e.blockConfidenceMin
	wpm := transcript.WordsPerMinute(ev.Transcript.Words)

	contentPass := true
	if in.ExpectedText != "" && ev.Transcript.FullText != "" {
		contentPass = transcript.ContentMatches(in.ExpectedText, ev.Transcript.FullText)
	}

	gamePass := wpm >= e.minWPM && wpm <= e.maxWPM
	clinicalPass := !blockDetected

	return &TurtleResult{
		WPM:             wpm,
		GamePass:        gamePass,
		StutterDetected: !ev.Verdict.IsFluent(),
		BlockDetected:   blockDetected,
		ClinicalPass:    clinicalPass,
		ContentPass:     contentPass,
		Confidence:      ev.Verdict.Confidence,
		Transcript:      ev.Transcript.FullText,
		Feedback:        e.turtleFeedback(contentPass, wpm, blockDetected),
	}, nil
}

// turtleFeedback walks the coaching priority list top to bottom: wrong
// content first, then pace problems, then audibility, then blocks.
func (e *Engine) turtleFeedback(contentPass bool, wpm float64, blockDetected bool) string {
	switch {
	case !contentPass:
		return "Oops! That didn't sound quite right. Read the sentence on the screen!"
	case wpm > e.maxWPM:
		return "Whoa! Too fast for a turtle. Try to slow down and say it again."
	case wpm < e.minWPM && wpm > 0:
		return "A bit too sleepy! Try to speed up just a little bit."
	case wpm == 0:
		return "I couldn't hear you clearly. Try again?"
	case blockDetected:
		return "Try to keep your speech smooth and flowing!"
	default:
		return "Perfect turtle pace! Watch me go!"
	}
}
