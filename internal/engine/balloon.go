package engine

import (
	"context"

	"github.com/fluentpal/analysis-gateway/internal/audio"
)

// hardAttackConfidenceMin is the classifier confidence above which any
// non-fluent label counts as a hard attack, even without a block label.
const hardAttackConfidenceMin = 0.9

// BalloonResult is the breath-then-onset verdict. The two pass bits are
// reported independently: the gentle breath is the game mechanic, the
// soft onset is the clinical target.
type BalloonResult struct {
	BreathDetected     bool    `json:"breath_detected"`
	AmplitudeOnset     float64 `json:"amplitude_onset"`
	GamePass           bool    `json:"game_pass"`
	HardAttackDetected bool    `json:"hard_attack_detected"`
	ClinicalPass       bool    `json:"clinical_pass"`
	Confidence         float64 `json:"confidence"`
	Feedback           string  `json:"feedback"`
	ElapsedMs          int64   `json:"elapsed_ms"`
}

// AnalyzeBalloon grades a breath-then-onset attempt: a qualifying
// silence gap before the sound, and no hard glottal attack on the onset.
func (e *Engine) AnalyzeBalloon(ctx context.Context, clip *audio.Clip) (*BalloonResult, error) {
	ev, err := e.gather(ctx, clip, false)
	if err != nil {
		return nil, err
	}

	hardAttack := ev.Verdict.IndicatesBlock() ||
		(ev.Verdict.Confidence > hardAttackConfidenceMin && !ev.Verdict.IsFluent())

	gamePass := ev.Breath.Detected
	clinicalPass := !hardAttack

	return &BalloonResult{
		BreathDetected:     ev.Breath.Detected,
		AmplitudeOnset:     ev.Breath.OnsetAmplitude,
		GamePass:           gamePass,
		HardAttackDetected: hardAttack,
		ClinicalPass:       clinicalPass,
		Confidence:         ev.Verdict.Confidence,
		Feedback:           feedbackFor("balloon", gamePass && clinicalPass),
	}, nil
}
