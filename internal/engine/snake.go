package engine

import (
	"context"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/fluentpal/analysis-gateway/internal/audio"
	"github.com/fluentpal/analysis-gateway/internal/phoneme"
)

// tierScale sets the reward economy per difficulty tier: the starting
// reward and the size of one violation penalty.
type tierScale struct {
	startReward float64
	penalty     float64
}

var tierScales = map[int]tierScale{
	1: {startReward: 10, penalty: 3},
	2: {startReward: 20, penalty: 5},
	3: {startReward: 30, penalty: 7},
}

// SnakeInput carries the sustained-phoneme exercise's form fields
type SnakeInput struct {
	TargetPhoneme string
	Tier          int
	SessionID     string
}

// SnakeResult is the sustained-phoneme verdict with its diagnostics
type SnakeResult struct {
	SessionID          string  `json:"sessionId"`
	IsStutter          bool    `json:"isStutter"`
	StutterType        string  `json:"stutterType"`
	Confidence         float64 `json:"confidence"`
	StarsAwarded       int     `json:"starsAwarded"`
	Reward             float64 `json:"reward"`
	Pass               bool    `json:"pass"`
	GamePass           bool    `json:"game_pass"`
	ClinicalPass       bool    `json:"clinical_pass"`
	PhonemeMatch       *bool   `json:"phoneme_match"`
	BlowDetected       bool    `json:"blow_detected"`
	VoicedDetected     bool    `json:"voiced_detected"`
	PitchedRatio       float64 `json:"pitched_ratio"`
	ZCRMean            float64 `json:"zcr_mean"`
	DurationSec        float64 `json:"duration_sec"`
	AmplitudeSustained bool    `json:"amplitude_sustained"`
	RepetitionDetected bool    `json:"repetition_detected"`
	Feedback           string  `json:"feedback"`
	ClassifierScore    float64 `json:"speech_prob"`
	Tier               int     `json:"tier"`
	InferenceTimeMs    int64   `json:"inferenceTimeMs"`
}

// AnalyzeSnake grades a sustained-phoneme attempt with deduction
// scoring. The attempt starts at 3 stars and the tier's full reward;
// each violated rule deducts in units of the tier penalty, in a fixed
// order, and both scores floor at 1. Passing means keeping 2 stars.
func (e *Engine) AnalyzeSnake(ctx context.Context, clip *audio.Clip, in SnakeInput) (*SnakeResult, error) {
	ev, err := e.gather(ctx, clip, true)
	if err != nil {
		return nil, err
	}

	tier := in.Tier
	scale, ok := tierScales[tier]
	if !ok {
		tier = 1
		scale = tierScales[tier]
	}

	// With no target phoneme there is nothing to match against, so the
	// content rule stays out of play entirely.
	hasTarget := strings.TrimSpace(in.TargetPhoneme) != ""
	match := phoneme.MatchUnknown
	if hasTarget {
		match = e.matcher.MatchTarget(in.TargetPhoneme, ev.Transcript.Words)
	}
	repetition := ev.Verdict.IndicatesRepetition()

	stars := 3
	reward := scale.startReward
	confidence := ev.Verdict.Confidence

	// Rule 1, continuity: the sound must be held without breaks
	if !ev.Sustain.Sustained {
		stars--
		reward -= scale.penalty
		confidence *= 0.8
	}

	// Rule 2, anti-blow: a voiced target with neither voicing nor a
	// confirmed phoneme is air, not speech. The forced-absent match
	// feeds rule 3 on purpose: faking speech is the critical failure.
	blowDetected := false
	if phoneme.IsVoicedTarget(in.TargetPhoneme) {
		speechLikely := ev.Voicing.VoicedDetected || match == phoneme.MatchConfirmed
		if !speechLikely {
			blowDetected = true
			stars--
			reward -= scale.penalty
			confidence *= 0.7
			match = phoneme.MatchAbsent
		}
	}

	// Rule 3, content: a confirmed wrong sound is the heaviest
	// deduction. Unverifiable evidence always dampens confidence, but
	// only caps the stars of a so-far-perfect attempt.
	if hasTarget {
		switch match {
		case phoneme.MatchAbsent:
			stars -= 2
			reward -= 2 * scale.penalty
			confidence = math.Min(confidence*0.75, 0.65)
		case phoneme.MatchUnknown:
			if stars == 3 {
				stars = 2
				reward -= 0.5 * scale.penalty
			}
			confidence = math.Min(confidence*0.85, 0.80)
		case phoneme.MatchConfirmed:
			confidence = math.Min(confidence+0.10, 0.95)
		}
	}

	// Rule 4, repetition: only charged when the sound was sustained, so
	// a broken attempt isn't penalized twice for one failure
	if repetition && ev.Sustain.Sustained {
		stars--
		reward -= scale.penalty
	}

	if stars < 1 {
		stars = 1
	}
	if reward < 1 {
		reward = 1
	}

	pass := stars >= 2
	gamePass := ev.Sustain.Sustained && !blowDetected
	clinicalPass := !repetition

	sessionID := in.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	stutterType := snakeStutterType(blowDetected, repetition, ev.Sustain.Sustained, match)

	return &SnakeResult{
		SessionID:          sessionID,
		IsStutter:          repetition,
		StutterType:        stutterType,
		Confidence:         round2(confidence),
		StarsAwarded:       stars,
		Reward:             reward,
		Pass:               pass,
		GamePass:           gamePass,
		ClinicalPass:       clinicalPass,
		PhonemeMatch:       match.JSONValue(),
		BlowDetected:       blowDetected,
		VoicedDetected:     ev.Voicing.VoicedDetected,
		PitchedRatio:       ev.Voicing.PitchedRatio,
		ZCRMean:            ev.Voicing.ZCRMean,
		DurationSec:        ev.Sustain.DurationSec,
		AmplitudeSustained: ev.Sustain.Sustained,
		RepetitionDetected: repetition,
		Feedback:           feedbackFor("snake", pass),
		ClassifierScore:    ev.Verdict.Confidence,
		Tier:               tier,
	}, nil
}

// snakeStutterType labels the dominant failure for analytics. Priority:
// blowing beats repetition beats a broken hold beats a wrong sound.
// It does not feed back into scoring.
func snakeStutterType(blow, repetition, sustained bool, match phoneme.Match) string {
	switch {
	case blow:
		return "Noise"
	case repetition:
		return "Repetition"
	case !sustained:
		return "Block"
	case match == phoneme.MatchAbsent:
		return "Mismatch"
	default:
		return "Fluent"
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
