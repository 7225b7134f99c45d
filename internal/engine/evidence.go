// Package engine fuses the three evidence streams (acoustic classifier,
// transcript, DSP measurements) into per-exercise verdicts.
package engine

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/fluentpal/analysis-gateway/internal/audio"
	"github.com/fluentpal/analysis-gateway/internal/classifier"
	"github.com/fluentpal/analysis-gateway/internal/config"
	"github.com/fluentpal/analysis-gateway/internal/dsp"
	"github.com/fluentpal/analysis-gateway/internal/phoneme"
	"github.com/fluentpal/analysis-gateway/internal/stt"
	"github.com/fluentpal/analysis-gateway/internal/transcript"
)

// ErrClassifierUnavailable marks analyses that failed because the
// classifier, the one evidence source no exercise can proceed without,
// could not be reached.
var ErrClassifierUnavailable = errors.New("classifier evidence unavailable")

// Engine is the read-only analysis context shared across requests. It
// is constructed once at startup and never mutated afterwards; each
// request brings its own clip and form inputs.
type Engine struct {
	classifier  classifier.Classifier
	transcriber stt.Transcriber
	lexicon     *phoneme.Lexicon
	matcher     *phoneme.Matcher

	sustain dsp.SustainAnalyzer
	breath  dsp.BreathDetector
	voicing dsp.VoicingAnalyzer

	minWPM             float64
	maxWPM             float64
	blockConfidenceMin float64
}

// New builds the engine from config and the startup-loaded resources
func New(cfg *config.Config, lex *phoneme.Lexicon, cls classifier.Classifier, tr stt.Transcriber) *Engine {
	return &Engine{
		classifier:  cls,
		transcriber: tr,
		lexicon:     lex,
		matcher:     phoneme.NewMatcher(lex),
		sustain: dsp.SustainAnalyzer{
			Threshold:   cfg.AmplitudeThreshold,
			MinDuration: cfg.MinSustainSec,
		},
		breath: dsp.BreathDetector{
			SilenceThreshold: cfg.SilenceThreshold,
			MinSilence:       cfg.MinSilenceSec,
		},
		voicing: dsp.VoicingAnalyzer{
			PitchedRatioMin:   cfg.PitchedRatioMin,
			NoiseZCRThreshold: cfg.NoiseZCRThreshold,
		},
		minWPM:             cfg.TurtleMinWPM,
		maxWPM:             cfg.TurtleMaxWPM,
		blockConfidenceMin: cfg.BlockConfidenceMin,
	}
}

// Evidence is the joined output of all evidence sources for one clip.
// The fusion rules only run once every field is populated.
type Evidence struct {
	Verdict    classifier.Verdict
	Transcript transcript.Transcription
	Sustain    dsp.SustainResult
	Breath     dsp.BreathResult
	Voicing    dsp.VoicingResult
}

// gather runs the evidence sources concurrently and blocks until all
// have returned. The classifier is required evidence: its failure fails
// the request. Transcription degrades to an empty transcript. The DSP
// analyzers never fail; they fall back to their conservative defaults.
func (e *Engine) gather(ctx context.Context, clip *audio.Clip, withTranscript bool) (*Evidence, error) {
	ev := &Evidence{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		verdict, err := e.classifier.Classify(gctx, clip.Path())
		if err != nil {
			return fmt.Errorf("%w: %v", ErrClassifierUnavailable, err)
		}
		ev.Verdict = verdict
		return nil
	})

	if withTranscript {
		g.Go(func() error {
			ev.Transcript = stt.SafeTranscribe(gctx, e.transcriber, clip.Path())
			return nil
		})
	}

	g.Go(func() error {
		ev.Sustain = e.sustain.Analyze(clip)
		ev.Breath = e.breath.Analyze(clip)
		ev.Voicing = e.voicing.Analyze(clip)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ev, nil
}
