package dsp

import (
	"math"

	"github.com/fluentpal/analysis-gateway/internal/audio"
)

// trimTopDB is how far below the loudest frame audio must fall to be
// trimmed as lead-in/lead-out silence.
const trimTopDB = 30.0

// SustainResult reports the longest continuous loud segment of a clip
type SustainResult struct {
	DurationSec float64 `json:"duration_sec"`
	Sustained   bool    `json:"amplitude_sustained"`
}

// SustainAnalyzer measures whether a clip holds a sound continuously,
// used by the sustained-phoneme exercise.
type SustainAnalyzer struct {
	Threshold   float64 // RMS floor for an "active" frame
	MinDuration float64 // seconds of continuous activity required
}

// Analyze trims surrounding silence, frames the energy envelope, and
// measures the longest run of consecutive active frames. Any degenerate
// input yields the fail-safe zero result, never an error: a DSP fault
// must not read as a passing attempt.
func (a SustainAnalyzer) Analyze(clip *audio.Clip) SustainResult {
	if clip == nil || len(clip.Samples) == 0 || clip.SampleRate <= 0 {
		return SustainResult{}
	}

	trimmed := trimSilence(clip.Samples, trimTopDB)
	env := rmsEnvelope(trimmed, coarseFrameLength, coarseHopLength)
	if len(env) == 0 {
		return SustainResult{}
	}
	frameDur := frameDuration(len(trimmed), clip.SampleRate, len(env))

	run := 0
	maxRun := 0
	for _, e := range env {
		if e > a.Threshold {
			run++
			if run > maxRun {
				maxRun = run
			}
		} else {
			run = 0
		}
	}

	duration := float64(maxRun) * frameDur
	return SustainResult{
		DurationSec: math.Round(duration*100) / 100,
		Sustained:   duration >= a.MinDuration,
	}
}
