package dsp

import (
	"math"

	"github.com/fluentpal/analysis-gateway/internal/audio"
)

// BreathResult reports whether a breath-length silence gap followed by
// renewed energy was found, and how loud the re-onset frame was.
type BreathResult struct {
	Detected       bool    `json:"breath_detected"`
	OnsetAmplitude float64 `json:"amplitude_onset"`
}

// BreathDetector finds a silence gap of at least MinSilence seconds that
// ends in renewed energy, the breath-then-start pattern the balloon
// exercise rewards.
type BreathDetector struct {
	SilenceThreshold float64 // RMS ceiling for a "silent" frame
	MinSilence       float64 // seconds of silence required
}

// Analyze scans the fine energy envelope left to right, accumulating
// consecutive silent frames. The first qualifying gap that ends with
// energy rising again wins; scanning stops there. A gap that runs to the
// end of the clip does not count: the breath must be followed by sound.
func (d BreathDetector) Analyze(clip *audio.Clip) BreathResult {
	if clip == nil || len(clip.Samples) == 0 || clip.SampleRate <= 0 {
		return BreathResult{}
	}

	env := rmsEnvelope(clip.Samples, fineFrameLength, fineHopLength)
	if len(env) == 0 {
		return BreathResult{}
	}
	frameDur := frameDuration(len(clip.Samples), clip.SampleRate, len(env))

	silentRun := 0
	for _, e := range env {
		if e < d.SilenceThreshold {
			silentRun++
			continue
		}
		if silentRun > 0 {
			if float64(silentRun)*frameDur >= d.MinSilence {
				return BreathResult{
					Detected:       true,
					OnsetAmplitude: math.Round(e*1000) / 1000,
				}
			}
			silentRun = 0
		}
	}

	return BreathResult{}
}
