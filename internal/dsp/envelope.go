package dsp

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Frame geometry for the energy envelope. The coarse geometry matches
// the tuning of the sustain analyzer; the fine geometry gives the breath
// detector enough resolution to catch a 0.3 s gap.
const (
	coarseFrameLength = 2048
	coarseHopLength   = 512
	fineFrameLength   = 1024
	fineHopLength     = 256
)

// rmsEnvelope computes the per-frame root-mean-square energy of the
// waveform. Frames start every hopLength samples; the trailing partial
// frame is included so short clips still produce at least one value.
func rmsEnvelope(samples []float64, frameLength, hopLength int) []float64 {
	if len(samples) == 0 || frameLength <= 0 || hopLength <= 0 {
		return nil
	}

	numFrames := 1 + (len(samples)-1)/hopLength
	env := make([]float64, 0, numFrames)

	for start := 0; start < len(samples); start += hopLength {
		end := start + frameLength
		if end > len(samples) {
			end = len(samples)
		}
		frame := samples[start:end]
		energy := floats.Dot(frame, frame)
		env = append(env, math.Sqrt(energy/float64(len(frame))))
	}

	return env
}

// frameDuration returns the seconds of audio each envelope frame spans,
// derived from the clip length rather than the hop so the run-length
// arithmetic downstream stays consistent with the envelope it was
// computed from.
func frameDuration(numSamples, sampleRate, numFrames int) float64 {
	if sampleRate == 0 || numFrames == 0 {
		return 0
	}
	return float64(numSamples) / float64(sampleRate) / float64(numFrames)
}

// trimSilence removes leading and trailing audio quieter than topDB
// below the loudest envelope frame.
func trimSilence(samples []float64, topDB float64) []float64 {
	env := rmsEnvelope(samples, coarseFrameLength, coarseHopLength)
	if len(env) == 0 {
		return samples
	}

	peak := floats.Max(env)
	if peak <= 0 {
		return samples
	}
	threshold := peak * math.Pow(10, -topDB/20)

	first, last := -1, -1
	for i, e := range env {
		if e > threshold {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		// Nothing above the floor; keep the clip as-is and let the
		// caller's thresholds reject it.
		return samples
	}

	start := first * coarseHopLength
	end := last*coarseHopLength + coarseFrameLength
	if end > len(samples) {
		end = len(samples)
	}
	return samples[start:end]
}

// zeroCrossingRate returns the mean per-frame zero-crossing rate: the
// fraction of adjacent sample pairs in each frame whose signs differ.
func zeroCrossingRate(samples []float64, frameLength, hopLength int) float64 {
	if len(samples) < 2 || frameLength <= 1 || hopLength <= 0 {
		return 0
	}

	var sum float64
	var count int
	for start := 0; start < len(samples); start += hopLength {
		end := start + frameLength
		if end > len(samples) {
			end = len(samples)
		}
		frame := samples[start:end]
		if len(frame) < 2 {
			break
		}

		crossings := 0
		for i := 1; i < len(frame); i++ {
			if (frame[i-1] >= 0) != (frame[i] >= 0) {
				crossings++
			}
		}
		sum += float64(crossings) / float64(len(frame)-1)
		count++
	}

	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
