package dsp

import (
	"math"
	"math/rand"
	"testing"

	"github.com/fluentpal/analysis-gateway/internal/audio"
)

const testRate = audio.TargetSampleRate

// tone generates a sine wave clip segment
func tone(freq, amplitude, durationSec float64) []float64 {
	n := int(durationSec * testRate)
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/testRate)
	}
	return samples
}

// silence generates near-zero samples
func silence(durationSec float64) []float64 {
	return make([]float64, int(durationSec*testRate))
}

// noise generates uniform white noise with a fixed seed
func noise(amplitude, durationSec float64) []float64 {
	rng := rand.New(rand.NewSource(42))
	n := int(durationSec * testRate)
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = amplitude * (2*rng.Float64() - 1)
	}
	return samples
}

func concat(parts ...[]float64) []float64 {
	var out []float64
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func defaultSustain() SustainAnalyzer {
	return SustainAnalyzer{Threshold: 0.02, MinDuration: 1.5}
}

func defaultBreath() BreathDetector {
	return BreathDetector{SilenceThreshold: 0.01, MinSilence: 0.3}
}

func defaultVoicing() VoicingAnalyzer {
	return VoicingAnalyzer{PitchedRatioMin: 0.15, NoiseZCRThreshold: 0.2}
}

func TestSustainAnalyzer_LongTone(t *testing.T) {
	clip := audio.FromSamples(tone(220, 0.3, 2.0), testRate)

	res := defaultSustain().Analyze(clip)
	if !res.Sustained {
		t.Errorf("Expected 2s tone to be sustained, got duration %f", res.DurationSec)
	}
	if res.DurationSec < 1.5 {
		t.Errorf("Expected sustained duration >= 1.5s, got %f", res.DurationSec)
	}
}

func TestSustainAnalyzer_ShortBursts(t *testing.T) {
	// Three 0.4s bursts separated by silence never reach 1.5s continuity
	clip := audio.FromSamples(concat(
		tone(220, 0.3, 0.4), silence(0.5),
		tone(220, 0.3, 0.4), silence(0.5),
		tone(220, 0.3, 0.4),
	), testRate)

	res := defaultSustain().Analyze(clip)
	if res.Sustained {
		t.Errorf("Expected choppy audio to not be sustained, got duration %f", res.DurationSec)
	}
}

func TestSustainAnalyzer_TrimsLeadingSilence(t *testing.T) {
	// Leading silence must not break the measurement of the tone itself
	clip := audio.FromSamples(concat(silence(1.0), tone(220, 0.3, 1.8)), testRate)

	res := defaultSustain().Analyze(clip)
	if !res.Sustained {
		t.Errorf("Expected tone after leading silence to be sustained, got %f", res.DurationSec)
	}
}

func TestSustainAnalyzer_FailSafeOnEmpty(t *testing.T) {
	res := defaultSustain().Analyze(audio.FromSamples(nil, testRate))
	if res.Sustained || res.DurationSec != 0 {
		t.Errorf("Expected fail-safe zero result for empty clip, got %+v", res)
	}

	res = defaultSustain().Analyze(nil)
	if res.Sustained || res.DurationSec != 0 {
		t.Errorf("Expected fail-safe zero result for nil clip, got %+v", res)
	}
}

func TestSustainAnalyzer_Deterministic(t *testing.T) {
	clip := audio.FromSamples(concat(tone(220, 0.3, 1.0), silence(0.2), tone(220, 0.3, 0.6)), testRate)

	first := defaultSustain().Analyze(clip)
	for i := 0; i < 5; i++ {
		again := defaultSustain().Analyze(clip)
		if again != first {
			t.Fatalf("Expected identical results across calls, got %+v then %+v", first, again)
		}
	}
}

func TestBreathDetector_GapThenOnset(t *testing.T) {
	// Sound, a 0.5s gap, then renewed sound: the breath pattern
	clip := audio.FromSamples(concat(
		tone(220, 0.3, 0.5), silence(0.5), tone(220, 0.3, 0.5),
	), testRate)

	res := defaultBreath().Analyze(clip)
	if !res.Detected {
		t.Fatal("Expected breath gap to be detected")
	}
	if res.OnsetAmplitude <= 0 {
		t.Errorf("Expected positive onset amplitude, got %f", res.OnsetAmplitude)
	}
}

func TestBreathDetector_GapTooShort(t *testing.T) {
	clip := audio.FromSamples(concat(
		tone(220, 0.3, 0.5), silence(0.1), tone(220, 0.3, 0.5),
	), testRate)

	if res := defaultBreath().Analyze(clip); res.Detected {
		t.Error("Expected 0.1s gap to be below the breath minimum")
	}
}

func TestBreathDetector_TrailingSilenceDoesNotCount(t *testing.T) {
	// A gap that never ends in renewed energy is not a breath
	clip := audio.FromSamples(concat(tone(220, 0.3, 0.5), silence(1.0)), testRate)

	if res := defaultBreath().Analyze(clip); res.Detected {
		t.Error("Expected trailing silence to not count as a breath gap")
	}
}

func TestBreathDetector_ContinuousSound(t *testing.T) {
	clip := audio.FromSamples(tone(220, 0.3, 2.0), testRate)

	if res := defaultBreath().Analyze(clip); res.Detected {
		t.Error("Expected continuous tone to have no breath gap")
	}
}

func TestVoicingAnalyzer_ShortClipBoundary(t *testing.T) {
	// Anything under 0.3s is rejected outright as noise
	for _, dur := range []float64{0.0, 0.1, 0.29} {
		clip := audio.FromSamples(tone(220, 0.3, dur), testRate)
		res := defaultVoicing().Analyze(clip)
		if res.VoicedDetected {
			t.Errorf("Expected voiced=false for %.2fs clip", dur)
		}
		if !res.NoiseSuspected {
			t.Errorf("Expected noise_suspected=true for %.2fs clip", dur)
		}
	}
}

func TestVoicingAnalyzer_PitchedTone(t *testing.T) {
	clip := audio.FromSamples(tone(150, 0.3, 1.0), testRate)

	res := defaultVoicing().Analyze(clip)
	if !res.VoicedDetected {
		t.Errorf("Expected 150Hz tone to be voiced, pitched_ratio=%f", res.PitchedRatio)
	}
	if res.NoiseSuspected {
		t.Error("Expected 150Hz tone to not be flagged as noise")
	}
}

func TestVoicingAnalyzer_WhiteNoise(t *testing.T) {
	clip := audio.FromSamples(noise(0.3, 1.0), testRate)

	res := defaultVoicing().Analyze(clip)
	if res.VoicedDetected {
		t.Errorf("Expected white noise to not be voiced, pitched_ratio=%f", res.PitchedRatio)
	}
	if !res.NoiseSuspected {
		t.Errorf("Expected white noise to be flagged, zcr=%f pitched_ratio=%f", res.ZCRMean, res.PitchedRatio)
	}
}

func TestVoicingAnalyzer_NilClipFailSafe(t *testing.T) {
	res := defaultVoicing().Analyze(nil)
	if res.VoicedDetected || !res.NoiseSuspected {
		t.Errorf("Expected conservative fail-safe for nil clip, got %+v", res)
	}
}

func TestRMSEnvelope_KnownValue(t *testing.T) {
	// Constant-amplitude signal has RMS equal to that amplitude
	samples := make([]float64, 4096)
	for i := range samples {
		samples[i] = 0.5
	}

	env := rmsEnvelope(samples, 2048, 512)
	if len(env) == 0 {
		t.Fatal("Expected non-empty envelope")
	}
	if math.Abs(env[0]-0.5) > 1e-9 {
		t.Errorf("Expected RMS 0.5 for constant signal, got %f", env[0])
	}
}

func TestZeroCrossingRate_Extremes(t *testing.T) {
	// A high-frequency alternating signal crosses on every sample
	alternating := make([]float64, 4096)
	for i := range alternating {
		if i%2 == 0 {
			alternating[i] = 0.5
		} else {
			alternating[i] = -0.5
		}
	}
	if zcr := zeroCrossingRate(alternating, 2048, 512); zcr < 0.9 {
		t.Errorf("Expected ZCR near 1 for alternating signal, got %f", zcr)
	}

	// A DC signal never crosses
	dc := make([]float64, 4096)
	for i := range dc {
		dc[i] = 0.5
	}
	if zcr := zeroCrossingRate(dc, 2048, 512); zcr != 0 {
		t.Errorf("Expected ZCR 0 for DC signal, got %f", zcr)
	}
}
