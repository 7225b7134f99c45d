package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TargetSampleRate is the rate every clip is normalized to before DSP
// analysis and classifier inference run.
const TargetSampleRate = 16000

// Clip is a mono waveform owned exclusively by one analysis request.
// Samples are normalized to [-1, 1] at TargetSampleRate. The backing
// upload file is removed by Release on every exit path.
type Clip struct {
	Samples    []float64
	SampleRate int
	path       string
	released   bool
}

// Load decodes the uploaded audio file into a mono 16 kHz clip.
// WAV and MP3 are decoded in-process; m4a and webm are delegated to
// ffmpeg. The clip takes ownership of the file: callers must invoke
// Release when the request finishes, success or failure.
func Load(path string) (*Clip, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))

	var (
		samples []float64
		rate    int
		err     error
	)
	switch ext {
	case "wav":
		samples, rate, err = decodeWAV(path)
	case "mp3":
		samples, rate, err = decodeMP3(path)
	case "m4a", "webm":
		samples, rate, err = decodeWithFFmpeg(path)
	default:
		err = fmt.Errorf("unsupported audio extension %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}

	if rate != TargetSampleRate {
		samples = Resample(samples, rate, TargetSampleRate)
		rate = TargetSampleRate
	}

	return &Clip{
		Samples:    samples,
		SampleRate: rate,
		path:       path,
	}, nil
}

// FromSamples wraps an in-memory waveform in a clip with no backing file.
func FromSamples(samples []float64, sampleRate int) *Clip {
	return &Clip{
		Samples:    samples,
		SampleRate: sampleRate,
	}
}

// Duration returns the clip length in seconds
func (c *Clip) Duration() float64 {
	if c.SampleRate == 0 {
		return 0
	}
	return float64(len(c.Samples)) / float64(c.SampleRate)
}

// Path returns the backing file path, empty for in-memory clips
func (c *Clip) Path() string {
	return c.path
}

// Release deletes the backing upload file. Safe to call more than once.
func (c *Clip) Release() error {
	if c.released || c.path == "" {
		return nil
	}
	c.released = true
	if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove clip file: %w", err)
	}
	return nil
}
