package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"os/exec"

	mp3 "github.com/hajimehoshi/go-mp3"
)

// decodeWAV reads a RIFF/WAVE file containing 16-bit PCM and returns
// mono float64 samples plus the source sample rate. Multi-channel audio
// is downmixed by averaging.
func decodeWAV(path string) ([]float64, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, err
	}
	if len(data) < 44 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, 0, fmt.Errorf("not a RIFF/WAVE file")
	}

	var (
		numChannels   int
		sampleRate    int
		bitsPerSample int
		pcm           []byte
	)

	// Walk the chunk list; only fmt and data matter here
	offset := 12
	for offset+8 <= len(data) {
		chunkID := string(data[offset : offset+4])
		chunkSize := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		body := offset + 8
		if body+chunkSize > len(data) {
			chunkSize = len(data) - body
		}

		switch chunkID {
		case "fmt ":
			if chunkSize < 16 {
				return nil, 0, fmt.Errorf("fmt chunk too short: %d bytes", chunkSize)
			}
			format := binary.LittleEndian.Uint16(data[body : body+2])
			if format != 1 { // PCM
				return nil, 0, fmt.Errorf("unsupported WAV format code %d", format)
			}
			numChannels = int(binary.LittleEndian.Uint16(data[body+2 : body+4]))
			sampleRate = int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			bitsPerSample = int(binary.LittleEndian.Uint16(data[body+14 : body+16]))
		case "data":
			pcm = data[body : body+chunkSize]
		}

		// Chunks are word-aligned
		offset = body + chunkSize
		if chunkSize%2 == 1 {
			offset++
		}
	}

	if sampleRate == 0 || numChannels == 0 {
		return nil, 0, fmt.Errorf("missing fmt chunk")
	}
	if bitsPerSample != 16 {
		return nil, 0, fmt.Errorf("unsupported bit depth %d", bitsPerSample)
	}
	if len(pcm) == 0 {
		return nil, 0, fmt.Errorf("missing data chunk")
	}

	return pcm16ToMono(pcm, numChannels), sampleRate, nil
}

// decodeMP3 decodes an MP3 file via go-mp3, which always emits 16-bit
// stereo PCM at the source sample rate.
func decodeMP3(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create mp3 decoder: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, dec); err != nil {
		return nil, 0, fmt.Errorf("failed to decode mp3 stream: %w", err)
	}

	return pcm16ToMono(buf.Bytes(), 2), dec.SampleRate(), nil
}

// decodeWithFFmpeg shells out to ffmpeg for containers we do not decode
// in-process (m4a, webm). Output is signed 16-bit mono at the target rate.
func decodeWithFFmpeg(path string) ([]float64, int, error) {
	cmd := exec.Command("ffmpeg",
		"-hide_banner", "-loglevel", "error",
		"-i", path,
		"-f", "s16le", "-acodec", "pcm_s16le",
		"-ac", "1", "-ar", fmt.Sprint(TargetSampleRate),
		"pipe:1",
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, 0, fmt.Errorf("ffmpeg decode failed: %w (%s)", err, stderr.String())
	}

	return pcm16ToMono(stdout.Bytes(), 1), TargetSampleRate, nil
}

// pcm16ToMono converts little-endian 16-bit PCM bytes to normalized
// float64 samples, averaging channels into mono.
func pcm16ToMono(pcm []byte, numChannels int) []float64 {
	if numChannels < 1 {
		numChannels = 1
	}
	frameBytes := 2 * numChannels
	numFrames := len(pcm) / frameBytes

	samples := make([]float64, numFrames)
	for i := 0; i < numFrames; i++ {
		var sum float64
		for ch := 0; ch < numChannels; ch++ {
			off := i*frameBytes + ch*2
			s := int16(uint16(pcm[off]) | uint16(pcm[off+1])<<8)
			sum += float64(s) / 32768.0
		}
		samples[i] = sum / float64(numChannels)
	}
	return samples
}
