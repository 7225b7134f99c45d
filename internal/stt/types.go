// Package stt provides pre-recorded speech-to-text transcription for
// uploaded exercise clips.
package stt

import (
	"context"

	"github.com/fluentpal/analysis-gateway/internal/observability"
	"github.com/fluentpal/analysis-gateway/internal/transcript"
)

// Transcriber turns an audio file into a word-timed transcription
type Transcriber interface {
	Transcribe(ctx context.Context, path string) (transcript.Transcription, error)
}

// SafeTranscribe runs the transcriber and degrades to an empty
// transcription on failure. Transcription is supporting evidence, not
// required evidence: a dead or slow STT service must never fail the
// whole analysis, it just leaves the word-level checks undecided.
func SafeTranscribe(ctx context.Context, t Transcriber, path string) transcript.Transcription {
	result, err := t.Transcribe(ctx, path)
	if err != nil {
		logger := observability.GetLogger()
		logger.Warn().
			Err(err).
			Msg("Transcription failed, continuing without transcript")
		observability.RecordError("transcription", "stt")
		return transcript.Transcription{}
	}
	return result
}
