package stt

import (
	"context"
	"errors"
	"testing"

	"github.com/fluentpal/analysis-gateway/internal/transcript"
)

type fakeTranscriber struct {
	result transcript.Transcription
	err    error
	calls  int
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, path string) (transcript.Transcription, error) {
	f.calls++
	return f.result, f.err
}

func TestSafeTranscribe_PassesThroughSuccess(t *testing.T) {
	want := transcript.Transcription{
		FullText: "the turtle walks slowly",
		Words: []transcript.Word{
			{Text: "the", StartSec: 0.0, EndSec: 0.3, Confidence: 0.97},
			{Text: "turtle", StartSec: 0.3, EndSec: 0.8, Confidence: 0.92},
		},
	}
	fake := &fakeTranscriber{result: want}

	got := SafeTranscribe(context.Background(), fake, "clip.wav")
	if got.FullText != want.FullText {
		t.Errorf("Expected full text '%s', got '%s'", want.FullText, got.FullText)
	}
	if len(got.Words) != 2 {
		t.Errorf("Expected 2 words, got %d", len(got.Words))
	}
	if fake.calls != 1 {
		t.Errorf("Expected 1 call, got %d", fake.calls)
	}
}

func TestSafeTranscribe_FailureYieldsEmptyTranscription(t *testing.T) {
	fake := &fakeTranscriber{err: errors.New("deadline exceeded")}

	got := SafeTranscribe(context.Background(), fake, "clip.wav")
	if !got.Empty() {
		t.Errorf("Expected an empty transcription on failure, got %+v", got)
	}
	if got.WordCount() != 0 {
		t.Errorf("Expected 0 words, got %d", got.WordCount())
	}
}

func TestSafeTranscribe_EmptyResultIsNotAnError(t *testing.T) {
	// The recognizer returning nothing for a silent clip is a valid
	// outcome, distinct from a transport failure
	fake := &fakeTranscriber{result: transcript.Transcription{}}

	got := SafeTranscribe(context.Background(), fake, "silence.wav")
	if !got.Empty() {
		t.Errorf("Expected empty transcription, got %+v", got)
	}
}
