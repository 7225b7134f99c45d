package stt

import (
	"context"
	"fmt"
	"time"

	listenv1rest "github.com/deepgram/deepgram-go-sdk/v3/pkg/api/listen/v1/rest"
	interfaces "github.com/deepgram/deepgram-go-sdk/v3/pkg/client/interfaces"
	listenClient "github.com/deepgram/deepgram-go-sdk/v3/pkg/client/listen"

	"github.com/fluentpal/analysis-gateway/internal/config"
	"github.com/fluentpal/analysis-gateway/internal/observability"
	"github.com/fluentpal/analysis-gateway/internal/transcript"
)

// DeepgramClient implements Transcriber using Deepgram's pre-recorded
// REST API. Each exercise clip is a few seconds long, so one blocking
// request per clip is the right shape; there is no streaming session to
// manage.
type DeepgramClient struct {
	api     *listenv1rest.Client
	options *interfaces.PreRecordedTranscriptionOptions
	timeout time.Duration
}

// NewDeepgramClient creates a pre-recorded transcription client
func NewDeepgramClient(cfg *config.Config) *DeepgramClient {
	rest := listenClient.NewREST(cfg.DeepgramAPIKey, &interfaces.ClientOptions{})

	return &DeepgramClient{
		api: listenv1rest.New(rest),
		options: &interfaces.PreRecordedTranscriptionOptions{
			Model:       cfg.DeepgramModel,
			Language:    cfg.DeepgramLanguage,
			Punctuate:   true,
			SmartFormat: false,
		},
		timeout: time.Duration(cfg.DeepgramTimeout) * time.Second,
	}
}

// Transcribe uploads the audio file and maps the first channel's best
// alternative into word timings. An empty result (silence, noise the
// recognizer ignored) is not an error.
func (d *DeepgramClient) Transcribe(ctx context.Context, path string) (transcript.Transcription, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	res, err := d.api.FromFile(ctx, path, d.options)
	observability.RecordTranscriptionCall(start, err)
	if err != nil {
		return transcript.Transcription{}, fmt.Errorf("transcription request failed: %w", err)
	}

	if res == nil || res.Results == nil ||
		len(res.Results.Channels) == 0 ||
		len(res.Results.Channels[0].Alternatives) == 0 {
		return transcript.Transcription{}, nil
	}

	alt := res.Results.Channels[0].Alternatives[0]
	result := transcript.Transcription{FullText: alt.Transcript}
	for _, w := range alt.Words {
		result.Words = append(result.Words, transcript.Word{
			Text:       w.Word,
			StartSec:   w.Start,
			EndSec:     w.End,
			Confidence: w.Confidence,
		})
	}
	return result, nil
}
