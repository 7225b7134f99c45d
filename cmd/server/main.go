package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fluentpal/analysis-gateway/internal/classifier"
	"github.com/fluentpal/analysis-gateway/internal/config"
	"github.com/fluentpal/analysis-gateway/internal/engine"
	"github.com/fluentpal/analysis-gateway/internal/observability"
	"github.com/fluentpal/analysis-gateway/internal/phoneme"
	"github.com/fluentpal/analysis-gateway/internal/resilience"
	"github.com/fluentpal/analysis-gateway/internal/server"
	"github.com/fluentpal/analysis-gateway/internal/stt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		observability.InitLogger("info", true)
		logger := observability.GetLogger()
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	observability.InitLogger(cfg.LogLevel, cfg.LogPretty)
	logger := observability.GetLogger()
	logger.Info().Str("port", cfg.Port).Msg("Starting analysis gateway")

	// The phoneme dictionary is required evidence infrastructure; a
	// missing file is a deployment error, not something to limp past
	lexicon, err := phoneme.LoadLexicon(cfg.PhonemeDictPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.PhonemeDictPath).Msg("Failed to load phoneme dictionary")
	}
	logger.Info().Int("entries", lexicon.Size()).Msg("Phoneme dictionary loaded")

	cls := classifier.NewHTTPClient(classifier.HTTPClientOptions{
		BaseURL:             cfg.ClassifierURL,
		Timeout:             time.Duration(cfg.ClassifierTimeout) * time.Second,
		BreakerMaxFailures:  cfg.CircuitBreakerMaxFailures,
		BreakerResetTimeout: time.Duration(cfg.CircuitBreakerResetTimeout) * time.Second,
		Retry: &resilience.RetryConfig{
			MaxAttempts:       cfg.RetryMaxAttempts,
			InitialBackoff:    time.Duration(cfg.RetryInitialBackoff) * time.Millisecond,
			MaxBackoff:        5 * time.Second,
			BackoffMultiplier: 2.0,
		},
	})

	transcriber := stt.NewDeepgramClient(cfg)
	eng := engine.New(cfg, lexicon, cls, transcriber)

	// Best effort: the sidecar may still be loading its model at boot
	model, device := "wav2vec2", "unknown"
	infoCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if info, err := cls.Info(infoCtx); err == nil {
		model, device = info.Model, info.Device
		logger.Info().Str("model", model).Str("device", device).Msg("Classifier ready")
	} else {
		logger.Warn().Err(err).Msg("Classifier not reachable at startup")
	}
	cancel()

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: server.New(cfg, eng, cls, model, device).Router(),
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Forced shutdown")
	}
	logger.Info().Msg("Server stopped")
}
