package server

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fluentpal/analysis-gateway/internal/audio"
	"github.com/fluentpal/analysis-gateway/internal/engine"
	"github.com/fluentpal/analysis-gateway/internal/observability"
)

// loadClip receives and decodes the uploaded audio. On success the
// returned clip owns the temp file; Release removes it. On failure the
// temp file is already gone and the error response already written.
func (s *Server) loadClip(c *gin.Context) (*audio.Clip, bool) {
	path, uerr := s.receiveAudio(c)
	if uerr != nil {
		respondError(c, http.StatusBadRequest, uerr.message, uerr.code)
		return nil, false
	}

	clip, err := audio.Load(path)
	if err != nil {
		os.Remove(path)
		logger := observability.GetLogger()
		logger.Warn().Err(err).Msg("Failed to decode upload")
		respondError(c, http.StatusBadRequest, "Could not decode audio", CodeInvalidFormat)
		return nil, false
	}
	return clip, true
}

func (s *Server) handleTurtle(c *gin.Context) {
	requestID := observability.NewRequestID()
	start := time.Now()

	clip, ok := s.loadClip(c)
	if !ok {
		return
	}
	defer clip.Release()

	res, err := s.engine.AnalyzeTurtle(c.Request.Context(), clip, engine.TurtleInput{
		ExpectedText: c.PostForm("targetText"),
	})
	observability.RecordAnalysis("turtle", start, err)
	if err != nil {
		respondAnalysisError(c, requestID, err)
		return
	}

	res.ElapsedMs = time.Since(start).Milliseconds()
	observability.RecordVerdict("turtle", res.GamePass && res.ClinicalPass && res.ContentPass)
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleSnake(c *gin.Context) {
	requestID := observability.NewRequestID()
	start := time.Now()

	clip, ok := s.loadClip(c)
	if !ok {
		return
	}
	defer clip.Release()

	targetPhoneme := c.PostForm("targetPhoneme")
	if targetPhoneme == "" {
		targetPhoneme = c.PostForm("prompt_phoneme")
	}
	tier, err := strconv.Atoi(c.DefaultPostForm("tier", "1"))
	if err != nil {
		tier = 1
	}

	res, err := s.engine.AnalyzeSnake(c.Request.Context(), clip, engine.SnakeInput{
		TargetPhoneme: targetPhoneme,
		Tier:          tier,
		SessionID:     c.PostForm("sessionId"),
	})
	observability.RecordAnalysis("snake", start, err)
	if err != nil {
		respondAnalysisError(c, requestID, err)
		return
	}

	res.InferenceTimeMs = time.Since(start).Milliseconds()
	observability.RecordVerdict("snake", res.Pass)
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleBalloon(c *gin.Context) {
	requestID := observability.NewRequestID()
	start := time.Now()

	clip, ok := s.loadClip(c)
	if !ok {
		return
	}
	defer clip.Release()

	res, err := s.engine.AnalyzeBalloon(c.Request.Context(), clip)
	observability.RecordAnalysis("balloon", start, err)
	if err != nil {
		respondAnalysisError(c, requestID, err)
		return
	}

	res.ElapsedMs = time.Since(start).Milliseconds()
	observability.RecordVerdict("balloon", res.GamePass && res.ClinicalPass)
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleOneTap(c *gin.Context) {
	requestID := observability.NewRequestID()
	start := time.Now()

	clip, ok := s.loadClip(c)
	if !ok {
		return
	}
	defer clip.Release()

	var syllables []string
	if raw := c.DefaultPostForm("syllables", "[]"); raw != "" {
		// Malformed syllable JSON falls back to the default estimate
		// rather than rejecting the attempt
		_ = json.Unmarshal([]byte(raw), &syllables)
	}
	duration, err := strconv.ParseFloat(c.DefaultPostForm("duration", "0"), 64)
	if err != nil {
		duration = 0
	}

	res, err := s.engine.AnalyzeOneTap(c.Request.Context(), clip, engine.OneTapInput{
		TargetWord:  c.PostForm("target_word"),
		Syllables:   syllables,
		DurationSec: duration,
	})
	observability.RecordAnalysis("onetap", start, err)
	if err != nil {
		respondAnalysisError(c, requestID, err)
		return
	}

	res.ElapsedMs = time.Since(start).Milliseconds()
	observability.RecordVerdict("onetap", !res.RepetitionDetected)
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleTriage(c *gin.Context) {
	requestID := observability.NewRequestID()
	start := time.Now()

	clip, ok := s.loadClip(c)
	if !ok {
		return
	}
	defer clip.Release()

	res, err := s.engine.AnalyzeTriage(c.Request.Context(), clip)
	observability.RecordAnalysis("triage", start, err)
	if err != nil {
		respondAnalysisError(c, requestID, err)
		return
	}

	res.ElapsedMs = time.Since(start).Milliseconds()
	c.JSON(http.StatusOK, res)
}
