package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fluentpal/analysis-gateway/internal/classifier"
	"github.com/fluentpal/analysis-gateway/internal/config"
	"github.com/fluentpal/analysis-gateway/internal/engine"
	"github.com/fluentpal/analysis-gateway/internal/observability"
)

// Server wires the analysis engine to the HTTP surface
type Server struct {
	engine            *engine.Engine
	classifier        classifier.Classifier
	allowedExtensions map[string]bool
	maxUploadBytes    int64
	metricsEnabled    bool
	model             string
	device            string
}

// New creates the HTTP server around an analysis engine. Model and
// device describe the classifier deployment for the health endpoint.
func New(cfg *config.Config, eng *engine.Engine, cls classifier.Classifier, model, device string) *Server {
	return &Server{
		engine:            eng,
		classifier:        cls,
		allowedExtensions: cfg.AllowedExtensionSet(),
		maxUploadBytes:    cfg.MaxUploadBytes,
		metricsEnabled:    cfg.MetricsEnabled,
		model:             model,
		device:            device,
	}
}

// Router builds the gin engine with all routes registered
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.MaxMultipartMemory = s.maxUploadBytes

	router.POST("/analyze_audio", s.handleTriage)
	router.POST("/analyze/turtle", s.handleTurtle)
	router.POST("/analyze/snake", s.handleSnake)
	router.POST("/analyze/balloon", s.handleBalloon)
	router.POST("/analyze/onetap", s.handleOneTap)

	router.GET("/health", gin.WrapF(observability.HealthCheckHandler(s.model, s.device)))
	router.GET("/ready", gin.WrapF(observability.ReadinessHandler(map[string]observability.HealthCheckFunc{
		"classifier": func(ctx context.Context) (bool, error) {
			if _, err := s.classifier.Info(ctx); err != nil {
				return false, err
			}
			return true, nil
		},
	})))
	router.POST("/warmup", s.handleWarmup)

	if s.metricsEnabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	return router
}

// handleWarmup triggers one throwaway classifier inference so the first
// real request doesn't pay the cold-start cost
func (s *Server) handleWarmup(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	start := time.Now()
	if err := s.classifier.Warmup(ctx); err != nil {
		logger := observability.GetLogger()
		logger.Warn().Err(err).Msg("Warmup inference failed")
		respondError(c, http.StatusServiceUnavailable, "Warmup failed", CodeClassifierUnavailable)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":     "warmed",
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
}
