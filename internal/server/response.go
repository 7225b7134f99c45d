// Package server exposes the analysis engine over HTTP: multipart
// uploads in, verdict JSON out.
package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fluentpal/analysis-gateway/internal/engine"
	"github.com/fluentpal/analysis-gateway/internal/observability"
)

// Structured error codes returned alongside the human-readable message
const (
	CodeMissingField          = "MISSING_FIELD"
	CodeInvalidFormat         = "INVALID_FORMAT"
	CodeFileTooLarge          = "FILE_TOO_LARGE"
	CodeAnalysisFailed        = "ANALYSIS_FAILED"
	CodeClassifierUnavailable = "CLASSIFIER_UNAVAILABLE"
)

// APIError is the error object every failed request returns
type APIError struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// respondError writes the structured error object with its status
func respondError(c *gin.Context, status int, message, code string) {
	observability.RecordError(code, "server")
	c.JSON(status, APIError{Error: message, Code: code})
}

// respondAnalysisError maps an engine failure to the right status: a
// dead classifier is a 503 the client can retry, everything else is a
// plain server failure. No partial verdict is ever written.
func respondAnalysisError(c *gin.Context, requestID string, err error) {
	logger := observability.WithRequestID(requestID)
	logger.Error().Err(err).Msg("Analysis failed")

	if errors.Is(err, engine.ErrClassifierUnavailable) {
		respondError(c, http.StatusServiceUnavailable, "Analysis service is temporarily unavailable", CodeClassifierUnavailable)
		return
	}
	respondError(c, http.StatusInternalServerError, "Analysis failed", CodeAnalysisFailed)
}
