package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/fluentpal/analysis-gateway/internal/observability"
	"github.com/fluentpal/analysis-gateway/internal/resilience"
)

// Classifier is the inference interface the scoring engines consume
type Classifier interface {
	// Classify runs one inference over the audio file at path
	Classify(ctx context.Context, path string) (Verdict, error)

	// Info returns the loaded model description
	Info(ctx context.Context) (ModelInfo, error)

	// Warmup triggers a throwaway inference so the first real request
	// doesn't pay the model's cold-start cost
	Warmup(ctx context.Context) error
}

// HTTPClient talks to the classifier sidecar over HTTP with retry and
// circuit breaker protection. A failed classification is fatal to the
// request it belongs to, so the breaker keeps a dead sidecar from
// stalling every upload for its full timeout.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	breaker *resilience.CircuitBreaker
	retry   *resilience.RetryConfig
}

// HTTPClientOptions configures an HTTPClient
type HTTPClientOptions struct {
	BaseURL             string
	Timeout             time.Duration
	BreakerMaxFailures  int
	BreakerResetTimeout time.Duration
	Retry               *resilience.RetryConfig
}

// NewHTTPClient creates a classifier client for the sidecar at baseURL
func NewHTTPClient(opts HTTPClientOptions) *HTTPClient {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.BreakerMaxFailures <= 0 {
		opts.BreakerMaxFailures = 5
	}
	if opts.BreakerResetTimeout <= 0 {
		opts.BreakerResetTimeout = 30 * time.Second
	}
	if opts.Retry == nil {
		opts.Retry = resilience.DefaultRetryConfig()
	}

	return &HTTPClient{
		baseURL: opts.BaseURL,
		client:  &http.Client{Timeout: opts.Timeout},
		breaker: resilience.NewCircuitBreaker("classifier", opts.BreakerMaxFailures, opts.BreakerResetTimeout),
		retry:   opts.Retry,
	}
}

// Classify uploads the audio file to the sidecar's /predict endpoint
// and decodes the label/confidence pair.
func (c *HTTPClient) Classify(ctx context.Context, path string) (Verdict, error) {
	start := time.Now()

	var verdict Verdict
	err := resilience.Retry(ctx, func() error {
		return c.breaker.Call(func() error {
			v, err := c.predict(ctx, path)
			if err != nil {
				return err
			}
			verdict = v
			return nil
		})
	}, c.retry, c.isRetryable)

	observability.RecordClassifierCall(start, err)
	observability.UpdateCircuitBreakerState(c.breaker.Name(), int(c.breaker.GetState()))
	if err != nil {
		observability.RecordError("inference", "classifier")
		return Verdict{}, fmt.Errorf("classifier inference failed: %w", err)
	}
	return verdict, nil
}

func (c *HTTPClient) predict(ctx context.Context, path string) (Verdict, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	fw, err := w.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return Verdict{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return Verdict{}, err
	}
	defer f.Close()

	if _, err = io.Copy(fw, f); err != nil {
		return Verdict{}, err
	}
	if err = w.Close(); err != nil {
		return Verdict{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", &body)
	if err != nil {
		return Verdict{}, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return Verdict{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Verdict{}, fmt.Errorf("classifier returned %s: %s", resp.Status, string(msg))
	}

	var verdict Verdict
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return Verdict{}, fmt.Errorf("failed to decode classifier response: %w", err)
	}
	if verdict.Label == "" {
		return Verdict{}, fmt.Errorf("classifier response missing label")
	}
	return verdict, nil
}

// Info queries the sidecar's /info endpoint for the model description
func (c *HTTPClient) Info(ctx context.Context) (ModelInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/info", nil)
	if err != nil {
		return ModelInfo{}, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return ModelInfo{}, fmt.Errorf("classifier info request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ModelInfo{}, fmt.Errorf("classifier info returned %s", resp.Status)
	}

	var info ModelInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return ModelInfo{}, fmt.Errorf("failed to decode classifier info: %w", err)
	}
	return info, nil
}

// Warmup asks the sidecar to run one throwaway inference
func (c *HTTPClient) Warmup(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/warmup", nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("classifier warmup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("classifier warmup returned %s", resp.Status)
	}
	return nil
}

// Healthy reports whether the sidecar is reachable. Used by the
// readiness probe.
func (c *HTTPClient) Healthy(ctx context.Context) error {
	_, err := c.Info(ctx)
	return err
}

// isRetryable never retries while the breaker is open; everything else
// defers to the network error heuristics.
func (c *HTTPClient) isRetryable(err error) bool {
	if err == resilience.ErrCircuitOpen {
		return false
	}
	return resilience.IsRetryableNetworkError(err)
}
