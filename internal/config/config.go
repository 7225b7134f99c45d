package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the analysis gateway service
type Config struct {
	// Server configuration
	Port string `envconfig:"PORT" default:"8080"`

	// Upload limits. Files above MaxUploadBytes are rejected before any
	// analysis runs. Extensions outside AllowedExtensions are rejected too.
	MaxUploadBytes    int64  `envconfig:"MAX_UPLOAD_BYTES" default:"5242880"` // 5 MB
	AllowedExtensions string `envconfig:"ALLOWED_EXTENSIONS" default:"wav,m4a,mp3,webm"`

	// Disfluency classifier sidecar (wav2vec) HTTP endpoint
	ClassifierURL     string `envconfig:"CLASSIFIER_URL" default:"http://localhost:5005"`
	ClassifierTimeout int    `envconfig:"CLASSIFIER_TIMEOUT" default:"15"` // seconds

	// Deepgram STT API configuration (pre-recorded transcription)
	DeepgramAPIKey   string `envconfig:"DEEPGRAM_API_KEY" required:"true"`
	DeepgramModel    string `envconfig:"DEEPGRAM_MODEL" default:"nova-2"`
	DeepgramLanguage string `envconfig:"DEEPGRAM_LANGUAGE" default:"en-US"`
	DeepgramTimeout  int    `envconfig:"DEEPGRAM_TIMEOUT" default:"15"` // seconds

	// Grapheme-to-phoneme lexicon (CMUdict format). Loaded once at startup.
	PhonemeDictPath string `envconfig:"PHONEME_DICT_PATH" default:"data/cmudict.dict"`

	// DSP thresholds. Defaults mirror the clinical tuning the exercises
	// were calibrated against; override per deployment only.
	AmplitudeThreshold float64 `envconfig:"AMPLITUDE_THRESHOLD" default:"0.02"` // RMS floor for an "active" frame
	MinSustainSec      float64 `envconfig:"MIN_SUSTAIN_SEC" default:"1.5"`      // sustained-phoneme minimum
	SilenceThreshold   float64 `envconfig:"SILENCE_THRESHOLD" default:"0.01"`   // RMS ceiling for a "silent" frame
	MinSilenceSec      float64 `envconfig:"MIN_SILENCE_SEC" default:"0.3"`      // breath gap minimum
	PitchedRatioMin    float64 `envconfig:"PITCHED_RATIO_MIN" default:"0.15"`   // voiced-frame fraction for voicing
	NoiseZCRThreshold  float64 `envconfig:"NOISE_ZCR_THRESHOLD" default:"0.2"`  // mean ZCR above which breath noise is suspected

	// Turtle pacing band and block-detection confidence floor
	TurtleMinWPM       float64 `envconfig:"TURTLE_MIN_WPM" default:"80"`
	TurtleMaxWPM       float64 `envconfig:"TURTLE_MAX_WPM" default:"120"`
	BlockConfidenceMin float64 `envconfig:"BLOCK_CONFIDENCE_MIN" default:"0.75"`

	// Resilience configuration for external evidence sources
	CircuitBreakerMaxFailures  int `envconfig:"CIRCUIT_BREAKER_MAX_FAILURES" default:"5"`
	CircuitBreakerResetTimeout int `envconfig:"CIRCUIT_BREAKER_RESET_TIMEOUT" default:"30"` // seconds
	RetryMaxAttempts           int `envconfig:"RETRY_MAX_ATTEMPTS" default:"3"`
	RetryInitialBackoff        int `envconfig:"RETRY_INITIAL_BACKOFF" default:"100"` // milliseconds

	// Observability configuration
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	LogPretty      bool   `envconfig:"LOG_PRETTY" default:"false"`
	MetricsEnabled bool   `envconfig:"METRICS_ENABLED" default:"true"`
}

// Load reads configuration from environment variables.
// It first attempts to load from a .env file if one exists, then from
// the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return LoadFromEnv()
}

// LoadFromEnv loads configuration directly from environment variables
// without attempting to load a .env file (useful for containerized
// deployments).
func LoadFromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.DeepgramAPIKey == "" {
		return nil, fmt.Errorf("DEEPGRAM_API_KEY is required")
	}
	if cfg.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", cfg.MaxUploadBytes)
	}
	if cfg.TurtleMinWPM >= cfg.TurtleMaxWPM {
		return nil, fmt.Errorf("turtle WPM band is empty: [%v, %v]", cfg.TurtleMinWPM, cfg.TurtleMaxWPM)
	}

	return &cfg, nil
}

// AllowedExtensionSet returns the upload extension allow-list as a set of
// lower-cased extensions without the leading dot.
func (c *Config) AllowedExtensionSet() map[string]bool {
	set := make(map[string]bool)
	for _, ext := range strings.Split(c.AllowedExtensions, ",") {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" {
			set[strings.TrimPrefix(ext, ".")] = true
		}
	}
	return set
}
