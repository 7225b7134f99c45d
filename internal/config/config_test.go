package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	os.Setenv("DEEPGRAM_API_KEY", "test-deepgram-key")
	defer os.Unsetenv("DEEPGRAM_API_KEY")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.DeepgramAPIKey != "test-deepgram-key" {
		t.Errorf("Expected DeepgramAPIKey 'test-deepgram-key', got '%s'", cfg.DeepgramAPIKey)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("DEEPGRAM_API_KEY")

	_, err := Load()
	if err == nil {
		t.Error("Expected error when DEEPGRAM_API_KEY is missing")
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Setenv("DEEPGRAM_API_KEY", "test-deepgram-key")
	defer os.Unsetenv("DEEPGRAM_API_KEY")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected default Port '8080', got '%s'", cfg.Port)
	}
	if cfg.MaxUploadBytes != 5*1024*1024 {
		t.Errorf("Expected default MaxUploadBytes 5MB, got %d", cfg.MaxUploadBytes)
	}
	if cfg.AmplitudeThreshold != 0.02 {
		t.Errorf("Expected default AmplitudeThreshold 0.02, got %f", cfg.AmplitudeThreshold)
	}
	if cfg.MinSustainSec != 1.5 {
		t.Errorf("Expected default MinSustainSec 1.5, got %f", cfg.MinSustainSec)
	}
	if cfg.PitchedRatioMin != 0.15 {
		t.Errorf("Expected default PitchedRatioMin 0.15, got %f", cfg.PitchedRatioMin)
	}
	if cfg.TurtleMinWPM != 80 || cfg.TurtleMaxWPM != 120 {
		t.Errorf("Expected default WPM band [80, 120], got [%v, %v]", cfg.TurtleMinWPM, cfg.TurtleMaxWPM)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	os.Setenv("DEEPGRAM_API_KEY", "test-deepgram-key")
	os.Setenv("PITCHED_RATIO_MIN", "0.25")
	defer os.Unsetenv("DEEPGRAM_API_KEY")
	defer os.Unsetenv("PITCHED_RATIO_MIN")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.PitchedRatioMin != 0.25 {
		t.Errorf("Expected PitchedRatioMin 0.25 from env, got %f", cfg.PitchedRatioMin)
	}
}

func TestLoad_EmptyWPMBand(t *testing.T) {
	os.Setenv("DEEPGRAM_API_KEY", "test-deepgram-key")
	os.Setenv("TURTLE_MIN_WPM", "120")
	os.Setenv("TURTLE_MAX_WPM", "80")
	defer os.Unsetenv("DEEPGRAM_API_KEY")
	defer os.Unsetenv("TURTLE_MIN_WPM")
	defer os.Unsetenv("TURTLE_MAX_WPM")

	_, err := Load()
	if err == nil {
		t.Error("Expected error for inverted WPM band")
	}
}

func TestAllowedExtensionSet(t *testing.T) {
	cfg := &Config{AllowedExtensions: "wav, M4A,mp3,.webm"}

	set := cfg.AllowedExtensionSet()
	for _, ext := range []string{"wav", "m4a", "mp3", "webm"} {
		if !set[ext] {
			t.Errorf("Expected extension '%s' to be allowed", ext)
		}
	}
	if set["ogg"] {
		t.Error("Expected extension 'ogg' to not be allowed")
	}
}
