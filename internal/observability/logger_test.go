package observability

import "testing"

func TestGetLogger_SupportsLevelEvents(t *testing.T) {
	// Callers assign the logger before emitting level events; the
	// returned value must support the full event chain
	logger := GetLogger()
	logger.Debug().Str("key", "value").Msg("debug event")
	logger.Warn().Msg("warn event")
	logger.Error().Msg("error event")
}

func TestWithRequestID(t *testing.T) {
	logger := WithRequestID("req-42")
	logger.Info().Msg("scoped event")

	// An empty ID still yields a usable scoped logger
	logger = WithRequestID("")
	logger.Info().Msg("scoped event with generated id")
}

func TestNewRequestID_Unique(t *testing.T) {
	a := NewRequestID()
	b := NewRequestID()
	if a == "" || b == "" {
		t.Fatal("Expected non-empty request IDs")
	}
	if a == b {
		t.Errorf("Expected distinct request IDs, got '%s' twice", a)
	}
}
