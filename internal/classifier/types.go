// Package classifier wraps the wav2vec disfluency classifier sidecar.
// The sidecar takes a whole audio clip and returns a single label plus
// a confidence; this package adds the label semantics the scoring
// engines depend on.
package classifier

import "strings"

// Verdict is one classifier inference result. Labels follow the model's
// class naming, e.g. "0_fluent", "1_block", "2_repetition".
type Verdict struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// IsFluent reports whether the label denotes fluent speech
func (v Verdict) IsFluent() bool {
	return strings.Contains(strings.ToLower(v.Label), "fluent")
}

// IndicatesBlock reports whether the label denotes a block disfluency
func (v Verdict) IndicatesBlock() bool {
	return strings.Contains(strings.ToLower(v.Label), "block")
}

// IndicatesRepetition reports whether the label denotes a repetition
// disfluency (sound, word, or phrase repetition classes all count).
func (v Verdict) IndicatesRepetition() bool {
	return strings.Contains(strings.ToLower(v.Label), "repetition")
}

// Subtype returns the human-readable disfluency subtype, derived from
// the label by stripping the class index prefix and capitalizing:
// "1_block" becomes "Block". A label without a prefix capitalizes
// as-is.
func (v Verdict) Subtype() string {
	name := v.Label
	if idx := strings.Index(name, "_"); idx >= 0 {
		name = name[idx+1:]
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "Unknown"
	}
	return strings.ToUpper(name[:1]) + strings.ToLower(name[1:])
}

// ModelInfo describes the loaded model, surfaced on the health endpoint
type ModelInfo struct {
	Model  string `json:"model"`
	Device string `json:"device"`
}
