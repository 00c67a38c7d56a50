package types

// LanguageInfo describes the spoken language detected in an audio file
type LanguageInfo struct {
	Language      string  `json:"language"`
	LanguageCode  string  `json:"language_code"`
	Transcription *string `json:"transcription"`
	Confidence    string  `json:"confidence"` // percentage, e.g. "87%"
}

// UnknownLanguage is returned when no language could be determined
func UnknownLanguage() LanguageInfo {
	return LanguageInfo{
		Language:     "Unknown",
		LanguageCode: "unknown",
		Confidence:   "0%",
	}
}

// ModelResult is a single provider model verdict
type ModelResult struct {
	Name   string  `json:"name"`
	Score  float64 `json:"score"`
	Status string  `json:"status"`
}

// DetectionResult is the normalized provider verdict returned to callers
type DetectionResult struct {
	IsAIGenerated   bool         `json:"is_ai_generated"`
	IsHuman         bool         `json:"is_human"`
	ConfidenceScore string       `json:"confidence_score"` // 0-100, two decimals
	Status          string       `json:"status"`
	RequestID       string       `json:"request_id"`
	Models          []any        `json:"models"` // provider model entries, passed through in order
	LanguageInfo    LanguageInfo `json:"language_info"`
	RawScore        float64      `json:"raw_score"`
	RawResult       any          `json:"raw_result"`
	Error           string       `json:"error,omitempty"`
}

// Status values reported by the provider
const (
	StatusManipulated = "MANIPULATED"
	StatusAnalyzing   = "ANALYZING"
	StatusError       = "ERROR"
)

// RawResponse is a decoded provider response before normalization
type RawResponse = map[string]any
