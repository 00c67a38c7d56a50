// Package language detects the spoken language of an audio file.
package language

import (
	"context"
	"log"

	"voiceguard/config"
	"voiceguard/types"
)

// Detector identifies the spoken language of the audio file at path
type Detector interface {
	Detect(ctx context.Context, path string) (types.LanguageInfo, error)
}

// Stub always reports an unknown language
type Stub struct{}

func (Stub) Detect(ctx context.Context, path string) (types.LanguageInfo, error) {
	return types.UnknownLanguage(), nil
}

// Detect runs d and falls back to the unknown language on failure, so a
// language error never fails a detection request.
func Detect(ctx context.Context, d Detector, path string) types.LanguageInfo {
	if d == nil {
		return types.UnknownLanguage()
	}
	info, err := d.Detect(ctx, path)
	if err != nil {
		log.Printf("❌ Language detection error: %v", err)
		return types.UnknownLanguage()
	}
	return info
}

// FromConfig builds the detector selected by cfg.LanguageDetector.
func FromConfig(cfg *config.Config) Detector {
	switch cfg.LanguageDetector {
	case config.LanguageDetectorGemini:
		log.Printf("🌐 Language detection: gemini (%s)", cfg.GeminiModel)
		return NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel)
	default:
		log.Printf("🌐 Language detection: stub")
		return Stub{}
	}
}
