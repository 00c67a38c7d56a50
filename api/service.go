package api

import (
	"context"
	"log"
	"time"

	"voiceguard/events"
	"voiceguard/language"
	"voiceguard/types"
	"voiceguard/upload"
)

const publishTimeout = 5 * time.Second

// detectService runs language and AI-voice detection for one scratch file
type detectService struct {
	scratch   *upload.Scratch
	detector  AudioDetector
	language  language.Detector
	publisher events.Publisher
}

// run analyzes the file at path and always removes it before returning.
func (s *detectService) run(ctx context.Context, path, filename, source string) (types.DetectionResult, error) {
	defer s.scratch.Remove(path)

	log.Printf("🗣️  Step 1: Detecting language...")
	lang := language.Detect(ctx, s.language, path)
	log.Printf("✅ Language detected: %s", lang.Language)

	log.Printf("🤖 Step 2: Detecting AI generation...")
	res, err := s.detector.Detect(ctx, path, lang)
	if err != nil {
		return types.DetectionResult{}, err
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.publisher.PublishDetection(pubCtx, events.NewDetectionEvent(source, filename, res)); err != nil {
		log.Printf("⚠️  Failed to publish detection event: %v", err)
	}
	return res, nil
}
