package config

import "time"

// Upload Constants
const (
	// MaxUploadSize is the largest accepted audio payload (100 MiB)
	MaxUploadSize = 100 << 20

	// DefaultUploadDir is the scratch directory for uploaded audio
	DefaultUploadDir = "uploads"

	// DefaultAudioFormat is assumed when /api/detect omits audio_format
	DefaultAudioFormat = "mp3"
)

// AllowedExtensions lists the accepted audio file extensions
var AllowedExtensions = map[string]bool{
	"wav":  true,
	"mp3":  true,
	"mp4":  true,
	"mpeg": true,
	"ogg":  true,
	"flac": true,
	"m4a":  true,
}

// Detection Retry Constants
const (
	// DefaultMaxAttempts is the number of provider calls before giving up
	DefaultMaxAttempts = 3

	// DefaultRetryDelay is the fixed wait between failed attempts
	DefaultRetryDelay = 2 * time.Second

	// DefaultAttemptTimeout bounds a single provider call, including result polling
	DefaultAttemptTimeout = 5 * time.Minute

	// DefaultPollInterval is the wait between provider result polls
	DefaultPollInterval = 3 * time.Second
)

// Provider Constants
const (
	// DefaultProviderBaseURL is the Reality Defender API endpoint
	DefaultProviderBaseURL = "https://api.prd.realitydefender.xyz"

	// DefaultServiceName is reported by /health
	DefaultServiceName = "Reality Defender Audio Detection"
)

// Scratch Sweep Constants
const (
	// DefaultSweepSchedule runs the stale scratch sweep every 10 minutes
	DefaultSweepSchedule = "*/10 * * * *"

	// DefaultScratchMaxAge is the age after which leftover scratch files are removed
	DefaultScratchMaxAge = time.Hour
)

// Language Detection Constants
const (
	LanguageDetectorStub   = "stub"
	LanguageDetectorGemini = "gemini"

	DefaultGeminiModel = "gemini-2.5-flash"
)

// Kafka Constants
const (
	// DefaultDetectionTopic receives one event per completed detection
	DefaultDetectionTopic = "audio-detection-results"
)
