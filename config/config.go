package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime settings read from the environment
type Config struct {
	Port        string
	GinMode     string
	ServiceName string

	ProviderAPIKey  string
	ProviderBaseURL string
	APIKey          string

	UploadDir      string
	MaxAttempts    int
	RetryDelay     time.Duration
	AttemptTimeout time.Duration
	PollInterval   time.Duration

	LanguageDetector string
	GeminiAPIKey     string
	GeminiModel      string

	SweepSchedule string
	ScratchMaxAge time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	CORSAllowOrigins []string
}

// Load reads the configuration from the environment. It fails when a
// required secret is missing.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "release"),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),

		ProviderAPIKey:  strings.TrimSpace(os.Getenv("REALITY_DEFENDER_API_KEY")),
		ProviderBaseURL: strings.TrimRight(getEnv("REALITY_DEFENDER_BASE_URL", DefaultProviderBaseURL), "/"),
		APIKey:          strings.TrimSpace(os.Getenv("API_KEY")),

		UploadDir:      getEnv("UPLOAD_DIR", DefaultUploadDir),
		MaxAttempts:    getInt("DETECT_MAX_ATTEMPTS", DefaultMaxAttempts),
		RetryDelay:     getDuration("DETECT_RETRY_DELAY", DefaultRetryDelay),
		AttemptTimeout: getDuration("DETECT_ATTEMPT_TIMEOUT", DefaultAttemptTimeout),
		PollInterval:   getDuration("DETECT_POLL_INTERVAL", DefaultPollInterval),

		LanguageDetector: strings.ToLower(getEnv("LANGUAGE_DETECTOR", LanguageDetectorStub)),
		GeminiAPIKey:     strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:      getEnv("GEMINI_MODEL", DefaultGeminiModel),

		SweepSchedule: getEnv("SCRATCH_SWEEP_SCHEDULE", DefaultSweepSchedule),
		ScratchMaxAge: getDuration("SCRATCH_MAX_AGE", DefaultScratchMaxAge),

		KafkaBrokers: splitList(os.Getenv("KAFKA_BOOTSTRAP_SERVERS")),
		KafkaTopic:   getEnv("KAFKA_DETECTION_TOPIC", DefaultDetectionTopic),

		CORSAllowOrigins: splitList(getEnv("CORS_ALLOW_ORIGINS", "*")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required settings
func (c *Config) Validate() error {
	var missing []string
	if c.ProviderAPIKey == "" {
		missing = append(missing, "REALITY_DEFENDER_API_KEY")
	}
	if c.APIKey == "" {
		missing = append(missing, "API_KEY")
	}
	if c.LanguageDetector == LanguageDetectorGemini && c.GeminiAPIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env: %s", strings.Join(missing, ", "))
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("DETECT_MAX_ATTEMPTS must be at least 1, got %d", c.MaxAttempts)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		log.Printf("⚠️  Ignoring invalid %s=%q: %v", key, val, err)
		return defaultVal
	}
	return n
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		log.Printf("⚠️  Ignoring invalid %s=%q: %v", key, val, err)
		return defaultVal
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
