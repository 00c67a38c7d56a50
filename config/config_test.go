package config

import (
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("REALITY_DEFENDER_API_KEY", "rd-key")
	t.Setenv("API_KEY", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	for _, k := range []string{"PORT", "DETECT_MAX_ATTEMPTS", "DETECT_RETRY_DELAY", "LANGUAGE_DETECTOR", "KAFKA_BOOTSTRAP_SERVERS", "CORS_ALLOW_ORIGINS", "REALITY_DEFENDER_BASE_URL"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" || cfg.MaxAttempts != DefaultMaxAttempts || cfg.RetryDelay != DefaultRetryDelay {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.ProviderBaseURL != DefaultProviderBaseURL || cfg.LanguageDetector != LanguageDetectorStub {
		t.Fatalf("cfg = %+v", cfg)
	}
	if len(cfg.KafkaBrokers) != 0 {
		t.Fatalf("KafkaBrokers = %v; want none", cfg.KafkaBrokers)
	}
	if len(cfg.CORSAllowOrigins) != 1 || cfg.CORSAllowOrigins[0] != "*" {
		t.Fatalf("CORSAllowOrigins = %v", cfg.CORSAllowOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("DETECT_MAX_ATTEMPTS", "5")
	t.Setenv("DETECT_RETRY_DELAY", "250ms")
	t.Setenv("DETECT_POLL_INTERVAL", "not-a-duration")
	t.Setenv("KAFKA_BOOTSTRAP_SERVERS", " k1:9092, ,k2:9092 ")
	t.Setenv("REALITY_DEFENDER_BASE_URL", "http://localhost:9000/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxAttempts != 5 || cfg.RetryDelay != 250*time.Millisecond {
		t.Fatalf("retry = %d/%s", cfg.MaxAttempts, cfg.RetryDelay)
	}
	if cfg.PollInterval != DefaultPollInterval {
		t.Fatalf("invalid duration should fall back, got %s", cfg.PollInterval)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "k2:9092" {
		t.Fatalf("KafkaBrokers = %v", cfg.KafkaBrokers)
	}
	if cfg.ProviderBaseURL != "http://localhost:9000" {
		t.Fatalf("ProviderBaseURL = %q", cfg.ProviderBaseURL)
	}
}

func TestLoadMissingSecrets(t *testing.T) {
	t.Setenv("REALITY_DEFENDER_API_KEY", "")
	t.Setenv("API_KEY", " ")
	t.Setenv("LANGUAGE_DETECTOR", "gemini")
	t.Setenv("GEMINI_API_KEY", "")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error")
	}
	for _, want := range []string{"REALITY_DEFENDER_API_KEY", "API_KEY", "GEMINI_API_KEY"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %s", err, want)
		}
	}
}

func TestValidateMaxAttempts(t *testing.T) {
	setRequired(t)
	t.Setenv("DETECT_MAX_ATTEMPTS", "0")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for zero attempts")
	}
}
