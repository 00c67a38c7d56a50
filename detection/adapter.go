package detection

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"voiceguard/types"
)

// Provider submits an audio file to the detection service and returns its
// raw, loosely typed response.
type Provider interface {
	DetectFile(ctx context.Context, path string) (any, error)
}

// ProviderFactory builds a fresh provider client. It is called once per attempt.
type ProviderFactory func() (Provider, error)

// RetryConfig controls the adapter retry loop
type RetryConfig struct {
	MaxAttempts    int
	Delay          time.Duration
	AttemptTimeout time.Duration // zero disables the per-attempt timeout
}

// Adapter calls the provider with bounded retry and normalizes its response
type Adapter struct {
	newProvider ProviderFactory
	cfg         RetryConfig

	// Sleep waits between attempts; tests replace it.
	Sleep func(ctx context.Context, d time.Duration) error
}

// NewAdapter creates an adapter. Non-positive MaxAttempts falls back to 1.
func NewAdapter(factory ProviderFactory, cfg RetryConfig) *Adapter {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &Adapter{
		newProvider: factory,
		cfg:         cfg,
		Sleep:       sleepContext,
	}
}

// Detect runs the provider against the file at path and returns the
// normalized result. After MaxAttempts failures it returns *ExhaustedError.
func (a *Adapter) Detect(ctx context.Context, path string, lang types.LanguageInfo) (types.DetectionResult, error) {
	raw, err := a.call(ctx, path)
	if err != nil {
		return types.DetectionResult{}, err
	}
	return Normalize(raw, lang), nil
}

func (a *Adapter) call(ctx context.Context, path string) (any, error) {
	var (
		lastErr error
		made    int
	)
	for attempt := 1; attempt <= a.cfg.MaxAttempts; attempt++ {
		log.Printf("🔄 Attempt %d/%d", attempt, a.cfg.MaxAttempts)

		made = attempt
		raw, err := a.attempt(ctx, path)
		if err == nil {
			log.Printf("✅ Detection complete")
			return raw, nil
		}
		lastErr = err
		log.Printf("⚠️  Attempt %d failed: %v", attempt, err)

		if ctx.Err() != nil {
			break
		}
		if attempt < a.cfg.MaxAttempts {
			log.Printf("🔄 Retrying in %s...", a.cfg.Delay)
			if err := a.Sleep(ctx, a.cfg.Delay); err != nil {
				lastErr = fmt.Errorf("%w (retry aborted: %v)", lastErr, err)
				break
			}
		}
	}
	return nil, &ExhaustedError{Attempts: made, Last: lastErr}
}

func (a *Adapter) attempt(ctx context.Context, path string) (any, error) {
	p, err := a.newProvider()
	if err != nil {
		return nil, fmt.Errorf("create provider client: %w", err)
	}
	if p == nil {
		return nil, errors.New("create provider client: nil provider")
	}

	if a.cfg.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.AttemptTimeout)
		defer cancel()
	}
	return p.DetectFile(ctx, path)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
