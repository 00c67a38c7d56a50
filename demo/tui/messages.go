package tui

import (
	"time"

	"voiceguard/demo/client"
)

// HealthMsg is sent when the health check completes
type HealthMsg struct {
	Health *client.HealthResponse
	Err    error
}

// DetectDoneMsg is sent when the upload returns
type DetectDoneMsg struct {
	Response *client.DetectResponse
	Err      error
}

// TickMsg refreshes the elapsed time while a detection runs
type TickMsg struct {
	Time time.Time
}
