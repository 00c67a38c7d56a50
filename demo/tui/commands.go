package tui

import (
	"time"

	"voiceguard/demo/client"

	tea "github.com/charmbracelet/bubbletea"
)

// checkHealth creates a command that probes the server
func checkHealth(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		h, err := c.Health()
		return HealthMsg{Health: h, Err: err}
	}
}

// runDetection creates a command that uploads the file and waits for the verdict
func runDetection(c *client.Client, path string) tea.Cmd {
	return func() tea.Msg {
		res, err := c.Detect(path)
		return DetectDoneMsg{Response: res, Err: err}
	}
}

// tickCmd creates a command that ticks every 500ms
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}
