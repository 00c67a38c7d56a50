package tui

import (
	"fmt"
	"strings"
	"time"

	"voiceguard/demo/client"
	"voiceguard/types"

	tea "github.com/charmbracelet/bubbletea"
)

// State represents the application state machine
type State string

const (
	StateConnecting State = "connecting"
	StateIdle       State = "idle"
	StateUploading  State = "uploading"
	StateComplete   State = "complete"
	StateError      State = "error"
)

const maxLogs = 8

// Model represents the TUI client state
type Model struct {
	Client   *client.Client
	FilePath string

	State     State
	Service   string
	Connected bool
	Logs      []string
	Started   time.Time
	Now       time.Time
	Response  *client.DetectResponse
	Err       error
}

// NewModel creates a new TUI model for uploading filePath
func NewModel(c *client.Client, filePath string) Model {
	return Model{
		Client:   c,
		FilePath: filePath,
		State:    StateConnecting,
		Logs:     make([]string, 0, maxLogs),
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return checkHealth(m.Client)
}

// AddLog appends a timestamped activity line, keeping the most recent few
func (m Model) AddLog(msg string) Model {
	line := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), msg)
	m.Logs = append(m.Logs, line)
	if len(m.Logs) > maxLogs {
		m.Logs = m.Logs[len(m.Logs)-maxLogs:]
	}
	return m
}

// getStateText returns the appropriate state message
func (m Model) getStateText() string {
	switch m.State {
	case StateConnecting:
		return StatusStyle.Render("🔌 Connecting to server...")
	case StateIdle:
		if m.FilePath == "" {
			return HighlightStyle.Render("👋 Connected") + "\n\n" +
				InfoStyle.Render(TextNoFile)
		}
		return HighlightStyle.Render("👋 Ready to analyze!") + "\n\n" +
			InfoStyle.Render(fmt.Sprintf("File: %s", m.FilePath))
	case StateUploading:
		elapsed := m.Now.Sub(m.Started).Truncate(time.Second)
		if elapsed < 0 {
			elapsed = 0
		}
		return StatusStyle.Render(fmt.Sprintf("🔍 Analyzing audio... (%s)", elapsed))
	case StateComplete:
		return HighlightStyle.Render("✅ COMPLETE")
	case StateError:
		errMsg := "Unknown error"
		if m.Err != nil {
			errMsg = m.Err.Error()
		}
		return ErrorStyle.Render(fmt.Sprintf("❌ Error: %v", errMsg))
	default:
		return ""
	}
}

// formatResult formats the detection result for display
func (m Model) formatResult() string {
	det := m.Response.Detection
	var b strings.Builder

	verdict := HumanStyle.Render("🧑 HUMAN VOICE")
	if det.IsAIGenerated {
		verdict = AIStyle.Render("🤖 AI-GENERATED VOICE")
	}
	if det.Status == types.StatusError {
		verdict = WarnStyle.Render("⚠️  ANALYSIS ERROR")
	}
	b.WriteString(verdict)
	b.WriteString("\n\n")

	if m.Response.Filename != "" {
		b.WriteString(fmt.Sprintf("File:       %s\n", m.Response.Filename))
	}
	b.WriteString(fmt.Sprintf("Status:     %s\n", det.Status))
	b.WriteString(fmt.Sprintf("Confidence: %s%%\n", det.ConfidenceScore))
	b.WriteString(fmt.Sprintf("Request ID: %s\n", det.RequestID))
	if det.Error != "" {
		b.WriteString(ErrorStyle.Render(det.Error))
		b.WriteString("\n")
	}

	lang := det.LanguageInfo
	b.WriteString(fmt.Sprintf("\nLanguage:   %s (%s, %s)\n", lang.Language, lang.LanguageCode, lang.Confidence))
	if lang.Transcription != nil && *lang.Transcription != "" {
		b.WriteString(fmt.Sprintf("Transcript: %s\n", InfoStyle.Render(truncate(*lang.Transcription, 200))))
	}

	if rows := modelRows(det.Models); len(rows) > 0 {
		b.WriteString("\nModels:\n")
		for _, row := range rows {
			b.WriteString("  " + row + "\n")
		}
	}
	return b.String()
}

// modelRows renders per-model results decoded from JSON
func modelRows(models []any) []string {
	rows := make([]string, 0, len(models))
	for _, raw := range models {
		m, ok := raw.(map[string]any)
		if !ok {
			rows = append(rows, fmt.Sprint(raw))
			continue
		}
		score := "-"
		if s, ok := m["score"].(float64); ok {
			score = fmt.Sprintf("%.1f%%", s*100)
		}
		rows = append(rows, fmt.Sprintf("%-28v %-14v %s", m["name"], m["status"], score))
	}
	return rows
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
