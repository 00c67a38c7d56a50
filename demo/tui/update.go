package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case HealthMsg:
		return m.handleHealth(msg)
	case DetectDoneMsg:
		return m.handleDetectDone(msg)
	case TickMsg:
		if m.State != StateUploading {
			return m, nil
		}
		m.Now = msg.Time
		return m, tickCmd()
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "u", "U", "enter":
		if m.canUpload() {
			return m.startUpload()
		}
	case "r", "R":
		if m.State == StateError && !m.Connected {
			m.State = StateConnecting
			return m, checkHealth(m.Client)
		}
	}
	return m, nil
}

func (m Model) canUpload() bool {
	if !m.Connected || m.FilePath == "" {
		return false
	}
	return m.State == StateIdle || m.State == StateComplete || m.State == StateError
}

func (m Model) startUpload() (tea.Model, tea.Cmd) {
	m.State = StateUploading
	m.Response = nil
	m.Err = nil
	m.Started = time.Now()
	m.Now = m.Started
	endpoint := "/detect"
	if m.Client.UsesAPI() {
		endpoint = "/api/detect"
	}
	m = m.AddLog(fmt.Sprintf("Uploading %s to %s", m.FilePath, endpoint))
	return m, tea.Batch(runDetection(m.Client, m.FilePath), tickCmd())
}

// handleHealth processes the health check result
func (m Model) handleHealth(msg HealthMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.Connected = false
		m.State = StateError
		m.Err = fmt.Errorf("server unavailable: %w", msg.Err)
		return m, nil
	}
	m.Connected = true
	m.Service = msg.Health.Service
	m.State = StateIdle
	m = m.AddLog(fmt.Sprintf("Connected to %s (%s)", m.Service, msg.Health.Status))
	return m, nil
}

// handleDetectDone processes the detection response
func (m Model) handleDetectDone(msg DetectDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		m = m.AddLog("Detection failed")
		return m, nil
	}
	m.Response = msg.Response
	m.State = StateComplete
	m = m.AddLog(fmt.Sprintf("Detection finished: %s (%s%%)",
		msg.Response.Detection.Status, msg.Response.Detection.ConfidenceScore))
	return m, nil
}
