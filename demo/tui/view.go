package tui

import (
	"strings"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	title := "🎙️  Voice Detection Demo"
	if m.Service != "" {
		title += " · " + m.Service
	}
	b.WriteString(TitleStyle.Render(title))
	b.WriteString("\n\n")

	b.WriteString(m.getStateText())
	b.WriteString("\n\n")

	if len(m.Logs) > 0 {
		b.WriteString(InfoStyle.Render("📝 Recent Activity:"))
		b.WriteString("\n")
		for _, logMsg := range m.Logs {
			b.WriteString(InfoStyle.Render("   " + logMsg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.State == StateComplete && m.Response != nil {
		b.WriteString(BoxStyle.Render(m.formatResult()))
		b.WriteString("\n\n")
	}

	switch {
	case m.State == StateError && !m.Connected:
		b.WriteString(InfoStyle.Render(TextFooterDisconnected))
	case m.canUpload():
		b.WriteString(InfoStyle.Render(TextFooterReady))
	default:
		b.WriteString(InfoStyle.Render(TextFooterBusy))
	}
	return b.String()
}
