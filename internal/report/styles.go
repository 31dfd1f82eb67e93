package report

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/probekit/speechprobe/internal/probe"
)

var (
	styleConfirmed = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	styleNoSpeech  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	styleDenied    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	styleName      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// colorCapable reports whether the terminal renders ANSI color at all
func colorCapable() bool {
	return termenv.ColorProfile() != termenv.Ascii
}

func styleLine(status probe.Status, line string) string {
	if !colorCapable() {
		return line
	}
	switch status {
	case probe.Confirmed:
		return styleConfirmed.Render(line)
	case probe.NoSpeech:
		return styleNoSpeech.Render(line)
	default:
		return styleDenied.Render(line)
	}
}

func styleProvider(name string, noColor bool) string {
	label := "[" + name + "]"
	if noColor || !colorCapable() {
		return label
	}
	return styleName.Render(label)
}
