package viewer

import "github.com/charmbracelet/lipgloss"

var (
	cursorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#7AA2F7")).Bold(true)
	lineNumberStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#565F89"))
	selectionStyle  = lipgloss.NewStyle().Reverse(true)
	statusStyle     = lipgloss.NewStyle().Bold(true)
	messageStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0AF68"))
)
