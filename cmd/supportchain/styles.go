package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// styles holds the styled components for chain output.
type styles struct {
	header     lipgloss.Style
	stageLabel lipgloss.Style
	errText    lipgloss.Style
	muted      lipgloss.Style
}

// newStyles builds the style set. With colored false every style is a
// no-op so piped output stays clean.
func newStyles(colored bool) styles {
	if !colored {
		plain := lipgloss.NewStyle()
		return styles{header: plain, stageLabel: plain, errText: plain, muted: plain}
	}
	return styles{
		header:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		stageLabel: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		errText:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		muted:      lipgloss.NewStyle().Faint(true),
	}
}

// colorEnabled reports whether stdout wants ANSI styling.
func colorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
