package terminal

import (
	"pomodoro/internal/core/model"

	"github.com/charmbracelet/lipgloss"
)

var (
	focusColor      = lipgloss.Color("#E5534B")
	shortBreakColor = lipgloss.Color("#57AB5A")
	longBreakColor  = lipgloss.Color("#539BF5")
	subtleColor     = lipgloss.AdaptiveColor{Light: "#6E7781", Dark: "#768390"}
	flashColor      = lipgloss.Color("#E8BE42")

	tabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(subtleColor)

	clockStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(1, 0).
			Align(lipgloss.Center)

	statusStyle = lipgloss.NewStyle().
			Italic(true)

	sessionStyle = lipgloss.NewStyle().
			Foreground(subtleColor)

	noticeStyle = lipgloss.NewStyle().
			Foreground(subtleColor).
			Faint(true)

	frameStyle = lipgloss.NewStyle().
			Padding(1, 3)
)

func modeColor(mode model.Mode) lipgloss.TerminalColor {
	switch mode {
	case model.ModeShortBreak:
		return shortBreakColor
	case model.ModeLongBreak:
		return longBreakColor
	default:
		return focusColor
	}
}

func activeTabStyle(mode model.Mode) lipgloss.Style {
	return tabStyle.
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(modeColor(mode))
}
