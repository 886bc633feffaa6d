package timekeeper

import (
	"fmt"
	"time"

	"pomodoro/internal/core/model"
)

// DefaultTitle is shown whenever the countdown is not running.
const DefaultTitle = "Pomodoro Timer"

const (
	statusIdle    = "Ready to start"
	statusRunning = "Focusing..."
	statusPaused  = "Paused"
)

// FormatClock renders a duration as zero-padded MM:SS.
func FormatClock(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := int(remaining / time.Second)
	minutes := seconds / 60
	seconds = seconds % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// ProgressPercent returns how much of total has elapsed, in [0, 100].
func ProgressPercent(total, remaining time.Duration) float64 {
	if total <= 0 {
		return 0
	}
	progress := float64(total-remaining) / float64(total) * 100
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

// Title returns the external window title for a state.
func Title(state State) string {
	if !state.Running {
		return DefaultTitle
	}
	return fmt.Sprintf("%s - %s | %s", FormatClock(state.Remaining), titleLabel(state.Mode), DefaultTitle)
}

// CompletionMessage is the status shown when a countdown in mode finishes.
func CompletionMessage(mode model.Mode) string {
	switch mode {
	case model.ModeFocus:
		return "Great work! Time for a break."
	case model.ModeShortBreak:
		return "Break time is over. Back to work!"
	case model.ModeLongBreak:
		return "Long break complete. Ready to focus!"
	default:
		return "Session complete!"
	}
}

// ReadyMessage is the status shown right after switching to mode.
func ReadyMessage(mode model.Mode) string {
	switch mode {
	case model.ModeShortBreak:
		return "Ready for short break"
	case model.ModeLongBreak:
		return "Ready for long break"
	default:
		return "Ready for focus"
	}
}

func titleLabel(mode model.Mode) string {
	switch mode {
	case model.ModeFocus:
		return "🍅 Focus"
	case model.ModeShortBreak:
		return "☕ Short Break"
	case model.ModeLongBreak:
		return "🌴 Long Break"
	default:
		return mode.Label()
	}
}
