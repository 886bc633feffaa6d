package model

import (
	"fmt"
	"strings"
	"time"
)

// Mode identifies one of the three Pomodoro presets.
type Mode string

const (
	ModeFocus      Mode = "focus"
	ModeShortBreak Mode = "short_break"
	ModeLongBreak  Mode = "long_break"
)

// Valid reports whether mode is one of the known presets.
func (mode Mode) Valid() bool {
	switch mode {
	case ModeFocus, ModeShortBreak, ModeLongBreak:
		return true
	default:
		return false
	}
}

// IsBreak reports whether mode is a short or long break.
func (mode Mode) IsBreak() bool {
	return mode == ModeShortBreak || mode == ModeLongBreak
}

// Label returns the human readable mode name.
func (mode Mode) Label() string {
	switch mode {
	case ModeFocus:
		return "Focus"
	case ModeShortBreak:
		return "Short Break"
	case ModeLongBreak:
		return "Long Break"
	default:
		return string(mode)
	}
}

// ParseMode accepts the flag spellings used on the command line.
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "focus", "pomodoro", "work":
		return ModeFocus, nil
	case "short", "short_break", "short-break":
		return ModeShortBreak, nil
	case "long", "long_break", "long-break":
		return ModeLongBreak, nil
	default:
		return "", fmt.Errorf("unknown mode %q", value)
	}
}

// Presets holds the canonical duration of each mode.
type Presets struct {
	Focus      time.Duration
	ShortBreak time.Duration
	LongBreak  time.Duration
}

// Duration returns the canonical duration for mode, or zero for an unknown mode.
func (presets Presets) Duration(mode Mode) time.Duration {
	switch mode {
	case ModeFocus:
		return presets.Focus
	case ModeShortBreak:
		return presets.ShortBreak
	case ModeLongBreak:
		return presets.LongBreak
	default:
		return 0
	}
}

// ModeForMinutes maps a preset button value (25, 5 or 15) to its mode.
func (presets Presets) ModeForMinutes(minutes int) (Mode, bool) {
	value := time.Duration(minutes) * time.Minute
	switch value {
	case presets.Focus:
		return ModeFocus, true
	case presets.ShortBreak:
		return ModeShortBreak, true
	case presets.LongBreak:
		return ModeLongBreak, true
	default:
		return "", false
	}
}

// Config contains runtime settings for the Pomodoro cycle.
type Config struct {
	Presets Presets

	// FocusCredit is added to the focus total on every completed focus
	// session, independent of the duration that session actually ran.
	FocusCredit time.Duration

	// LongBreakEvery selects a long break when the session count is a
	// multiple of it.
	LongBreakEvery int
}

// DefaultConfig returns the classic 25/5/15 cycle.
func DefaultConfig() Config {
	return Config{
		Presets: Presets{
			Focus:      25 * time.Minute,
			ShortBreak: 5 * time.Minute,
			LongBreak:  15 * time.Minute,
		},
		FocusCredit:    25 * time.Minute,
		LongBreakEvery: 4,
	}
}
