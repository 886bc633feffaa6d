package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, 25*time.Minute, config.Presets.Duration(ModeFocus))
	assert.Equal(t, 5*time.Minute, config.Presets.Duration(ModeShortBreak))
	assert.Equal(t, 15*time.Minute, config.Presets.Duration(ModeLongBreak))
	assert.Equal(t, 25*time.Minute, config.FocusCredit)
	assert.Equal(t, 4, config.LongBreakEvery)
}

func TestPresets_DurationUnknownMode(t *testing.T) {
	assert.Zero(t, DefaultConfig().Presets.Duration(Mode("nap")))
}

func TestPresets_ModeForMinutes(t *testing.T) {
	presets := DefaultConfig().Presets

	tests := []struct {
		minutes int
		mode    Mode
		ok      bool
	}{
		{25, ModeFocus, true},
		{5, ModeShortBreak, true},
		{15, ModeLongBreak, true},
		{10, "", false},
		{0, "", false},
	}
	for _, tt := range tests {
		mode, ok := presets.ModeForMinutes(tt.minutes)
		assert.Equal(t, tt.ok, ok, "minutes=%d", tt.minutes)
		assert.Equal(t, tt.mode, mode, "minutes=%d", tt.minutes)
	}
}

func TestParseMode(t *testing.T) {
	for input, want := range map[string]Mode{
		"focus":         ModeFocus,
		"Pomodoro":      ModeFocus,
		"short":         ModeShortBreak,
		" short-break ": ModeShortBreak,
		"long_break":    ModeLongBreak,
	} {
		got, err := ParseMode(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseMode("lunch")
	require.Error(t, err)
}

func TestMode_Predicates(t *testing.T) {
	assert.True(t, ModeFocus.Valid())
	assert.False(t, Mode("").Valid())
	assert.False(t, ModeFocus.IsBreak())
	assert.True(t, ModeShortBreak.IsBreak())
	assert.True(t, ModeLongBreak.IsBreak())
	assert.Equal(t, "Short Break", ModeShortBreak.Label())
}
