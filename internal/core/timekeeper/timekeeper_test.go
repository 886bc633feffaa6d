package timekeeper_test

import (
	"testing"
	"time"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/core/timekeeper/timekeepertest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	keeper    *timekeeper.TimeKeeper
	scheduler *timekeepertest.ManualScheduler
	view      *timekeepertest.RecordingView
	notifier  *timekeepertest.CountingNotifier
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	scheduler := timekeepertest.NewManualScheduler()
	keeper := timekeeper.New(model.DefaultConfig(), timekeeper.Config{Scheduler: scheduler})
	view := &timekeepertest.RecordingView{}
	notifier := &timekeepertest.CountingNotifier{}
	keeper.SetView(view)
	keeper.SetNotifier(notifier)
	t.Cleanup(keeper.Shutdown)
	return &harness{keeper: keeper, scheduler: scheduler, view: view, notifier: notifier}
}

// completeFocus runs the current focus countdown to zero.
func (h *harness) completeFocus(t *testing.T) {
	t.Helper()
	state := h.keeper.Snapshot()
	require.Equal(t, model.ModeFocus, state.Mode)
	h.keeper.Start()
	h.scheduler.TickN(int(state.Remaining / time.Second))
}

func TestNew_Defaults(t *testing.T) {
	h := newHarness(t)
	state := h.keeper.Snapshot()

	assert.Equal(t, model.ModeFocus, state.Mode)
	assert.Equal(t, 25*time.Minute, state.Total)
	assert.Equal(t, 25*time.Minute, state.Remaining)
	assert.False(t, state.Running)
	assert.Equal(t, 1, state.SessionCount)
	assert.Equal(t, 0, state.FocusMinutes)
	assert.Equal(t, "Ready to start", state.Status)

	frame := h.view.LastFrame()
	assert.Equal(t, "25:00", frame.TimeText)
	assert.Equal(t, float64(0), frame.ProgressPercent)
	assert.Equal(t, timekeeper.DefaultTitle, h.view.LastTitle())
	assert.Equal(t, timekeeper.SessionInfo{Session: 1}, h.view.LastSession())
}

func TestNew_ZeroConfigUsesDefaults(t *testing.T) {
	scheduler := timekeepertest.NewManualScheduler()
	keeper := timekeeper.New(model.Config{}, timekeeper.Config{Scheduler: scheduler})
	t.Cleanup(keeper.Shutdown)

	state := keeper.Snapshot()
	assert.Equal(t, 25*time.Minute, state.Total)
	assert.Equal(t, 25*time.Minute, state.Remaining)

	keeper.Start()
	scheduler.Tick()
	state = keeper.Snapshot()
	assert.Equal(t, model.ModeFocus, state.Mode)
	assert.Equal(t, 25*time.Minute-time.Second, state.Remaining)

	scheduler.TickN(int(state.Remaining / time.Second))
	state = keeper.Snapshot()
	assert.Equal(t, model.ModeShortBreak, state.Mode)
	assert.Equal(t, 5*time.Minute, state.Total)
	assert.Equal(t, 2, state.SessionCount)
	assert.Equal(t, 25, state.FocusMinutes)

	require.NoError(t, keeper.SelectPreset(15))
	assert.Equal(t, model.ModeLongBreak, keeper.Snapshot().Mode)
}

func TestNew_PartialConfigKeepsSetFields(t *testing.T) {
	scheduler := timekeepertest.NewManualScheduler()
	keeper := timekeeper.New(model.Config{Presets: model.Presets{Focus: 10 * time.Second}}, timekeeper.Config{Scheduler: scheduler})
	t.Cleanup(keeper.Shutdown)

	keeper.Start()
	scheduler.TickN(10)

	state := keeper.Snapshot()
	assert.Equal(t, model.ModeShortBreak, state.Mode)
	assert.Equal(t, 5*time.Minute, state.Total)
	assert.Equal(t, 25, state.FocusMinutes)
}

func TestStart_TicksDecrement(t *testing.T) {
	h := newHarness(t)

	h.keeper.Start()
	h.scheduler.TickN(90)

	state := h.keeper.Snapshot()
	assert.True(t, state.Running)
	assert.Equal(t, 25*time.Minute-90*time.Second, state.Remaining)
	assert.Equal(t, "Focusing...", state.Status)
	assert.Equal(t, "23:30", h.view.LastFrame().TimeText)
	assert.Equal(t, "23:30 - 🍅 Focus | Pomodoro Timer", h.view.LastTitle())
	assert.InDelta(t, 6.0, h.view.LastFrame().ProgressPercent, 0.0001)
}

func TestStart_Idempotent(t *testing.T) {
	h := newHarness(t)

	h.keeper.Start()
	h.keeper.Start()
	assert.Equal(t, 1, h.scheduler.ActiveTickers())

	h.scheduler.Tick()
	assert.Equal(t, 25*time.Minute-time.Second, h.keeper.Snapshot().Remaining)
}

func TestPause_Idempotent(t *testing.T) {
	h := newHarness(t)

	h.keeper.Start()
	h.scheduler.TickN(3)
	h.keeper.Pause()
	once := h.keeper.Snapshot()
	h.keeper.Pause()

	assert.Equal(t, once, h.keeper.Snapshot())
	assert.False(t, once.Running)
	assert.Equal(t, "Paused", once.Status)
	assert.Equal(t, 0, h.scheduler.ActiveTickers())
	assert.Equal(t, timekeeper.DefaultTitle, h.view.LastTitle())
}

func TestPause_WhenIdleDoesNothing(t *testing.T) {
	h := newHarness(t)
	frames := len(h.view.Frames)

	h.keeper.Pause()

	assert.Equal(t, "Ready to start", h.keeper.Snapshot().Status)
	assert.Len(t, h.view.Frames, frames)
}

func TestPauseThenStart_ResumesWithoutJump(t *testing.T) {
	h := newHarness(t)

	h.keeper.Start()
	h.scheduler.TickN(10)
	h.keeper.Pause()
	h.scheduler.TickN(5)
	paused := h.keeper.Snapshot().Remaining

	h.keeper.Start()
	assert.Equal(t, paused, h.keeper.Snapshot().Remaining)
	h.scheduler.Tick()
	assert.Equal(t, paused-time.Second, h.keeper.Snapshot().Remaining)
}

func TestStaleTickIgnored(t *testing.T) {
	scheduler := timekeepertest.NewManualScheduler()
	var stale func()
	keeper := timekeeper.New(model.DefaultConfig(), timekeeper.Config{Scheduler: captureScheduler{scheduler, &stale}})
	t.Cleanup(keeper.Shutdown)

	keeper.Start()
	keeper.Pause()
	keeper.Start()

	// The first registration fires late, after it was cancelled.
	stale()
	assert.Equal(t, 25*time.Minute, keeper.Snapshot().Remaining)

	scheduler.Tick()
	assert.Equal(t, 25*time.Minute-time.Second, keeper.Snapshot().Remaining)
}

// captureScheduler keeps the first recurring task so the test can fire it
// after cancellation.
type captureScheduler struct {
	*timekeepertest.ManualScheduler
	first *func()
}

func (scheduler captureScheduler) Every(interval time.Duration, run func()) func() {
	if *scheduler.first == nil {
		*scheduler.first = run
	}
	return scheduler.ManualScheduler.Every(interval, run)
}

func TestReset(t *testing.T) {
	h := newHarness(t)

	h.keeper.Start()
	h.scheduler.TickN(42)
	h.keeper.Reset()

	state := h.keeper.Snapshot()
	assert.False(t, state.Running)
	assert.Equal(t, state.Total, state.Remaining)
	assert.Equal(t, "Ready to start", state.Status)
	assert.Equal(t, "25:00", h.view.LastFrame().TimeText)
	assert.Equal(t, 0, h.scheduler.ActiveTickers())
}

func TestReset_KeepsOverrideDuration(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.keeper.SwitchMode(model.ModeShortBreak, 90*time.Second))
	h.keeper.Start()
	h.scheduler.TickN(30)
	h.keeper.Reset()

	state := h.keeper.Snapshot()
	assert.Equal(t, model.ModeShortBreak, state.Mode)
	assert.Equal(t, 90*time.Second, state.Remaining)
}

func TestToggle(t *testing.T) {
	h := newHarness(t)

	h.keeper.Toggle()
	assert.True(t, h.keeper.Snapshot().Running)

	h.keeper.Toggle()
	assert.False(t, h.keeper.Snapshot().Running)
	assert.Equal(t, "Paused", h.keeper.Snapshot().Status)
}

func TestFocusCompletion_AdvancesToShortBreak(t *testing.T) {
	h := newHarness(t)

	h.keeper.Start()
	h.scheduler.TickN(1500)

	state := h.keeper.Snapshot()
	assert.False(t, state.Running)
	assert.Equal(t, model.ModeShortBreak, state.Mode)
	assert.Equal(t, 5*time.Minute, state.Total)
	assert.Equal(t, 5*time.Minute, state.Remaining)
	assert.Equal(t, 2, state.SessionCount)
	assert.Equal(t, 25, state.FocusMinutes)
	assert.Equal(t, "Great work! Time for a break.", state.Status)

	assert.Equal(t, 1, h.notifier.CallCount())
	assert.Equal(t, 0, h.scheduler.ActiveTickers())
	assert.Equal(t, timekeeper.SessionInfo{Session: 2, FocusMinutes: 25}, h.view.LastSession())
	assert.Equal(t, "05:00", h.view.LastFrame().TimeText)
	assert.Equal(t, timekeeper.DefaultTitle, h.view.LastTitle())
}

func TestCompletion_ExtraTicksAfterCompleteAreIgnored(t *testing.T) {
	h := newHarness(t)

	h.keeper.Start()
	h.scheduler.TickN(1600)

	state := h.keeper.Snapshot()
	assert.Equal(t, 5*time.Minute, state.Remaining)
	assert.Equal(t, 1, h.notifier.CallCount())
}

func TestBreakCompletion_ReturnsToFocusWithoutCounting(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.keeper.SelectPreset(5))
	h.keeper.Start()
	h.scheduler.TickN(300)

	state := h.keeper.Snapshot()
	assert.Equal(t, model.ModeFocus, state.Mode)
	assert.Equal(t, 25*time.Minute, state.Remaining)
	assert.Equal(t, 1, state.SessionCount)
	assert.Equal(t, 0, state.FocusMinutes)
	assert.Equal(t, "Break time is over. Back to work!", state.Status)
}

func TestLongBreakCompletion_Message(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.keeper.SelectPreset(15))
	h.keeper.Start()
	h.scheduler.TickN(900)

	state := h.keeper.Snapshot()
	assert.Equal(t, model.ModeFocus, state.Mode)
	assert.Equal(t, "Long break complete. Ready to focus!", state.Status)
}

func TestFocusCredit_IgnoresOverrideDuration(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.keeper.SwitchMode(model.ModeFocus, 10*time.Second))
	h.keeper.Start()
	h.scheduler.TickN(10)

	state := h.keeper.Snapshot()
	assert.Equal(t, 2, state.SessionCount)
	assert.Equal(t, 25, state.FocusMinutes)
}

func TestAutoAdvance_LongBreakWhenSessionCountIsMultipleOfFour(t *testing.T) {
	h := newHarness(t)
	var modes []model.Mode
	var counts []int

	for i := 0; i < 7; i++ {
		h.completeFocus(t)
		state := h.keeper.Snapshot()
		modes = append(modes, state.Mode)
		counts = append(counts, state.SessionCount)
		// Skip the break and go straight back to focus.
		require.NoError(t, h.keeper.SelectPreset(25))
	}

	assert.Equal(t, []int{2, 3, 4, 5, 6, 7, 8}, counts)
	assert.Equal(t, []model.Mode{
		model.ModeShortBreak,
		model.ModeShortBreak,
		model.ModeLongBreak,
		model.ModeShortBreak,
		model.ModeShortBreak,
		model.ModeShortBreak,
		model.ModeLongBreak,
	}, modes)
	assert.Equal(t, 175, h.keeper.Snapshot().FocusMinutes)
}

func TestAutoAdvance_LongBreakUsesCanonicalDuration(t *testing.T) {
	h := newHarness(t)

	for i := 0; i < 3; i++ {
		h.completeFocus(t)
		if i < 2 {
			require.NoError(t, h.keeper.SelectPreset(25))
		}
	}

	state := h.keeper.Snapshot()
	assert.Equal(t, 4, state.SessionCount)
	assert.Equal(t, model.ModeLongBreak, state.Mode)
	assert.Equal(t, 15*time.Minute, state.Total)
	assert.Equal(t, 15*time.Minute, state.Remaining)
	assert.Equal(t, "15:00", h.view.LastFrame().TimeText)
}

func TestFullCycle_ThroughBreaks(t *testing.T) {
	h := newHarness(t)
	var modes []model.Mode

	for i := 0; i < 6; i++ {
		state := h.keeper.Snapshot()
		h.keeper.Start()
		h.scheduler.TickN(int(state.Remaining / time.Second))
		modes = append(modes, h.keeper.Snapshot().Mode)
	}

	assert.Equal(t, []model.Mode{
		model.ModeShortBreak,
		model.ModeFocus,
		model.ModeShortBreak,
		model.ModeFocus,
		model.ModeLongBreak,
		model.ModeFocus,
	}, modes)
	assert.Equal(t, 4, h.keeper.Snapshot().SessionCount)
}

func TestSelectPreset(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.keeper.SelectPreset(5))

	state := h.keeper.Snapshot()
	assert.Equal(t, model.ModeShortBreak, state.Mode)
	assert.Equal(t, 300*time.Second, state.Total)
	assert.Equal(t, 300*time.Second, state.Remaining)
	assert.Equal(t, "Ready for short break", state.Status)
	assert.Equal(t, "05:00", h.view.LastFrame().TimeText)
}

func TestSelectPreset_PausesRunningTimer(t *testing.T) {
	h := newHarness(t)

	h.keeper.Start()
	h.scheduler.TickN(5)
	require.NoError(t, h.keeper.SelectPreset(15))

	state := h.keeper.Snapshot()
	assert.False(t, state.Running)
	assert.Equal(t, model.ModeLongBreak, state.Mode)
	assert.Equal(t, 15*time.Minute, state.Remaining)
	assert.Equal(t, "Ready for long break", state.Status)
	assert.Equal(t, 0, h.scheduler.ActiveTickers())
}

func TestSelectPreset_Unknown(t *testing.T) {
	h := newHarness(t)
	before := h.keeper.Snapshot()

	err := h.keeper.SelectPreset(10)

	require.ErrorIs(t, err, timekeeper.ErrUnknownPreset)
	assert.Equal(t, before, h.keeper.Snapshot())
}

func TestSwitchMode_Unknown(t *testing.T) {
	h := newHarness(t)

	err := h.keeper.SwitchMode(model.Mode("siesta"), 0)

	require.ErrorIs(t, err, timekeeper.ErrUnknownMode)
	assert.Equal(t, model.ModeFocus, h.keeper.Snapshot().Mode)
}

func TestSwitchMode_ReadyMessages(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.keeper.SwitchMode(model.ModeLongBreak, 0))
	assert.Equal(t, "Ready for long break", h.keeper.Snapshot().Status)
	assert.Equal(t, 15*time.Minute, h.keeper.Snapshot().Total)

	require.NoError(t, h.keeper.SwitchMode(model.ModeFocus, 0))
	assert.Equal(t, "Ready for focus", h.keeper.Snapshot().Status)
}

func TestSwitchMode_LeavesRunningStateAlone(t *testing.T) {
	h := newHarness(t)

	h.keeper.Start()
	require.NoError(t, h.keeper.SwitchMode(model.ModeShortBreak, 0))
	h.scheduler.Tick()

	state := h.keeper.Snapshot()
	assert.True(t, state.Running)
	assert.Equal(t, 5*time.Minute-time.Second, state.Remaining)
}

func TestNotifierFailure_DoesNotAbortCompletion(t *testing.T) {
	h := newHarness(t)
	h.notifier.Err = timekeepertest.ErrNoAudio
	events := h.keeper.Subscribe(4096)

	h.completeFocus(t)

	state := h.keeper.Snapshot()
	assert.Equal(t, model.ModeShortBreak, state.Mode)
	assert.Equal(t, 2, state.SessionCount)

	var notifyErrors int
	for len(events) > 0 {
		if event := <-events; event.Type == timekeeper.EventNotifyError {
			notifyErrors++
			assert.Equal(t, timekeepertest.ErrNoAudio.Error(), event.Message)
		}
	}
	assert.Equal(t, 1, notifyErrors)
}

func TestCompleteIndicator_ClearsAfterDelay(t *testing.T) {
	h := newHarness(t)

	h.completeFocus(t)
	assert.Equal(t, []bool{true}, h.view.Indicators)
	assert.Equal(t, []time.Duration{500 * time.Millisecond}, h.scheduler.PendingAfter())

	h.scheduler.FireAfter()
	assert.Equal(t, []bool{true, false}, h.view.Indicators)
	assert.Empty(t, h.scheduler.PendingAfter())
}

func TestEvents_CompletionSequence(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.keeper.SwitchMode(model.ModeFocus, 2*time.Second))
	events := h.keeper.Subscribe(16)

	h.keeper.Start()
	h.scheduler.TickN(2)

	var types []timekeeper.EventType
	for len(events) > 0 {
		types = append(types, (<-events).Type)
	}
	assert.Equal(t, []timekeeper.EventType{
		timekeeper.EventStateChange,
		timekeeper.EventTick,
		timekeeper.EventTick,
		timekeeper.EventComplete,
		timekeeper.EventStateChange,
	}, types)
}

func TestShutdown_ClosesSubscribers(t *testing.T) {
	h := newHarness(t)
	events := h.keeper.Subscribe(1)

	h.keeper.Start()
	h.keeper.Shutdown()

	for range events {
	}
	assert.False(t, h.keeper.Snapshot().Running)
	assert.Equal(t, 0, h.scheduler.ActiveTickers())

	h.keeper.Start()
	assert.False(t, h.keeper.Snapshot().Running)

	late := h.keeper.Subscribe(1)
	_, open := <-late
	assert.False(t, open)
}
