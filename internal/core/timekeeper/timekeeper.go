package timekeeper

import (
	"errors"
	"log"
	"sync"
	"time"

	"pomodoro/internal/core/model"
)

var (
	// ErrUnknownMode is returned when switching to a mode that is not a preset.
	ErrUnknownMode = errors.New("unknown timer mode")
	// ErrUnknownPreset is returned for preset buttons other than 25, 5 and 15 minutes.
	ErrUnknownPreset = errors.New("unknown preset")
)

// Frame is everything a front end needs to draw the countdown.
type Frame struct {
	TimeText        string
	ProgressPercent float64
	Status          string
	Mode            model.Mode
	Running         bool
}

// SessionInfo is the completed-session counter shown next to the timer.
type SessionInfo struct {
	Session      int
	FocusMinutes int
}

// View receives render output. Implementations are called with the
// TimeKeeper lock held and must not call back into the TimeKeeper.
type View interface {
	Render(frame Frame)
	SetTitle(title string)
	SetSessionInfo(info SessionInfo)
	SetCompleteIndicator(active bool)
}

// Notifier plays the completion signal. Errors are logged and otherwise ignored.
type Notifier interface {
	PlayCompletionSound() error
}

// State is a point-in-time copy of the timer state.
type State struct {
	Mode         model.Mode
	Total        time.Duration
	Remaining    time.Duration
	Running      bool
	SessionCount int
	FocusMinutes int
	Status       string
}

// Config contains runtime options for TimeKeeper.
type Config struct {
	TickInterval      time.Duration
	CompleteIndicator time.Duration
	Scheduler         Scheduler
}

// TimeKeeper owns the Pomodoro countdown and its focus/break cycle.
type TimeKeeper struct {
	mu              sync.Mutex
	config          model.Config
	options         Config
	state           State
	generation      uint64
	flashGeneration uint64
	stopTick        func()
	stopIndicator   func()
	view            View
	notifier        Notifier
	events          []chan Event
	closed          bool
}

// New creates an idle TimeKeeper in focus mode.
func New(config model.Config, options Config) *TimeKeeper {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.CompleteIndicator <= 0 {
		options.CompleteIndicator = 500 * time.Millisecond
	}
	if options.Scheduler == nil {
		options.Scheduler = NewScheduler()
	}
	config = withDefaults(config)

	total := config.Presets.Duration(model.ModeFocus)
	return &TimeKeeper{
		config:  config,
		options: options,
		state: State{
			Mode:         model.ModeFocus,
			Total:        total,
			Remaining:    total,
			SessionCount: 1,
			Status:       statusIdle,
		},
	}
}

// withDefaults fills every unset field of config from model.DefaultConfig.
func withDefaults(config model.Config) model.Config {
	defaults := model.DefaultConfig()
	if config.Presets.Focus <= 0 {
		config.Presets.Focus = defaults.Presets.Focus
	}
	if config.Presets.ShortBreak <= 0 {
		config.Presets.ShortBreak = defaults.Presets.ShortBreak
	}
	if config.Presets.LongBreak <= 0 {
		config.Presets.LongBreak = defaults.Presets.LongBreak
	}
	if config.FocusCredit <= 0 {
		config.FocusCredit = defaults.FocusCredit
	}
	if config.LongBreakEvery <= 0 {
		config.LongBreakEvery = defaults.LongBreakEvery
	}
	return config
}

// SetView attaches the render target and pushes the current state to it.
func (keeper *TimeKeeper) SetView(view View) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.view = view
	if view != nil {
		view.SetSessionInfo(keeper.sessionInfoLocked())
		keeper.renderLocked()
	}
}

// SetNotifier injects the completion notifier.
func (keeper *TimeKeeper) SetNotifier(notifier Notifier) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.notifier = notifier
}

// Subscribe registers a new observer channel.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed {
		close(ch)
		return ch
	}
	keeper.events = append(keeper.events, ch)
	return ch
}

// Snapshot returns a copy of the current state.
func (keeper *TimeKeeper) Snapshot() State {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.state
}

// Start begins counting down. It does nothing if already running.
func (keeper *TimeKeeper) Start() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.startLocked()
}

// Pause stops the countdown at its current value.
func (keeper *TimeKeeper) Pause() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.pauseLocked() {
		keeper.renderLocked()
		keeper.emitStateLocked()
	}
}

// Toggle starts a stopped countdown or pauses a running one.
func (keeper *TimeKeeper) Toggle() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.state.Running {
		keeper.pauseLocked()
		keeper.renderLocked()
		keeper.emitStateLocked()
		return
	}
	keeper.startLocked()
}

// Reset stops the countdown and rewinds it to the full duration of the current mode.
func (keeper *TimeKeeper) Reset() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.pauseLocked()
	keeper.state.Remaining = keeper.state.Total
	keeper.state.Status = statusIdle
	keeper.renderLocked()
	keeper.emitStateLocked()
}

// SwitchMode selects mode and rewinds the countdown. A positive override
// replaces the preset duration for this run. Running state is left as is.
func (keeper *TimeKeeper) SwitchMode(mode model.Mode, override time.Duration) error {
	if !mode.Valid() {
		return ErrUnknownMode
	}
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.switchModeLocked(mode, override)
	keeper.state.Status = ReadyMessage(mode)
	keeper.renderLocked()
	keeper.emitStateLocked()
	return nil
}

// SelectPreset handles the preset buttons: 25, 5 or 15 minutes. The
// countdown is paused before switching.
func (keeper *TimeKeeper) SelectPreset(minutes int) error {
	mode, ok := keeper.config.Presets.ModeForMinutes(minutes)
	if !ok {
		return ErrUnknownPreset
	}
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.pauseLocked()
	keeper.switchModeLocked(mode, time.Duration(minutes)*time.Minute)
	keeper.state.Status = ReadyMessage(mode)
	keeper.renderLocked()
	keeper.emitStateLocked()
	return nil
}

// Shutdown cancels pending timers and closes all observer channels.
func (keeper *TimeKeeper) Shutdown() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed {
		return
	}
	keeper.pauseLocked()
	if keeper.stopIndicator != nil {
		keeper.stopIndicator()
		keeper.stopIndicator = nil
	}
	keeper.closed = true
	for _, ch := range keeper.events {
		close(ch)
	}
	keeper.events = nil
}

func (keeper *TimeKeeper) startLocked() {
	if keeper.state.Running || keeper.closed {
		return
	}
	keeper.state.Running = true
	keeper.state.Status = statusRunning
	keeper.generation++
	generation := keeper.generation
	keeper.stopTick = keeper.options.Scheduler.Every(keeper.options.TickInterval, func() {
		keeper.tick(generation)
	})
	keeper.renderLocked()
	keeper.emitStateLocked()
}

// pauseLocked reports whether the countdown was running.
func (keeper *TimeKeeper) pauseLocked() bool {
	if !keeper.state.Running {
		return false
	}
	keeper.state.Running = false
	keeper.state.Status = statusPaused
	if keeper.stopTick != nil {
		keeper.stopTick()
		keeper.stopTick = nil
	}
	return true
}

func (keeper *TimeKeeper) tick(generation uint64) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if !keeper.state.Running || generation != keeper.generation {
		return
	}

	keeper.state.Remaining -= time.Second
	if keeper.state.Remaining < 0 {
		keeper.state.Remaining = 0
	}
	keeper.renderLocked()
	keeper.emitLocked(keeper.eventLocked(EventTick))

	if keeper.state.Remaining <= 0 {
		keeper.completeLocked()
	}
}

func (keeper *TimeKeeper) completeLocked() {
	finished := keeper.state.Mode
	keeper.pauseLocked()

	if keeper.notifier != nil {
		if err := keeper.notifier.PlayCompletionSound(); err != nil {
			log.Printf("timekeeper: completion sound: %v", err)
			event := keeper.eventLocked(EventNotifyError)
			event.Message = err.Error()
			keeper.emitLocked(event)
		}
	}

	if finished == model.ModeFocus {
		keeper.state.SessionCount++
		keeper.state.FocusMinutes += int(keeper.config.FocusCredit / time.Minute)
		if keeper.view != nil {
			keeper.view.SetSessionInfo(keeper.sessionInfoLocked())
		}
	}

	message := CompletionMessage(finished)
	keeper.state.Status = message
	keeper.renderLocked()
	keeper.flashLocked()

	completed := keeper.eventLocked(EventComplete)
	completed.Message = message
	keeper.emitLocked(completed)

	keeper.autoAdvanceLocked(finished)
	keeper.renderLocked()
	keeper.emitStateLocked()
}

func (keeper *TimeKeeper) autoAdvanceLocked(finished model.Mode) {
	next := model.ModeFocus
	if finished == model.ModeFocus {
		next = model.ModeShortBreak
		if keeper.state.SessionCount%keeper.config.LongBreakEvery == 0 {
			next = model.ModeLongBreak
		}
	}
	keeper.switchModeLocked(next, 0)
}

func (keeper *TimeKeeper) switchModeLocked(mode model.Mode, override time.Duration) {
	total := keeper.config.Presets.Duration(mode)
	if override > 0 {
		total = override.Truncate(time.Second)
	}
	if total <= 0 {
		total = time.Second
	}
	keeper.state.Mode = mode
	keeper.state.Total = total
	keeper.state.Remaining = total
}

func (keeper *TimeKeeper) flashLocked() {
	if keeper.view == nil {
		return
	}
	if keeper.stopIndicator != nil {
		keeper.stopIndicator()
	}
	keeper.view.SetCompleteIndicator(true)

	keeper.flashGeneration++
	generation := keeper.flashGeneration
	keeper.stopIndicator = keeper.options.Scheduler.After(keeper.options.CompleteIndicator, func() {
		keeper.mu.Lock()
		defer keeper.mu.Unlock()
		if generation != keeper.flashGeneration {
			return
		}
		keeper.stopIndicator = nil
		if keeper.view != nil {
			keeper.view.SetCompleteIndicator(false)
		}
	})
}

func (keeper *TimeKeeper) renderLocked() {
	if keeper.view == nil {
		return
	}
	keeper.view.Render(Frame{
		TimeText:        FormatClock(keeper.state.Remaining),
		ProgressPercent: ProgressPercent(keeper.state.Total, keeper.state.Remaining),
		Status:          keeper.state.Status,
		Mode:            keeper.state.Mode,
		Running:         keeper.state.Running,
	})
	keeper.view.SetTitle(Title(keeper.state))
}

func (keeper *TimeKeeper) sessionInfoLocked() SessionInfo {
	return SessionInfo{
		Session:      keeper.state.SessionCount,
		FocusMinutes: keeper.state.FocusMinutes,
	}
}

func (keeper *TimeKeeper) eventLocked(eventType EventType) Event {
	return Event{
		Type:      eventType,
		Mode:      keeper.state.Mode,
		Remaining: keeper.state.Remaining,
		Total:     keeper.state.Total,
		Progress:  ProgressPercent(keeper.state.Total, keeper.state.Remaining),
		Running:   keeper.state.Running,
		Message:   keeper.state.Status,
		At:        time.Now(),
	}
}

func (keeper *TimeKeeper) emitStateLocked() {
	keeper.emitLocked(keeper.eventLocked(EventStateChange))
}

func (keeper *TimeKeeper) emitLocked(event Event) {
	for _, ch := range keeper.events {
		select {
		case ch <- event:
		default:
		}
	}
}
