// Package timekeepertest provides deterministic collaborators for driving a
// TimeKeeper in tests without wall-clock waits.
package timekeepertest

import (
	"errors"
	"sync"
	"time"

	"pomodoro/internal/core/timekeeper"
)

type task struct {
	interval  time.Duration
	run       func()
	cancelled bool
}

// ManualScheduler records registrations and runs them only when told to.
// Tasks are executed on the calling goroutine without any internal lock held.
type ManualScheduler struct {
	mu        sync.Mutex
	recurring []*task
	oneShots  []*task
}

var _ timekeeper.Scheduler = (*ManualScheduler)(nil)

// NewManualScheduler returns an empty scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Every implements timekeeper.Scheduler.
func (scheduler *ManualScheduler) Every(interval time.Duration, run func()) func() {
	entry := &task{interval: interval, run: run}
	scheduler.mu.Lock()
	scheduler.recurring = append(scheduler.recurring, entry)
	scheduler.mu.Unlock()
	return scheduler.cancel(entry)
}

// After implements timekeeper.Scheduler.
func (scheduler *ManualScheduler) After(delay time.Duration, run func()) func() {
	entry := &task{interval: delay, run: run}
	scheduler.mu.Lock()
	scheduler.oneShots = append(scheduler.oneShots, entry)
	scheduler.mu.Unlock()
	return scheduler.cancel(entry)
}

// Tick fires every active recurring task once.
func (scheduler *ManualScheduler) Tick() {
	for _, entry := range scheduler.active(&scheduler.recurring) {
		entry.run()
	}
}

// TickN calls Tick n times.
func (scheduler *ManualScheduler) TickN(n int) {
	for i := 0; i < n; i++ {
		scheduler.Tick()
	}
}

// FireAfter runs every pending one-shot task and discards it.
func (scheduler *ManualScheduler) FireAfter() {
	pending := scheduler.active(&scheduler.oneShots)
	scheduler.mu.Lock()
	scheduler.oneShots = nil
	scheduler.mu.Unlock()
	for _, entry := range pending {
		entry.run()
	}
}

// ActiveTickers returns the number of recurring tasks that have not been cancelled.
func (scheduler *ManualScheduler) ActiveTickers() int {
	return len(scheduler.active(&scheduler.recurring))
}

// PendingAfter returns the delays of one-shot tasks that have not fired or been cancelled.
func (scheduler *ManualScheduler) PendingAfter() []time.Duration {
	var delays []time.Duration
	for _, entry := range scheduler.active(&scheduler.oneShots) {
		delays = append(delays, entry.interval)
	}
	return delays
}

func (scheduler *ManualScheduler) active(list *[]*task) []*task {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	var result []*task
	for _, entry := range *list {
		if !entry.cancelled {
			result = append(result, entry)
		}
	}
	return result
}

func (scheduler *ManualScheduler) cancel(entry *task) func() {
	return func() {
		scheduler.mu.Lock()
		entry.cancelled = true
		scheduler.mu.Unlock()
	}
}

// RecordingView captures everything a TimeKeeper renders.
type RecordingView struct {
	mu         sync.Mutex
	Frames     []timekeeper.Frame
	Titles     []string
	Sessions   []timekeeper.SessionInfo
	Indicators []bool
}

var _ timekeeper.View = (*RecordingView)(nil)

// Render implements timekeeper.View.
func (view *RecordingView) Render(frame timekeeper.Frame) {
	view.mu.Lock()
	defer view.mu.Unlock()
	view.Frames = append(view.Frames, frame)
}

// SetTitle implements timekeeper.View.
func (view *RecordingView) SetTitle(title string) {
	view.mu.Lock()
	defer view.mu.Unlock()
	view.Titles = append(view.Titles, title)
}

// SetSessionInfo implements timekeeper.View.
func (view *RecordingView) SetSessionInfo(info timekeeper.SessionInfo) {
	view.mu.Lock()
	defer view.mu.Unlock()
	view.Sessions = append(view.Sessions, info)
}

// SetCompleteIndicator implements timekeeper.View.
func (view *RecordingView) SetCompleteIndicator(active bool) {
	view.mu.Lock()
	defer view.mu.Unlock()
	view.Indicators = append(view.Indicators, active)
}

// LastFrame returns the most recent frame, or the zero Frame.
func (view *RecordingView) LastFrame() timekeeper.Frame {
	view.mu.Lock()
	defer view.mu.Unlock()
	if len(view.Frames) == 0 {
		return timekeeper.Frame{}
	}
	return view.Frames[len(view.Frames)-1]
}

// LastTitle returns the most recent title, or "".
func (view *RecordingView) LastTitle() string {
	view.mu.Lock()
	defer view.mu.Unlock()
	if len(view.Titles) == 0 {
		return ""
	}
	return view.Titles[len(view.Titles)-1]
}

// LastSession returns the most recent session info.
func (view *RecordingView) LastSession() timekeeper.SessionInfo {
	view.mu.Lock()
	defer view.mu.Unlock()
	if len(view.Sessions) == 0 {
		return timekeeper.SessionInfo{}
	}
	return view.Sessions[len(view.Sessions)-1]
}

// ErrNoAudio is a stand-in for an unavailable audio device.
var ErrNoAudio = errors.New("no audio device")

// CountingNotifier counts completion sounds and optionally fails.
type CountingNotifier struct {
	mu    sync.Mutex
	Calls int
	Err   error
}

// PlayCompletionSound implements timekeeper.Notifier.
func (notifier *CountingNotifier) PlayCompletionSound() error {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	notifier.Calls++
	return notifier.Err
}

// CallCount returns how many times the notifier was invoked.
func (notifier *CountingNotifier) CallCount() int {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	return notifier.Calls
}
