package timekeeper

import (
	"sync"
	"time"
)

// Scheduler registers timed callbacks. The returned cancel functions must be
// safe to call more than once and must not block on a running callback.
type Scheduler interface {
	Every(interval time.Duration, task func()) (cancel func())
	After(delay time.Duration, task func()) (cancel func())
}

type tickerScheduler struct{}

// NewScheduler returns a Scheduler backed by time.Ticker and time.AfterFunc.
func NewScheduler() Scheduler {
	return tickerScheduler{}
}

func (tickerScheduler) Every(interval time.Duration, task func()) func() {
	stopCh := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				task()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stopCh)
		})
	}
}

func (tickerScheduler) After(delay time.Duration, task func()) func() {
	timer := time.AfterFunc(delay, task)
	return func() {
		timer.Stop()
	}
}
