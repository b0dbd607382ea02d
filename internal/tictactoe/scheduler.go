package tictactoe

import "time"

// Scheduler runs f once after d unless the returned cancel func is called first.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) (cancel func())
}

type timerScheduler struct{}

func NewTimerScheduler() Scheduler {
	return timerScheduler{}
}

func (timerScheduler) AfterFunc(d time.Duration, f func()) func() {
	timer := time.AfterFunc(d, f)

	return func() {
		timer.Stop()
	}
}
