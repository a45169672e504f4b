package countdown

import (
	"sync"
	"time"
)

// Engine emits a Snapshot once per second while a countdown view is active.
// The zero crossing is sticky: when the target date arrives mid-session the
// engine emits one terminal "arrived" snapshot and stops ticking instead of
// counting back up. Stop releases the ticker on view teardown.
type Engine struct {
	target time.Time
	now    func() time.Time

	c        chan Snapshot
	stopOnce sync.Once
	stop     chan struct{}
}

func NewEngine(target time.Time) *Engine {
	return newEngine(target, time.Now)
}

func newEngine(target time.Time, now func() time.Time) *Engine {
	e := &Engine{
		target: target,
		now:    now,
		c:      make(chan Snapshot, 1),
		stop:   make(chan struct{}),
	}
	go e.run()
	return e
}

// C delivers one snapshot per second. The channel closes after the terminal
// "arrived" snapshot or after Stop.
func (e *Engine) C() <-chan Snapshot {
	return e.c
}

func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		close(e.stop)
	})
}

func (e *Engine) run() {
	defer close(e.c)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	// Immediate first snapshot so the view never renders empty.
	if done := e.emit(); done {
		return
	}

	for {
		select {
		case <-e.stop:
			return
		case <-ticker.C:
			if done := e.emit(); done {
				return
			}
		}
	}
}

// emit pushes the current snapshot; returns true once the target has arrived.
func (e *Engine) emit() bool {
	snap := Remaining(e.target, e.now())

	select {
	case e.c <- snap:
	case <-e.stop:
		return true
	}

	return snap.IsPast || (snap.Days == 0 && snap.Hours == 0 && snap.Minutes == 0 && snap.Seconds == 0)
}
