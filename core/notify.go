package core

import "time"

// wake is a single-slot completion notification, one per waiter role. The
// interrupt path raises it without ever blocking: if the slot is already
// full the pending notification has not been consumed yet, and with at most
// one transaction in flight per interface a second raise carries no extra
// information. A raised-but-unconsumed notification latches, so a slave
// message that arrives before the listener calls in again is not lost.
type wake chan struct{}

func newWake() wake { return make(wake, 1) }

// raise delivers the notification. Safe from interrupt context.
func (w wake) raise() {
	select {
	case w <- struct{}{}:
	default:
	}
}

// drain discards a stale notification before arming a new transaction.
func (w wake) drain() {
	select {
	case <-w:
	default:
	}
}

// wait blocks until the notification is raised. No timeout: master-mode
// callers trust the bus state machine to always reach a terminal state.
func (w wake) wait() { <-w }

// waitTimeout blocks up to d and reports whether the notification arrived.
// A negative d waits forever.
func (w wake) waitTimeout(d time.Duration) bool {
	if d < 0 {
		<-w
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-w:
		return true
	case <-t.C:
		return false
	}
}

// timedLock is a mutex with a bounded acquire, standing in for a counting
// semaphore taken with a tick timeout. It serializes task-side access to one
// bus instance; the interrupt path never takes it.
type timedLock chan struct{}

func newTimedLock() timedLock { return make(timedLock, 1) }

func (l timedLock) lock() { l <- struct{}{} }

// lockTimeout tries to acquire the lock within d and reports success.
func (l timedLock) lockTimeout(d time.Duration) bool {
	select {
	case l <- struct{}{}:
		return true
	default:
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case l <- struct{}{}:
		return true
	case <-t.C:
		return false
	}
}

func (l timedLock) unlock() { <-l }
