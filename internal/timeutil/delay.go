package timeutil

import (
	"math"
	"sync"
	"time"
)

// maxChunk is the longest single wait the chain will schedule. Timer
// primitives on several platforms cap out near 24.8 days (2^31-1 ms), so
// anything longer runs as a sequence of shorter waits.
const maxChunk = time.Duration(math.MaxInt32) * time.Millisecond

// LongTimer fires a callback after an arbitrarily long delay by chaining
// bounded waits. One Stop call cancels the whole chain.
type LongTimer struct {
	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// AfterLong schedules fn to run once d has elapsed. The returned LongTimer
// must be stopped if the callback is no longer wanted.
func AfterLong(d time.Duration, fn func()) *LongTimer {
	lt := &LongTimer{}
	lt.schedule(d, fn)
	return lt
}

func (lt *LongTimer) schedule(remaining time.Duration, fn func()) {
	lt.mu.Lock()
	defer lt.mu.Unlock()
	if lt.stopped {
		return
	}

	if remaining <= maxChunk {
		lt.timer = time.AfterFunc(remaining, fn)
		return
	}
	lt.timer = time.AfterFunc(maxChunk, func() {
		lt.schedule(remaining-maxChunk, fn)
	})
}

// Stop cancels the chain. It reports whether the callback was prevented
// from running.
func (lt *LongTimer) Stop() bool {
	lt.mu.Lock()
	defer lt.mu.Unlock()
	if lt.stopped {
		return false
	}
	lt.stopped = true
	if lt.timer == nil {
		return false
	}
	return lt.timer.Stop()
}
