// Package leaktest checks that background goroutines started by a test have
// exited by the time it finishes.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

// SettleTimeout bounds how long Check waits for goroutines to wind down
const SettleTimeout = 2 * time.Second

const pollInterval = 10 * time.Millisecond

// Snapshot records the goroutine count at a point in a test
type Snapshot struct {
	t      testing.TB
	before int
}

// Take records the current goroutine count
func Take(t testing.TB) *Snapshot {
	t.Helper()
	runtime.Gosched()
	return &Snapshot{t: t, before: runtime.NumGoroutine()}
}

// Leaked polls until the goroutine count drops to the snapshot plus tolerance
// and returns how many goroutines remain above it when time runs out.
func (s *Snapshot) Leaked(tolerance int, timeout time.Duration) int {
	deadline := time.Now().Add(timeout)
	for {
		over := runtime.NumGoroutine() - s.before - tolerance
		if over <= 0 {
			return 0
		}
		if time.Now().After(deadline) {
			return over
		}
		runtime.Gosched()
		time.Sleep(pollInterval)
	}
}

// Check fails the test when more than tolerance goroutines outlive the
// snapshot, dumping every stack to help locate the leak.
func (s *Snapshot) Check(tolerance int) {
	s.t.Helper()
	if over := s.Leaked(tolerance, SettleTimeout); over > 0 {
		buf := make([]byte, 1<<16)
		n := runtime.Stack(buf, true)
		s.t.Errorf("%d goroutine(s) leaked (baseline %d, tolerance %d)\n%s", over, s.before, tolerance, buf[:n])
	}
}

// Verify runs fn and requires every goroutine it started to exit
func Verify(t testing.TB, fn func()) {
	t.Helper()
	s := Take(t)
	fn()
	s.Check(0)
}
