package leaktest

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVerify_JoinedGoroutines(t *testing.T) {
	Verify(t, func() {
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				time.Sleep(time.Millisecond)
			}()
		}
		wg.Wait()
	})
}

func TestLeaked_DetectsBlockedGoroutine(t *testing.T) {
	s := Take(t)

	release := make(chan struct{})
	go func() { <-release }()

	assert.Equal(t, 1, s.Leaked(0, 50*time.Millisecond))
	assert.Zero(t, s.Leaked(1, 50*time.Millisecond), "within tolerance")

	close(release)
	assert.Zero(t, s.Leaked(0, time.Second))
}

func TestLeaked_WaitsForSlowExit(t *testing.T) {
	s := Take(t)

	go func() { time.Sleep(30 * time.Millisecond) }()

	assert.Zero(t, s.Leaked(0, time.Second))
}
