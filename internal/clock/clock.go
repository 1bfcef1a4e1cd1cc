// Package clock supplies wall time and the ledger height used as the
// randomness checkpoint.
package clock

import (
	"sync"
	"time"
)

// Clock abstracts time so lifecycle windows can be tested deterministically
type Clock interface {
	// Now returns the current time
	Now() time.Time
	// Height returns the current ledger height. It never decreases.
	Height() uint64
}

// RealClock uses system time. Height is one per elapsed second since the Unix epoch.
type RealClock struct{}

// NewRealClock creates a new RealClock instance
func NewRealClock() *RealClock {
	return &RealClock{}
}

// Now returns the current system time
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// Height returns the current Unix second
func (c *RealClock) Height() uint64 {
	return heightAt(time.Now())
}

// SimulatedClock is a manually driven clock. Height follows Now.
type SimulatedClock struct {
	mu      sync.RWMutex
	current time.Time
}

// NewSimulatedClock creates a SimulatedClock starting at start
func NewSimulatedClock(start time.Time) *SimulatedClock {
	return &SimulatedClock{current: start}
}

// Now returns the simulated time
func (c *SimulatedClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Height returns the simulated ledger height
func (c *SimulatedClock) Height() uint64 {
	return heightAt(c.Now())
}

// Advance moves the simulated time forward by d
func (c *SimulatedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}

// Set moves the simulated time to t. Moving backwards is ignored so height stays monotone.
func (c *SimulatedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t.After(c.current) {
		c.current = t
	}
}

func heightAt(t time.Time) uint64 {
	s := t.Unix()
	if s < 0 {
		return 0
	}
	return uint64(s)
}
