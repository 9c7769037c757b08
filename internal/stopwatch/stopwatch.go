// Package stopwatch provides the restartable elapsed-time counter that backs
// timed game modes.
package stopwatch

import (
	"fmt"
	"sync"
	"time"
)

// Stopwatch counts whole seconds while running. Start and Stop are
// idempotent; AddPenalty adjusts the count without touching the running
// state. Safe for concurrent use.
type Stopwatch struct {
	mu       sync.Mutex
	seconds  int
	running  bool
	quit     chan struct{}
	interval time.Duration
}

func New() *Stopwatch {
	return &Stopwatch{interval: time.Second}
}

// newWithInterval exists for tests that cannot wait on real seconds.
func newWithInterval(d time.Duration) *Stopwatch {
	return &Stopwatch{interval: d}
}

// Start resumes counting. No-op while already running.
func (s *Stopwatch) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.quit = make(chan struct{})
	go s.tick(s.quit)
}

func (s *Stopwatch) tick(quit chan struct{}) {
	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		select {
		case <-quit:
			return
		case <-t.C:
			// A tick can be pending while Stop holds the mutex; re-check
			// quit under the lock so no increment lands after Stop returns.
			s.mu.Lock()
			select {
			case <-quit:
			default:
				s.seconds++
			}
			s.mu.Unlock()
		}
	}
}

// Stop pauses counting. No-op while already stopped.
func (s *Stopwatch) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Stopwatch) stopLocked() {
	if !s.running {
		return
	}
	s.running = false
	close(s.quit)
	s.quit = nil
}

// Reset stops the stopwatch and zeroes the elapsed time.
func (s *Stopwatch) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	s.seconds = 0
}

// AddPenalty adds n seconds to the elapsed time immediately.
func (s *Stopwatch) AddPenalty(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seconds += n
}

// Elapsed returns the current whole-second count.
func (s *Stopwatch) Elapsed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seconds
}

// Running reports whether the stopwatch is counting.
func (s *Stopwatch) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Format renders seconds as zero-padded "mm:ss". There is no hour rollover:
// 3661 seconds formats as "61:01".
func Format(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
