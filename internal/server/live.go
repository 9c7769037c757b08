package server

import (
	"sync"

	"github.com/tebakkabupaten/mapquiz/internal/quiz"
	"github.com/tebakkabupaten/mapquiz/internal/stopwatch"
)

// LiveSession couples one quiz session with its stopwatch. The mutex
// serializes clicks so they are processed strictly in arrival order; clicks
// after the terminal state fall through as silent no-ops inside the quiz
// core.
type LiveSession struct {
	ID       string
	Province string
	Quiz     *quiz.Session
	Watch    *stopwatch.Stopwatch

	mu    sync.Mutex
	saved bool
}

// Begin (re)starts the session. Timed modes also restart the stopwatch.
func (s *LiveSession) Begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Quiz.Begin()
	s.saved = false
	if s.Quiz.Mode().Timed() {
		s.Watch.Reset()
		s.Watch.Start()
	}
}

// Click submits an area click, applies any time penalty, and stops the
// stopwatch when the session ends.
func (s *LiveSession) Click(area string) quiz.ClickResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.Quiz.SubmitClick(area)
	if !res.Accepted {
		return res
	}
	if res.PenaltySeconds > 0 {
		s.Watch.AddPenalty(res.PenaltySeconds)
	}
	if res.Done {
		s.Watch.Stop()
	}
	return res
}

// markSaved flips the saved flag and reports whether this call was the
// first, so history is persisted exactly once per playthrough.
func (s *LiveSession) markSaved() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saved {
		return false
	}
	s.saved = true
	return true
}

// LiveCampaign couples a survival campaign with the stopwatch that spans
// each province's sub-session.
type LiveCampaign struct {
	ID       string
	Campaign *quiz.Campaign
	Watch    *stopwatch.Stopwatch

	mu sync.Mutex
}

// BeginProvince starts the sub-session for the current province and
// restarts the stopwatch for it.
func (c *LiveCampaign) BeginProvince(areas []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Campaign.BeginProvince(areas)
	c.Watch.Reset()
	c.Watch.Start()
}

// Click submits an area click against the running sub-session. The
// stopwatch reading at the moment of a terminal click is what gets recorded
// into the province result.
func (c *LiveCampaign) Click(area string) quiz.ClickResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	res := c.Campaign.SubmitClick(area, c.Watch.Elapsed())
	if res.Done {
		c.Watch.Stop()
	}
	return res
}

// Advance moves to the next province after a completed sub-session.
func (c *LiveCampaign) Advance() (next string, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Campaign.Advance()
}
