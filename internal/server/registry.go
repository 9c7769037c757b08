package server

import (
	"sync"

	"github.com/google/uuid"

	"github.com/tebakkabupaten/mapquiz/internal/quiz"
	"github.com/tebakkabupaten/mapquiz/internal/stopwatch"
)

// Registry holds the live quiz sessions and survival campaigns, keyed by
// the opaque IDs handed to clients.
type Registry struct {
	mu        sync.RWMutex
	sessions  map[string]*LiveSession
	campaigns map[string]*LiveCampaign
}

func NewRegistry() *Registry {
	return &Registry{
		sessions:  make(map[string]*LiveSession),
		campaigns: make(map[string]*LiveCampaign),
	}
}

func (r *Registry) AddSession(province string, q *quiz.Session) *LiveSession {
	s := &LiveSession{
		ID:       uuid.NewString(),
		Province: province,
		Quiz:     q,
		Watch:    stopwatch.New(),
	}
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s
}

func (r *Registry) Session(id string) (*LiveSession, bool) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	return s, ok
}

func (r *Registry) AddCampaign(c *quiz.Campaign) *LiveCampaign {
	lc := &LiveCampaign{
		ID:       uuid.NewString(),
		Campaign: c,
		Watch:    stopwatch.New(),
	}
	r.mu.Lock()
	r.campaigns[lc.ID] = lc
	r.mu.Unlock()
	return lc
}

func (r *Registry) Campaign(id string) (*LiveCampaign, bool) {
	r.mu.RLock()
	c, ok := r.campaigns[id]
	r.mu.RUnlock()
	return c, ok
}
