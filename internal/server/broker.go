package server

import (
	"encoding/json"
	"sync"

	"github.com/tebakkabupaten/mapquiz/internal/quiz"
)

// SSEEvent is the payload published to a session's subscribers. Verdict
// events carry the recolor instruction for one area; prompt and lifecycle
// events carry the rest of the play state.
type SSEEvent struct {
	Type    string `json:"type"`
	Area    string `json:"area,omitempty"`
	Verdict string `json:"verdict,omitempty"`
	Prompt  string `json:"prompt,omitempty"`
}

// Broker is an in-process pub/sub for SSE events, keyed by session or
// campaign ID.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel that receives JSON-encoded SSE events for the
// given session.
func (b *Broker) Subscribe(id string) chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	if b.subs[id] == nil {
		b.subs[id] = make(map[chan []byte]struct{})
	}
	b.subs[id][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel from the session's subscribers.
func (b *Broker) Unsubscribe(id string, ch chan []byte) {
	b.mu.Lock()
	delete(b.subs[id], ch)
	if len(b.subs[id]) == 0 {
		delete(b.subs, id)
	}
	b.mu.Unlock()
}

// Publish sends an event to all subscribers of the given session.
func (b *Broker) Publish(id string, event SSEEvent) {
	data, _ := json.Marshal(event)
	b.mu.RLock()
	for ch := range b.subs[id] {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}

// publishClick fans a click result out as one verdict event per recolored
// area, followed by the next prompt or the terminal event.
func publishClick(b *Broker, id string, changed map[string]quiz.Verdict, state quiz.State, prompt string) {
	for area, verdict := range changed {
		b.Publish(id, SSEEvent{Type: "verdict", Area: area, Verdict: string(verdict)})
	}
	switch state {
	case quiz.StateFailed:
		b.Publish(id, SSEEvent{Type: "session_failed"})
	case quiz.StateComplete:
		b.Publish(id, SSEEvent{Type: "session_complete"})
	default:
		if prompt != "" {
			b.Publish(id, SSEEvent{Type: "prompt", Prompt: prompt})
		}
	}
}
