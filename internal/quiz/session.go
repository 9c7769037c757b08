package quiz

import "math/rand/v2"

// State is the lifecycle of a Session.
type State string

const (
	StateIdle       State = "idle"
	StateInProgress State = "in_progress"
	StateComplete   State = "complete"
	StateFailed     State = "failed"
)

// Terminal reports whether no further transitions are accepted.
func (s State) Terminal() bool { return s == StateComplete || s == StateFailed }

// ClickResult describes the outcome of a single click. Changed holds only
// the verdicts that this click added, so the UI can recolor exactly those
// areas.
type ClickResult struct {
	// Accepted is false when the click was silently ignored: session not in
	// progress, the area already has a verdict, or the name is unknown.
	Accepted bool
	Correct  bool
	// Changed maps area name to the verdict assigned by this click.
	Changed map[string]Verdict
	// PenaltySeconds is nonzero only for misses in time-penalty modes.
	PenaltySeconds int
	// Done is true when this click moved the session to a terminal state.
	Done bool
}

// Session is one playthrough of one province under one mode. All state
// transitions happen synchronously inside SubmitClick; callers are expected
// to serialize access.
//
// Invariants after Begin: the prompt is the head of the pool whenever the
// pool is non-empty, and every area is in exactly one of pool or verdicts.
type Session struct {
	mode     Mode
	areas    []string
	pool     []string
	prompt   string
	verdicts map[string]Verdict
	state    State
}

// NewSession creates an idle session over the province's area names.
// The order of areas is irrelevant; Begin shuffles them.
func NewSession(areas []string, mode Mode) *Session {
	return &Session{
		mode:  mode,
		areas: append([]string(nil), areas...),
		state: StateIdle,
	}
}

// Begin transitions the session to in-progress: shuffles the areas into the
// pool, sets the first prompt, and clears any previous verdicts. Calling
// Begin on a started session restarts it from scratch.
func (s *Session) Begin() {
	s.pool = append([]string(nil), s.areas...)
	rand.Shuffle(len(s.pool), func(i, j int) {
		s.pool[i], s.pool[j] = s.pool[j], s.pool[i]
	})
	s.verdicts = make(map[string]Verdict, len(s.pool))
	if len(s.pool) == 0 {
		s.prompt = ""
		s.state = StateComplete
		return
	}
	s.prompt = s.pool[0]
	s.state = StateInProgress
}

// SubmitClick evaluates a click on the named area and returns the verdict
// delta. Clicks on terminal sessions, already-answered areas, or unknown
// names are silent no-ops.
func (s *Session) SubmitClick(name string) ClickResult {
	if s.state != StateInProgress {
		return ClickResult{}
	}
	if _, answered := s.verdicts[name]; answered {
		return ClickResult{}
	}
	if !s.inPool(name) {
		return ClickResult{}
	}

	if name == s.prompt {
		return s.applyCorrect(name)
	}
	if s.mode.EliminatesOnMiss() {
		return s.applyElimination()
	}
	return s.applyForgivingMiss(name)
}

func (s *Session) applyCorrect(name string) ClickResult {
	changed := map[string]Verdict{name: VerdictCorrect}
	s.verdicts[name] = VerdictCorrect
	s.removeFromPool(name)
	s.advancePrompt()
	return ClickResult{
		Accepted: true,
		Correct:  true,
		Changed:  changed,
		Done:     s.state.Terminal(),
	}
}

// applyForgivingMiss marks both the clicked area and the true target wrong
// and keeps playing (casual and time-trial rules).
func (s *Session) applyForgivingMiss(name string) ClickResult {
	changed := map[string]Verdict{
		name:     VerdictWrong,
		s.prompt: VerdictWrong,
	}
	s.verdicts[name] = VerdictWrong
	s.verdicts[s.prompt] = VerdictWrong
	s.removeFromPool(name)
	s.removeFromPool(s.prompt)
	s.advancePrompt()

	res := ClickResult{
		Accepted: true,
		Changed:  changed,
		Done:     s.state.Terminal(),
	}
	if s.mode.PenalizesTime() {
		res.PenaltySeconds = WrongAnswerPenaltySeconds
	}
	return res
}

// applyElimination ends the session on a miss: the true target is marked
// wrong and every other unresolved area, the clicked one included, is marked
// unanswered. Only the prompt gets a wrong mark, never the clicked area.
func (s *Session) applyElimination() ClickResult {
	changed := make(map[string]Verdict, len(s.pool))
	changed[s.prompt] = VerdictWrong
	s.verdicts[s.prompt] = VerdictWrong
	for _, a := range s.pool {
		if a == s.prompt {
			continue
		}
		changed[a] = VerdictUnanswered
		s.verdicts[a] = VerdictUnanswered
	}
	s.pool = nil
	s.prompt = ""
	s.state = StateFailed
	return ClickResult{Accepted: true, Changed: changed, Done: true}
}

func (s *Session) advancePrompt() {
	if len(s.pool) == 0 {
		s.prompt = ""
		s.state = StateComplete
		return
	}
	s.prompt = s.pool[0]
}

func (s *Session) inPool(name string) bool {
	for _, a := range s.pool {
		if a == name {
			return true
		}
	}
	return false
}

func (s *Session) removeFromPool(name string) {
	for i, a := range s.pool {
		if a == name {
			s.pool = append(s.pool[:i], s.pool[i+1:]...)
			return
		}
	}
}

// Mode returns the session's scoring mode.
func (s *Session) Mode() Mode { return s.mode }

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Prompt returns the area the player must currently locate, or "" when the
// session is idle or terminal.
func (s *Session) Prompt() string { return s.prompt }

// Areas returns the full area set the session was created with.
func (s *Session) Areas() []string { return append([]string(nil), s.areas...) }

// Pool returns the areas not yet resolved, prompt first.
func (s *Session) Pool() []string { return append([]string(nil), s.pool...) }

// Verdicts returns a copy of the verdict map.
func (s *Session) Verdicts() map[string]Verdict {
	out := make(map[string]Verdict, len(s.verdicts))
	for k, v := range s.verdicts {
		out[k] = v
	}
	return out
}

// Answered returns how many areas have a verdict.
func (s *Session) Answered() int { return len(s.verdicts) }

// Total returns the number of areas in the session.
func (s *Session) Total() int { return len(s.areas) }
