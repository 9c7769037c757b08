package quiz

import (
	"testing"
)

// startOrdered begins a session and pins the pool to the given order so
// prompts are predictable.
func startOrdered(t *testing.T, mode Mode, areas ...string) *Session {
	t.Helper()
	s := NewSession(areas, mode)
	s.Begin()
	s.pool = append([]string(nil), areas...)
	s.prompt = areas[0]
	return s
}

func TestParseMode(t *testing.T) {
	for _, valid := range []string{"casual", "sudden_death", "time_trial", "ultimate_challenge"} {
		if _, err := ParseMode(valid); err != nil {
			t.Errorf("ParseMode(%q) error: %v", valid, err)
		}
	}
	if _, err := ParseMode("speedrun"); err == nil {
		t.Error("ParseMode accepted unknown mode")
	}
}

func TestModeAxes(t *testing.T) {
	tests := []struct {
		mode       Mode
		eliminates bool
		penalizes  bool
	}{
		{ModeCasual, false, false},
		{ModeSuddenDeath, true, false},
		{ModeTimeTrial, false, true},
		{ModeUltimateChallenge, true, true},
	}
	for _, tt := range tests {
		if got := tt.mode.EliminatesOnMiss(); got != tt.eliminates {
			t.Errorf("%s.EliminatesOnMiss() = %v, want %v", tt.mode, got, tt.eliminates)
		}
		if got := tt.mode.PenalizesTime(); got != tt.penalizes {
			t.Errorf("%s.PenalizesTime() = %v, want %v", tt.mode, got, tt.penalizes)
		}
	}
}

func TestBeginShufflesAllAreas(t *testing.T) {
	areas := []string{"A", "B", "C", "D", "E"}
	s := NewSession(areas, ModeCasual)

	if s.State() != StateIdle {
		t.Fatalf("state before Begin = %q, want idle", s.State())
	}
	s.Begin()

	if s.State() != StateInProgress {
		t.Fatalf("state after Begin = %q, want in_progress", s.State())
	}
	if got := len(s.Pool()); got != len(areas) {
		t.Fatalf("pool size = %d, want %d", got, len(areas))
	}
	if s.Prompt() != s.Pool()[0] {
		t.Errorf("prompt %q is not pool head %q", s.Prompt(), s.Pool()[0])
	}

	seen := make(map[string]bool)
	for _, a := range s.Pool() {
		seen[a] = true
	}
	for _, a := range areas {
		if !seen[a] {
			t.Errorf("area %q missing from pool", a)
		}
	}
}

func TestBeginEmptyAreaSet(t *testing.T) {
	s := NewSession(nil, ModeCasual)
	s.Begin()
	if s.State() != StateComplete {
		t.Fatalf("state = %q, want complete", s.State())
	}
	if s.Prompt() != "" {
		t.Errorf("prompt = %q, want empty", s.Prompt())
	}
}

func TestClickBeforeBeginIgnored(t *testing.T) {
	s := NewSession([]string{"A"}, ModeCasual)
	if res := s.SubmitClick("A"); res.Accepted {
		t.Error("click before Begin was accepted")
	}
}

func TestCorrectClickAdvancesPrompt(t *testing.T) {
	s := startOrdered(t, ModeCasual, "A", "B", "C")

	res := s.SubmitClick("A")
	if !res.Accepted || !res.Correct {
		t.Fatalf("result = %+v, want accepted correct", res)
	}
	if res.Changed["A"] != VerdictCorrect {
		t.Errorf("changed[A] = %q, want correct", res.Changed["A"])
	}
	if s.Prompt() != "B" {
		t.Errorf("prompt = %q, want B", s.Prompt())
	}
	if res.Done {
		t.Error("Done = true with areas remaining")
	}
}

func TestCasualWrongClickMarksBoth(t *testing.T) {
	s := startOrdered(t, ModeCasual, "A", "B", "C")

	// Prompt is A; clicking C is wrong.
	res := s.SubmitClick("C")
	if !res.Accepted || res.Correct {
		t.Fatalf("result = %+v, want accepted wrong", res)
	}
	if len(res.Changed) != 2 {
		t.Fatalf("changed %d areas, want exactly 2", len(res.Changed))
	}
	if res.Changed["C"] != VerdictWrong || res.Changed["A"] != VerdictWrong {
		t.Errorf("changed = %v, want C and A wrong", res.Changed)
	}
	if res.PenaltySeconds != 0 {
		t.Errorf("penalty = %d, want 0 in casual", res.PenaltySeconds)
	}
	if s.Prompt() != "B" {
		t.Errorf("prompt = %q, want B", s.Prompt())
	}
}

func TestCasualScenarioCompletes(t *testing.T) {
	// Areas [A,B,C], click A (correct), then C while prompt is B.
	s := startOrdered(t, ModeCasual, "A", "B", "C")

	s.SubmitClick("A")
	res := s.SubmitClick("C")

	want := map[string]Verdict{"A": VerdictCorrect, "B": VerdictWrong, "C": VerdictWrong}
	got := s.Verdicts()
	for area, v := range want {
		if got[area] != v {
			t.Errorf("verdicts[%s] = %q, want %q", area, got[area], v)
		}
	}
	if len(s.Pool()) != 0 {
		t.Errorf("pool = %v, want empty", s.Pool())
	}
	if s.State() != StateComplete {
		t.Errorf("state = %q, want complete", s.State())
	}
	if !res.Done {
		t.Error("final click not reported Done")
	}
}

func TestTimeTrialWrongClickPenalty(t *testing.T) {
	s := startOrdered(t, ModeTimeTrial, "A", "B", "C")

	res := s.SubmitClick("C")
	if res.PenaltySeconds != WrongAnswerPenaltySeconds {
		t.Errorf("penalty = %d, want %d", res.PenaltySeconds, WrongAnswerPenaltySeconds)
	}
	if len(res.Changed) != 2 {
		t.Errorf("changed %d areas, want 2", len(res.Changed))
	}
}

func TestSuddenDeathWipesPool(t *testing.T) {
	// Prompt A, click B: only A gets wrong, B and C are unanswered.
	s := startOrdered(t, ModeSuddenDeath, "A", "B", "C")

	res := s.SubmitClick("B")
	if !res.Accepted || !res.Done {
		t.Fatalf("result = %+v, want accepted done", res)
	}

	want := map[string]Verdict{"A": VerdictWrong, "B": VerdictUnanswered, "C": VerdictUnanswered}
	got := s.Verdicts()
	if len(got) != len(want) {
		t.Fatalf("verdicts = %v, want %v", got, want)
	}
	for area, v := range want {
		if got[area] != v {
			t.Errorf("verdicts[%s] = %q, want %q", area, got[area], v)
		}
	}
	if s.State() != StateFailed {
		t.Errorf("state = %q, want failed", s.State())
	}
	if s.Prompt() != "" {
		t.Errorf("prompt = %q, want empty", s.Prompt())
	}
	if len(s.Pool()) != 0 {
		t.Errorf("pool = %v, want empty", s.Pool())
	}
}

func TestUltimateChallengeEndsOnMiss(t *testing.T) {
	s := startOrdered(t, ModeUltimateChallenge, "A", "B")

	res := s.SubmitClick("B")
	if !res.Done || s.State() != StateFailed {
		t.Fatalf("state = %q Done = %v, want failed/true", s.State(), res.Done)
	}
	// Session ends on first miss; no time penalty applies.
	if res.PenaltySeconds != 0 {
		t.Errorf("penalty = %d, want 0", res.PenaltySeconds)
	}
}

func TestClicksAfterTerminalIgnored(t *testing.T) {
	s := startOrdered(t, ModeSuddenDeath, "A", "B")
	s.SubmitClick("B")

	before := s.Verdicts()
	if res := s.SubmitClick("A"); res.Accepted {
		t.Error("click after terminal state was accepted")
	}
	after := s.Verdicts()
	if len(before) != len(after) {
		t.Error("terminal click mutated verdicts")
	}
}

func TestAnsweredAreaClickIgnored(t *testing.T) {
	s := startOrdered(t, ModeCasual, "A", "B", "C")
	s.SubmitClick("A")

	if res := s.SubmitClick("A"); res.Accepted {
		t.Error("repeat click on answered area was accepted")
	}
}

func TestUnknownAreaClickIgnored(t *testing.T) {
	s := startOrdered(t, ModeCasual, "A", "B")
	if res := s.SubmitClick("Z"); res.Accepted {
		t.Error("click on unknown area was accepted")
	}
}

// Every area is in exactly one of pool or verdicts after any click sequence.
func TestPoolVerdictPartition(t *testing.T) {
	areas := []string{"A", "B", "C", "D", "E"}

	for _, mode := range []Mode{ModeCasual, ModeSuddenDeath, ModeTimeTrial, ModeUltimateChallenge} {
		s := startOrdered(t, mode, areas...)
		clicks := []string{"A", "D", "B", "E", "C", "B"}

		for _, click := range clicks {
			s.SubmitClick(click)

			inPool := make(map[string]bool)
			for _, a := range s.Pool() {
				inPool[a] = true
			}
			verdicts := s.Verdicts()
			for _, a := range areas {
				_, answered := verdicts[a]
				if inPool[a] == answered {
					t.Fatalf("mode %s: area %q in pool=%v answered=%v after clicking %q",
						mode, a, inPool[a], answered, click)
				}
			}

			if (s.Prompt() == "") != (len(s.Pool()) == 0) {
				t.Fatalf("mode %s: prompt %q with pool %v", mode, s.Prompt(), s.Pool())
			}
		}
	}
}

func TestBeginRestartsFinishedSession(t *testing.T) {
	s := startOrdered(t, ModeSuddenDeath, "A", "B")
	s.SubmitClick("B")
	if s.State() != StateFailed {
		t.Fatalf("state = %q, want failed", s.State())
	}

	s.Begin()
	if s.State() != StateInProgress {
		t.Fatalf("state after restart = %q, want in_progress", s.State())
	}
	if len(s.Pool()) != 2 {
		t.Errorf("pool size = %d, want 2", len(s.Pool()))
	}
	if len(s.Verdicts()) != 0 {
		t.Errorf("verdicts not cleared on restart: %v", s.Verdicts())
	}
}
