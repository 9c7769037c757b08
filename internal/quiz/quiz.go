// Package quiz defines the core game domain: modes, verdicts, and the
// session and campaign state machines. It has no dependencies on the
// storage or transport layers.
package quiz

import "fmt"

// Verdict is the per-area outcome of a session.
type Verdict string

const (
	VerdictUnanswered Verdict = "unanswered"
	VerdictCorrect    Verdict = "correct"
	VerdictWrong      Verdict = "wrong"
)

// Mode selects the scoring rules for a session.
type Mode string

const (
	// ModeCasual marks both the clicked area and the true target wrong on a
	// miss and keeps playing.
	ModeCasual Mode = "casual"
	// ModeSuddenDeath ends the session on the first miss.
	ModeSuddenDeath Mode = "sudden_death"
	// ModeTimeTrial plays like casual but each miss costs a time penalty.
	ModeTimeTrial Mode = "time_trial"
	// ModeUltimateChallenge combines sudden death and time trial.
	ModeUltimateChallenge Mode = "ultimate_challenge"
)

// WrongAnswerPenaltySeconds is added to the stopwatch on every miss in
// time-penalty modes.
const WrongAnswerPenaltySeconds = 10

// ParseMode validates a wire-format mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeCasual, ModeSuddenDeath, ModeTimeTrial, ModeUltimateChallenge:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown game mode %q", s)
}

// EliminatesOnMiss reports whether a single wrong click ends the session.
func (m Mode) EliminatesOnMiss() bool {
	return m == ModeSuddenDeath || m == ModeUltimateChallenge
}

// PenalizesTime reports whether wrong clicks add a time penalty. Sessions in
// these modes run against a stopwatch and record their elapsed time.
func (m Mode) PenalizesTime() bool {
	return m == ModeTimeTrial || m == ModeUltimateChallenge
}

// Timed reports whether the session's elapsed time is part of its result.
func (m Mode) Timed() bool { return m.PenalizesTime() }
