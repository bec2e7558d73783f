// Package session holds the state of one typing test and the controller
// that drives it against a presenter.
package session

import (
	"time"

	"github.com/verte-zerg/typesprint/internal/diff"
	"github.com/verte-zerg/typesprint/internal/stats"
)

// Phase is the lifecycle state of a Session.
type Phase int

const (
	// Idle means no sentence is loaded and input is disabled.
	Idle Phase = iota
	// Active means a sentence is loaded and input is accepted.
	Active
	// Completed means the sentence was typed exactly and results exist.
	Completed
)

func (p Phase) String() string {
	switch p {
	case Active:
		return "active"
	case Completed:
		return "completed"
	default:
		return "idle"
	}
}

// ButtonLabel is the start action's label for the phase.
func (p Phase) ButtonLabel() string {
	switch p {
	case Active:
		return "Restart Test"
	case Completed:
		return "Start New Test"
	default:
		return "Start Test"
	}
}

// Session is one attempt at typing one sentence.
type Session struct {
	Target    string
	StartedAt time.Time
	EndedAt   time.Time
	Phase     Phase

	TypedLength int
	Correct     int
	Mistakes    int

	Statuses []diff.Status
	Result   stats.Result
}

// Begin returns an Active session for target started at now.
func Begin(target string, now time.Time) Session {
	return Session{
		Target:    target,
		StartedAt: now,
		Phase:     Active,
		Statuses:  diff.Diff(target, "").Statuses,
	}
}

// Apply recomputes the session counts from the full typed value. The returned
// session is Active unless typed completes the target, in which case it is
// Completed with results measured at now. Sessions that are not Active are
// returned unchanged.
func (s Session) Apply(typed string, now time.Time) (Session, diff.Result) {
	res := diff.Diff(s.Target, typed)
	if s.Phase != Active {
		return s, res
	}
	s.TypedLength = res.TypedLength
	s.Correct = res.Correct
	s.Mistakes = res.Mistakes
	s.Statuses = res.Statuses
	if res.Complete() {
		s.Phase = Completed
		s.EndedAt = now
		s.Result = stats.Compute(s.TypedLength, s.Correct, s.Mistakes, now.Sub(s.StartedAt))
	}
	return s, res
}

// Active reports whether the session accepts input.
func (s Session) Active() bool {
	return s.Phase == Active
}
