package session

import (
	"time"

	"github.com/verte-zerg/typesprint/internal/diff"
	"github.com/verte-zerg/typesprint/internal/stats"
)

// Picker supplies target sentences.
type Picker interface {
	Pick() string
}

// Presenter renders a session. Implementations must not retain the
// controller's session.
type Presenter interface {
	// Render shows sentence as per-character units with every position unset.
	// An empty sentence clears the display.
	Render(sentence string)
	UpdateCharacterStatus(index int, status diff.Status)
	SetInputEnabled(enabled bool)
	ShowResults(res stats.Result)
	HideResults()
	SetButtonLabel(label string)
}

// Observer is notified of session transitions.
type Observer interface {
	SessionStarted()
	InputApplied(res diff.Result)
	SessionCompleted(res stats.Result)
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// WithObserver registers an observer.
func WithObserver(o Observer) Option {
	return func(c *Controller) {
		c.observers = append(c.observers, o)
	}
}

// Controller owns exactly one Session and pushes its changes to a Presenter.
// It is not safe for concurrent use; callers serialize events the way a UI
// loop does.
type Controller struct {
	picker    Picker
	presenter Presenter
	now       func() time.Time
	observers []Observer

	sess Session
}

// NewController returns an Idle controller. It does not touch the presenter
// until Reset or Start is called.
func NewController(picker Picker, presenter Presenter, opts ...Option) *Controller {
	c := &Controller{
		picker:    picker,
		presenter: presenter,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns a copy of the current session.
func (c *Controller) Session() Session {
	s := c.sess
	s.Statuses = append([]diff.Status(nil), c.sess.Statuses...)
	return s
}

// Reset discards the session and returns to Idle.
func (c *Controller) Reset() {
	c.sess = Session{}
	c.presenter.Render("")
	c.presenter.SetInputEnabled(false)
	c.presenter.HideResults()
	c.presenter.SetButtonLabel(Idle.ButtonLabel())
}

// Start discards any session in progress and begins a new one with a fresh
// sentence.
func (c *Controller) Start() {
	c.Reset()
	c.sess = Begin(c.picker.Pick(), c.now())
	c.presenter.Render(c.sess.Target)
	c.presenter.SetInputEnabled(true)
	c.presenter.SetButtonLabel(Active.ButtonLabel())
	for _, o := range c.observers {
		o.SessionStarted()
	}
}

// Input applies the full current input value. It reports whether this input
// completed the session. Input outside the Active phase is ignored.
func (c *Controller) Input(value string) bool {
	if !c.sess.Active() {
		return false
	}
	prev := c.sess.Statuses
	next, res := c.sess.Apply(value, c.now())
	c.sess = next
	for _, idx := range diff.Changed(prev, next.Statuses) {
		c.presenter.UpdateCharacterStatus(idx, next.Statuses[idx])
	}
	for _, o := range c.observers {
		o.InputApplied(res)
	}
	if next.Phase != Completed {
		return false
	}
	c.presenter.SetInputEnabled(false)
	c.presenter.ShowResults(next.Result)
	c.presenter.SetButtonLabel(Completed.ButtonLabel())
	for _, o := range c.observers {
		o.SessionCompleted(next.Result)
	}
	return true
}
