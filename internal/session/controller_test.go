package session

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/verte-zerg/typesprint/internal/diff"
	"github.com/verte-zerg/typesprint/internal/stats"
)

type fakePicker struct {
	sentences []string
	next      int
}

func (p *fakePicker) Pick() string {
	s := p.sentences[p.next%len(p.sentences)]
	p.next++
	return s
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type recorder struct {
	events       []string
	sentence     string
	statuses     map[int]diff.Status
	inputEnabled bool
	results      *stats.Result
	label        string
}

func (r *recorder) Render(sentence string) {
	r.events = append(r.events, fmt.Sprintf("render %q", sentence))
	r.sentence = sentence
	r.statuses = map[int]diff.Status{}
}

func (r *recorder) UpdateCharacterStatus(index int, status diff.Status) {
	r.events = append(r.events, fmt.Sprintf("status %d %s", index, status))
	r.statuses[index] = status
}

func (r *recorder) SetInputEnabled(enabled bool) {
	r.events = append(r.events, fmt.Sprintf("input %v", enabled))
	r.inputEnabled = enabled
}

func (r *recorder) ShowResults(res stats.Result) {
	r.events = append(r.events, fmt.Sprintf("results %d %d", res.WPM, res.Accuracy))
	r.results = &res
}

func (r *recorder) HideResults() {
	r.events = append(r.events, "hide")
	r.results = nil
}

func (r *recorder) SetButtonLabel(label string) {
	r.events = append(r.events, "label "+label)
	r.label = label
}

func (r *recorder) clear() { r.events = nil }

type countingObserver struct {
	started, inputs, completed int
}

func (o *countingObserver) SessionStarted() { o.started++ }
func (o *countingObserver) InputApplied(diff.Result) { o.inputs++ }
func (o *countingObserver) SessionCompleted(stats.Result) { o.completed++ }

func newTestController(sentences ...string) (*Controller, *recorder, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	rec := &recorder{}
	c := NewController(&fakePicker{sentences: sentences}, rec, WithClock(clock.Now))
	return c, rec, clock
}

func TestResetShowsIdle(t *testing.T) {
	c, rec, _ := newTestController("cat")
	c.Reset()
	want := []string{`render ""`, "input false", "hide", "label Start Test"}
	if !reflect.DeepEqual(rec.events, want) {
		t.Fatalf("unexpected events: %v", rec.events)
	}
	if c.Session().Phase != Idle {
		t.Fatalf("expected idle phase")
	}
}

func TestStartArmsPresenter(t *testing.T) {
	c, rec, clock := newTestController("cat")
	c.Start()
	s := c.Session()
	if s.Phase != Active || s.Target != "cat" || !s.StartedAt.Equal(clock.t) {
		t.Fatalf("unexpected session: %+v", s)
	}
	if rec.sentence != "cat" || !rec.inputEnabled || rec.label != "Restart Test" || rec.results != nil {
		t.Fatalf("unexpected presenter state: %+v", rec)
	}
}

func TestInputPushesOnlyChangedStatuses(t *testing.T) {
	c, rec, _ := newTestController("cat")
	c.Start()
	rec.clear()

	c.Input("c")
	if !reflect.DeepEqual(rec.events, []string{"status 0 correct"}) {
		t.Fatalf("unexpected events after first rune: %v", rec.events)
	}
	rec.clear()

	c.Input("cb")
	if !reflect.DeepEqual(rec.events, []string{"status 1 incorrect"}) {
		t.Fatalf("unexpected events after second rune: %v", rec.events)
	}
	rec.clear()

	c.Input("c")
	if !reflect.DeepEqual(rec.events, []string{"status 1 unset"}) {
		t.Fatalf("unexpected events after backspace: %v", rec.events)
	}
	s := c.Session()
	if s.TypedLength != 1 || s.Correct != 1 || s.Mistakes != 0 {
		t.Fatalf("expected counts recomputed from scratch, got %+v", s)
	}
}

func TestInputDoesNotMoveStartTime(t *testing.T) {
	c, _, clock := newTestController("cat")
	c.Start()
	started := c.Session().StartedAt
	clock.Advance(3 * time.Second)
	c.Input("ca")
	if !c.Session().StartedAt.Equal(started) {
		t.Fatalf("start time changed on input")
	}
}

func TestCompletionRequiresNoMistakes(t *testing.T) {
	c, rec, clock := newTestController("cat")
	c.Start()
	clock.Advance(time.Second)

	if c.Input("cbt") {
		t.Fatalf("expected no completion with a mistake")
	}
	if c.Session().Phase != Active || !rec.inputEnabled {
		t.Fatalf("expected session to stay active awaiting correction")
	}

	if !c.Input("cat") {
		t.Fatalf("expected completion after correction")
	}
	s := c.Session()
	if s.Phase != Completed || !s.EndedAt.Equal(clock.t) {
		t.Fatalf("unexpected session after completion: %+v", s)
	}
	if rec.inputEnabled || rec.label != "Start New Test" || rec.results == nil {
		t.Fatalf("unexpected presenter state after completion: %+v", rec)
	}
	// 3 chars = 0.6 words over 1s = 36 WPM; (3-0)/3 = 100%.
	if rec.results.WPM != 36 || rec.results.Accuracy != 100 || rec.results.Elapsed != time.Second {
		t.Fatalf("unexpected results: %+v", rec.results)
	}
}

func TestOverflowDoesNotComplete(t *testing.T) {
	c, _, _ := newTestController("cat")
	c.Start()
	if c.Input("cats") {
		t.Fatalf("expected overflow to block completion")
	}
	s := c.Session()
	if s.TypedLength != 4 || s.Correct != 3 || s.Mistakes != 0 {
		t.Fatalf("unexpected counts with overflow: %+v", s)
	}
	if !c.Input("cat") {
		t.Fatalf("expected completion after removing overflow")
	}
}

func TestInputIgnoredOutsideActive(t *testing.T) {
	c, rec, _ := newTestController("cat")
	if c.Input("c") {
		t.Fatalf("idle input must not complete")
	}
	if len(rec.events) != 0 {
		t.Fatalf("idle input must not reach presenter: %v", rec.events)
	}

	c.Start()
	c.Input("cat")
	rec.clear()
	if c.Input("catx") {
		t.Fatalf("completed session must ignore input")
	}
	if len(rec.events) != 0 || c.Session().TypedLength != 3 {
		t.Fatalf("completed session changed: %v %+v", rec.events, c.Session())
	}
}

func TestRestartIsolatesSessions(t *testing.T) {
	c, rec, clock := newTestController("cat", "dog")
	c.Start()
	c.Input("cat")
	clock.Advance(5 * time.Second)

	c.Start()
	s := c.Session()
	if s.Target != "dog" || s.Phase != Active {
		t.Fatalf("expected fresh active session, got %+v", s)
	}
	if s.TypedLength != 0 || s.Correct != 0 || s.Mistakes != 0 || s.Result != (stats.Result{}) {
		t.Fatalf("expected zeroed counts, got %+v", s)
	}
	if !s.StartedAt.Equal(clock.t) {
		t.Fatalf("expected new start time")
	}
	if rec.results != nil || !rec.inputEnabled || rec.label != "Restart Test" {
		t.Fatalf("unexpected presenter state after restart: %+v", rec)
	}
	for _, st := range s.Statuses {
		if st != diff.Unset {
			t.Fatalf("expected all statuses unset after restart")
		}
	}
}

func TestObserverNotified(t *testing.T) {
	obs := &countingObserver{}
	rec := &recorder{}
	c := NewController(&fakePicker{sentences: []string{"ab"}}, rec, WithObserver(obs))
	c.Start()
	c.Input("a")
	c.Input("ab")
	if obs.started != 1 || obs.inputs != 2 || obs.completed != 1 {
		t.Fatalf("unexpected observer counts: %+v", obs)
	}
}

func TestSessionCopyIsDetached(t *testing.T) {
	c, _, _ := newTestController("cat")
	c.Start()
	c.Input("c")
	s := c.Session()
	s.Statuses[0] = diff.Incorrect
	if c.Session().Statuses[0] != diff.Correct {
		t.Fatalf("controller session mutated through copy")
	}
}

func TestPhaseLabels(t *testing.T) {
	if Idle.ButtonLabel() != "Start Test" || Active.ButtonLabel() != "Restart Test" || Completed.ButtonLabel() != "Start New Test" {
		t.Fatalf("unexpected labels")
	}
}
