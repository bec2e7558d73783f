// Package diff compares typed input against a target sentence.
package diff

// Status classifies one target position.
type Status int

const (
	// Unset means the position has not been reached yet.
	Unset Status = iota
	// Correct means the typed rune matches the target.
	Correct
	// Incorrect means the typed rune differs from the target.
	Incorrect
)

func (s Status) String() string {
	switch s {
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	default:
		return "unset"
	}
}

// Result is the classification of one input value against a target.
type Result struct {
	Statuses    []Status
	TypedLength int
	Correct     int
	Mistakes    int
	// Overflow counts typed runes past the end of the target. They are
	// included in TypedLength but never classified.
	Overflow int
}

// Diff classifies every target position against typed. It keeps no state
// between calls, so a shorter typed value simply reverts positions to Unset.
func Diff(target, typed string) Result {
	targetRunes := []rune(target)
	typedRunes := []rune(typed)

	res := Result{
		Statuses:    make([]Status, len(targetRunes)),
		TypedLength: len(typedRunes),
	}
	for i, want := range targetRunes {
		switch {
		case i >= len(typedRunes):
			res.Statuses[i] = Unset
		case typedRunes[i] == want:
			res.Statuses[i] = Correct
			res.Correct++
		default:
			res.Statuses[i] = Incorrect
			res.Mistakes++
		}
	}
	if len(typedRunes) > len(targetRunes) {
		res.Overflow = len(typedRunes) - len(targetRunes)
	}
	return res
}

// Complete reports whether the input matches the target exactly in length
// with no mistakes.
func (r Result) Complete() bool {
	return r.TypedLength == len(r.Statuses) && r.Mistakes == 0
}

// Changed returns the positions whose status differs between prev and next.
// Positions missing from prev count as Unset.
func Changed(prev, next []Status) []int {
	var out []int
	for i, s := range next {
		old := Unset
		if i < len(prev) {
			old = prev[i]
		}
		if old != s {
			out = append(out, i)
		}
	}
	return out
}
