// Package stats computes typing test results and renders them as text.
package stats

import (
	"math"
	"time"
)

// CharsPerWord is the fixed word unit used for WPM.
const CharsPerWord = 5.0

// Result holds the metrics of a completed session.
type Result struct {
	WPM      int
	Accuracy int
	Elapsed  time.Duration
}

// Compute derives WPM and accuracy from session counts. WPM counts every
// typed character, mistakes included; accuracy nets mistakes against correct
// characters and is floored at zero.
func Compute(typedLength, correct, mistakes int, elapsed time.Duration) Result {
	return Result{
		WPM:      WPM(typedLength, elapsed),
		Accuracy: Accuracy(typedLength, correct, mistakes),
		Elapsed:  elapsed,
	}
}

// WPM returns words per minute for typedLength characters over elapsed.
func WPM(typedLength int, elapsed time.Duration) int {
	seconds := elapsed.Seconds()
	if seconds <= 0 {
		return 0
	}
	words := float64(typedLength) / CharsPerWord
	return int(math.Round(words / seconds * 60))
}

// Accuracy returns the net accuracy percentage, never below zero.
func Accuracy(typedLength, correct, mistakes int) int {
	if typedLength <= 0 {
		return 0
	}
	raw := int(math.Round(float64(correct-mistakes) / float64(typedLength) * 100))
	if raw < 0 {
		return 0
	}
	return raw
}
