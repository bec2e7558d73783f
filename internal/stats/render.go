package stats

import (
	"fmt"
	"io"

	"github.com/verte-zerg/typesprint/internal/diff"
)

// RenderDiff prints a per-character classification table followed by the
// aggregate counts.
func RenderDiff(w io.Writer, target string, res diff.Result, typed string) error {
	targetRunes := []rune(target)
	typedRunes := []rune(typed)

	headers := []string{"Pos", "Want", "Got", "Status"}
	rows := make([][]string, 0, len(targetRunes)+res.Overflow)
	for i, want := range targetRunes {
		got := ""
		if i < len(typedRunes) {
			got = charLabel(typedRunes[i])
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i),
			charLabel(want),
			got,
			res.Statuses[i].String(),
		})
	}
	for i := len(targetRunes); i < len(typedRunes); i++ {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i),
			"",
			charLabel(typedRunes[i]),
			"overflow",
		})
	}
	for _, line := range formatTable(headers, rows, map[int]bool{0: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Typed: %d  Correct: %d  Mistakes: %d  Overflow: %d\n",
		res.TypedLength, res.Correct, res.Mistakes, res.Overflow); err != nil {
		return err
	}
	status := "incomplete"
	if res.Complete() {
		status = "complete"
	}
	_, err := fmt.Fprintf(w, "Status: %s\n", status)
	return err
}

// RenderResult prints a completed session's metrics.
func RenderResult(w io.Writer, res Result) error {
	lines := formatTable(nil, [][]string{
		{"WPM", fmt.Sprintf("%d", res.WPM)},
		{"Accuracy", fmt.Sprintf("%d%%", res.Accuracy)},
		{"Time", fmt.Sprintf("%.1fs", res.Elapsed.Seconds())},
	}, map[int]bool{1: true})
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func charLabel(r rune) string {
	if r == ' ' {
		return "<space>"
	}
	return string(r)
}
