package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/typesprint/internal/diff"
)

func TestRenderDiff(t *testing.T) {
	var buf bytes.Buffer
	res := diff.Diff("a b", "axbz")
	if err := RenderDiff(&buf, "a b", res, "axbz"); err != nil {
		t.Fatalf("render diff: %v", err)
	}
	out := buf.String()
	for _, needle := range []string{"<space>", "incorrect", "overflow", "Mistakes: 1", "Overflow: 1", "Status: incomplete"} {
		if !strings.Contains(out, needle) {
			t.Fatalf("expected %q in output:\n%s", needle, out)
		}
	}
}

func TestRenderDiffComplete(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderDiff(&buf, "cat", diff.Diff("cat", "cat"), "cat"); err != nil {
		t.Fatalf("render diff: %v", err)
	}
	if !strings.Contains(buf.String(), "Status: complete") {
		t.Fatalf("expected complete status:\n%s", buf.String())
	}
}

func TestRenderResult(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderResult(&buf, Result{WPM: 62, Accuracy: 97, Elapsed: 8500 * time.Millisecond}); err != nil {
		t.Fatalf("render result: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "WPM"+strings.Repeat(" ", 8)+"62" || lines[1] != "Accuracy  97%" || lines[2] != "Time     8.5s" {
		t.Fatalf("unexpected lines: %q", lines)
	}
}
