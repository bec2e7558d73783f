package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/typesprint/internal/diff"
)

const wrongSpace = '•'

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// buildStyledRunes styles every sentence position from its status, then
// appends overflow runes typed past the end of the sentence.
func buildStyledRunes(sentence []rune, statuses []diff.Status, overflow []rune, cursorIndex int) []styledRune {
	current := wordForCursor(findWords(sentence), cursorIndex)

	out := make([]styledRune, 0, len(sentence)+len(overflow))
	for i, target := range sentence {
		displayed := target
		status := diff.Unset
		if i < len(statuses) {
			status = statuses[i]
		}
		style := pendingStyle
		switch status {
		case diff.Correct:
			style = correctStyle
		case diff.Incorrect:
			style = incorrectStyle
			if target == ' ' {
				displayed = wrongSpace
			}
		default:
			if target != ' ' && current != nil && i >= current.start && i < current.end {
				style = currentWordStyle
			}
		}
		if i == cursorIndex {
			style = style.Underline(true)
		}
		out = append(out, styledRune{
			s:       style.Render(string(displayed)),
			width:   runewidth.RuneWidth(displayed),
			isSpace: target == ' ',
		})
	}
	for _, r := range overflow {
		out = append(out, styledRune{
			s:     overflowStyle.Render(string(r)),
			width: runewidth.RuneWidth(r),
		})
	}
	return out
}

type wordRange struct {
	start int
	end   int
}

func findWords(sentence []rune) []wordRange {
	var words []wordRange
	start := -1
	for i, r := range sentence {
		if r == ' ' {
			if start != -1 {
				words = append(words, wordRange{start: start, end: i})
				start = -1
			}
			continue
		}
		if start == -1 {
			start = i
		}
	}
	if start != -1 {
		words = append(words, wordRange{start: start, end: len(sentence)})
	}
	return words
}

func wordForCursor(words []wordRange, cursorIndex int) *wordRange {
	if len(words) == 0 || cursorIndex < 0 {
		return nil
	}
	for i := range words {
		if cursorIndex < words[i].end {
			return &words[i]
		}
	}
	return nil
}

// wrapLines breaks runes into lines no wider than width, preferring to break
// at the last space. The space at a break is dropped.
func wrapLines(runes []styledRune, width int) [][]styledRune {
	if width <= 0 {
		return [][]styledRune{runes}
	}
	var lines [][]styledRune
	var line []styledRune
	lineWidth := 0
	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if item.isSpace {
				lines = append(lines, line)
				line = nil
				lineWidth = 0
				i++
				continue
			}
			cut := lastSpaceIndex(line)
			if cut < 0 {
				lines = append(lines, line)
				line = nil
			} else {
				lines = append(lines, line[:cut])
				line = append([]styledRune(nil), line[cut+1:]...)
			}
			lineWidth = lineWidthOf(line)
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		i++
	}
	return append(lines, line)
}

func renderLines(lines [][]styledRune) string {
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, item := range line {
			b.WriteString(item.s)
		}
	}
	return b.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
