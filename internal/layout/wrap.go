package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"retag/internal/style"
)

// LineWidths carries the distinct visible-width budgets of a wrapped block:
// the first line shares space with trailing adornments, middle lines only
// with the leading track-number column, and the last width decides whether
// an empty spill line is needed to keep adornments from colliding.
type LineWidths struct {
	First  int
	Middle int
	Last   int
}

// Line is one wrapped output line with its visible width.
type Line struct {
	Text  string
	Width int
}

// Columns negotiates the widths of a two-column layout. Given the total
// visible-width budget and the natural widths of the left and right
// fragments it returns the granted widths and whether wrapping is forced:
// both halves fit -> natural widths; the sum still fits the whole budget ->
// natural (asymmetric) widths; otherwise both clamp to half the budget.
func Columns(budget, left, right int) (int, int, bool) {
	half := budget / 2
	if left <= half && right <= half {
		return left, right, false
	}
	if left+right <= budget {
		return left, right, false
	}
	return half, half, true
}

// SplitLines word-wraps colorized text. Budgets are checked against the
// escape-stripped form while the returned lines keep their colors. Words
// accumulate greedily; when the final line would still collide with a
// trailing adornment (it exceeds the last-line budget) an empty line is
// appended.
func SplitLines(colored string, widths LineWidths) []Line {
	words := strings.Fields(colored)
	if len(words) == 0 {
		return []Line{{}}
	}

	var lines []Line
	var cur, curPlain string
	for i := range words {
		word := words[i]
		plainWord := style.Strip(word)

		var pot, potPlain string
		if i == 0 {
			pot, potPlain = word, plainWord
		} else {
			pot = cur + " " + word
			potPlain = curPlain + " " + plainWord
		}

		budget := widths.Middle
		if len(lines) == 0 {
			budget = widths.First
		}
		if runewidth.StringWidth(potPlain) <= budget {
			cur, curPlain = pot, potPlain
			continue
		}
		lines = append(lines, Line{Text: cur, Width: runewidth.StringWidth(curPlain)})
		cur, curPlain = word, plainWord
	}
	lines = append(lines, Line{Text: cur, Width: runewidth.StringWidth(curPlain)})

	if runewidth.StringWidth(curPlain) > widths.Last {
		lines = append(lines, Line{})
	}
	return lines
}
