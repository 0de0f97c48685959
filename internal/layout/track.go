package layout

import (
	"strings"

	"retag/internal/style"
)

// Layout selects how changed track rows that overflow their columns are
// rendered.
type Layout string

const (
	// LayoutColumn word-wraps titles inside a fixed left/right column split.
	LayoutColumn Layout = "column"
	// LayoutNewline prints the full left side, then the right side on the
	// following line.
	LayoutNewline Layout = "newline"
)

// Side is one half (current or candidate) of a track comparison row. All
// fields are colorized; Width is the visible width of the composed
// "track title length" cell.
type Side struct {
	Track  string
	Title  string
	Length string
	Width  int
}

// Row is an ephemeral per-track rendering record, rebuilt for every render.
// When Header is non-empty the row is a medium header and the sides are
// ignored.
type Row struct {
	Indent  string
	Prefix  string
	Changed bool
	Header  string
	Left    Side
	Right   Side
}

const sidePrefix = "* "
const arrow = " -> "

// RenderRow renders one track row. Unchanged rows become a single compact
// line padded to the widest left side. Changed rows use a compact
// two-column line when both sides fit their negotiated columns and
// otherwise fall back to the configured overflow layout.
func RenderRow(row Row, colLeft, colRight, maxLeft, maxRight int, mode Layout) string {
	if row.Header != "" {
		return row.Indent + row.Header
	}
	if !row.Changed {
		return renderUnchanged(row, maxLeft)
	}
	if row.Left.Width > colLeft || row.Right.Width > colRight {
		if mode == LayoutNewline {
			return renderNewline(row, maxLeft, maxRight)
		}
		return renderColumns(row, colLeft, colRight)
	}
	return renderCompact(row, colLeft, colRight)
}

func sideString(s Side, pad int) string {
	var b strings.Builder
	b.WriteString(s.Track)
	b.WriteString(" ")
	b.WriteString(s.Title)
	b.WriteString(" ")
	b.WriteString(strings.Repeat(" ", pad))
	b.WriteString(s.Length)
	return b.String()
}

func renderUnchanged(row Row, maxLeft int) string {
	pad := maxLeft - row.Left.Width
	if pad < 0 {
		pad = 0
	}
	return row.Indent + row.Prefix + sideString(row.Left, pad)
}

func renderCompact(row Row, colLeft, colRight int) string {
	padLeft := colLeft - row.Left.Width
	if padLeft < 0 {
		padLeft = 0
	}
	padRight := colRight - row.Right.Width
	if padRight < 0 {
		padRight = 0
	}
	return row.Indent + row.Prefix +
		sideString(row.Left, padLeft) + " ->" + " " + sideString(row.Right, padRight)
}

func renderNewline(row Row, maxLeft, maxRight int) string {
	padLeft := maxLeft - row.Left.Width
	if padLeft < 0 {
		padLeft = 0
	}
	padRight := maxRight - row.Right.Width
	if padRight < 0 {
		padRight = 0
	}
	cont := strings.Repeat(" ", len(sidePrefix))
	return row.Indent + row.Prefix + sideString(row.Left, padLeft) + " ->\n" +
		row.Indent + cont + sideString(row.Right, padRight)
}

// lineBudgets computes the title budgets for the first, middle, and last
// wrapped line of one side, reserving room for the track number on every
// line and for the duration on the first.
func lineBudgets(col, trackWidth, lengthWidth int) LineWidths {
	if trackWidth > 0 {
		trackWidth++ // separating space
	}
	if lengthWidth > 0 {
		lengthWidth++
	}
	return LineWidths{
		First:  col - trackWidth - lengthWidth,
		Middle: col - trackWidth,
		Last:   col - trackWidth,
	}
}

func renderColumns(row Row, colLeft, colRight int) string {
	leftTrackW := style.Width(row.Left.Track)
	leftLengthW := style.Width(row.Left.Length)
	rightTrackW := style.Width(row.Right.Track)
	rightLengthW := style.Width(row.Right.Length)

	leftLines := SplitLines(row.Left.Title, lineBudgets(colLeft, leftTrackW, leftLengthW))
	rightLines := SplitLines(row.Right.Title, lineBudgets(colRight, rightTrackW, rightLengthW))

	count := len(leftLines)
	if len(rightLines) > count {
		count = len(rightLines)
	}

	var out strings.Builder
	for i := 0; i < count; i++ {
		out.WriteString(row.Indent)
		if i == 0 {
			out.WriteString(row.Prefix)
		} else {
			out.WriteString(strings.Repeat(" ", len(sidePrefix)))
		}

		writeColumn(&out, leftLines, i, row.Left, leftTrackW, leftLengthW, colLeft)
		if i == 0 {
			out.WriteString(arrow)
		} else {
			out.WriteString(strings.Repeat(" ", len(arrow)))
		}
		writeColumn(&out, rightLines, i, row.Right, rightTrackW, rightLengthW, colRight)

		if i < count-1 {
			out.WriteString("\n")
		}
	}
	return out.String()
}

// writeColumn emits line i of one wrapped column: track number (first line
// only), the title fragment, alignment padding, and the duration on the
// first line.
func writeColumn(out *strings.Builder, lines []Line, i int, side Side, trackW, lengthW, col int) {
	if i == 0 && trackW > 0 {
		out.WriteString(side.Track)
		out.WriteString(" ")
	} else {
		out.WriteString(strings.Repeat(" ", trackW))
	}

	var titleWidth int
	if i < len(lines) {
		out.WriteString(lines[i].Text)
		titleWidth = lines[i].Width
	}

	used := trackW + titleWidth
	if i == 0 {
		used += lengthW
	}
	if pad := col - used; pad > 0 {
		out.WriteString(strings.Repeat(" ", pad))
	}
	if i == 0 {
		out.WriteString(side.Length)
	}
}
