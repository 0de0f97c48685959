package layout

import (
	"strings"
	"testing"
)

func TestColumnsBothFitHalf(t *testing.T) {
	l, r, wrap := Columns(80, 30, 30)
	if l != 30 || r != 30 || wrap {
		t.Fatalf("Columns(80,30,30) = %d,%d,%v; want 30,30,false", l, r, wrap)
	}
}

func TestColumnsAsymmetricSumFits(t *testing.T) {
	l, r, wrap := Columns(74, 60, 14)
	if l != 60 || r != 14 || wrap {
		t.Fatalf("Columns(74,60,14) = %d,%d,%v; want 60,14,false", l, r, wrap)
	}
}

func TestColumnsClampAndWrap(t *testing.T) {
	l, r, wrap := Columns(74, 60, 60)
	if l != 37 || r != 37 || !wrap {
		t.Fatalf("Columns(74,60,60) = %d,%d,%v; want 37,37,true", l, r, wrap)
	}
}

func TestSplitLinesSingleLine(t *testing.T) {
	lines := SplitLines("short title", LineWidths{First: 20, Middle: 20, Last: 20})
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0].Text != "short title" || lines[0].Width != len("short title") {
		t.Fatalf("unexpected line: %+v", lines[0])
	}
}

func TestSplitLinesWrapsAtWordBoundary(t *testing.T) {
	lines := SplitLines("alpha beta gamma delta", LineWidths{First: 11, Middle: 11, Last: 11})
	want := []string{"alpha beta", "gamma delta"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines %v, want %d", len(lines), lines, len(want))
	}
	for i, w := range want {
		if lines[i].Text != w {
			t.Errorf("line %d = %q, want %q", i, lines[i].Text, w)
		}
	}
}

func TestSplitLinesFirstLineBudgetReserved(t *testing.T) {
	// The first budget is smaller, simulating a reserved duration column.
	lines := SplitLines("alpha beta gamma", LineWidths{First: 5, Middle: 20, Last: 20})
	if len(lines) != 2 {
		t.Fatalf("got %v, want 2 lines", lines)
	}
	if lines[0].Text != "alpha" || lines[1].Text != "beta gamma" {
		t.Fatalf("unexpected wrap: %v", lines)
	}
}

func TestSplitLinesAppendsEmptyLastLine(t *testing.T) {
	// The final accumulated line exceeds the last-line budget, so an empty
	// spill line must keep trailing adornments from colliding.
	lines := SplitLines("alpha beta", LineWidths{First: 20, Middle: 20, Last: 5})
	if len(lines) != 2 {
		t.Fatalf("got %v, want trailing empty line", lines)
	}
	if lines[1].Text != "" || lines[1].Width != 0 {
		t.Fatalf("last line = %+v, want empty", lines[1])
	}
}

func TestSplitLinesKeepsColorizedForm(t *testing.T) {
	colored := "\x1b[31mred\x1b[39;49;00m word"
	lines := SplitLines(colored, LineWidths{First: 20, Middle: 20, Last: 20})
	if len(lines) != 1 {
		t.Fatalf("got %d lines", len(lines))
	}
	if !strings.Contains(lines[0].Text, "\x1b[31m") {
		t.Fatal("colorized form lost")
	}
	if lines[0].Width != len("red word") {
		t.Fatalf("width = %d, want %d", lines[0].Width, len("red word"))
	}
}

func unchangedRow() Row {
	return Row{
		Indent: "  ",
		Prefix: "* ",
		Left: Side{
			Track:  "",
			Title:  "Come Together",
			Length: "(4:20)",
			Width:  len(" Come Together (4:20)"),
		},
	}
}

func TestRenderRowUnchanged(t *testing.T) {
	row := unchangedRow()
	out := RenderRow(row, 40, 40, row.Left.Width, 0, LayoutColumn)
	if !strings.HasPrefix(out, "  * ") {
		t.Fatalf("missing indent/prefix: %q", out)
	}
	if !strings.Contains(out, "Come Together") || !strings.Contains(out, "(4:20)") {
		t.Fatalf("unexpected output: %q", out)
	}
	if strings.Contains(out, "\n") {
		t.Fatalf("unchanged row should be one line: %q", out)
	}
}

func changedRow(leftTitle, rightTitle string) Row {
	left := Side{Track: "(#1)", Title: leftTitle, Length: "(1:00)"}
	left.Width = len("(#1) " + leftTitle + " (1:00)")
	right := Side{Track: "(#2)", Title: rightTitle, Length: "(1:02)"}
	right.Width = len("(#2) " + rightTitle + " (1:02)")
	return Row{Indent: "  ", Prefix: "! ", Changed: true, Left: left, Right: right}
}

func TestRenderRowCompactWhenFitting(t *testing.T) {
	row := changedRow("One", "Two")
	out := RenderRow(row, 40, 40, row.Left.Width, row.Right.Width, LayoutColumn)
	if strings.Contains(out, "\n") {
		t.Fatalf("compact row should be one line: %q", out)
	}
	if !strings.Contains(out, " -> ") {
		t.Fatalf("missing arrow: %q", out)
	}
}

func TestRenderRowNewlineLayout(t *testing.T) {
	row := changedRow("A Very Long Title That Overflows", "Another Very Long Title Here")
	out := RenderRow(row, 10, 10, row.Left.Width, row.Right.Width, LayoutNewline)
	parts := strings.Split(out, "\n")
	if len(parts) != 2 {
		t.Fatalf("newline layout should be two lines: %q", out)
	}
	if !strings.HasSuffix(parts[0], "->") {
		t.Fatalf("first line should end with arrow: %q", parts[0])
	}
	if !strings.Contains(parts[1], "Another Very Long Title Here") {
		t.Fatalf("second line missing right side: %q", parts[1])
	}
}

func TestRenderRowColumnLayoutWraps(t *testing.T) {
	row := changedRow(
		"An Extremely Long Track Title That Cannot Fit",
		"Short",
	)
	out := RenderRow(row, 24, 24, row.Left.Width, row.Right.Width, LayoutColumn)
	lines := strings.Split(out, "\n")
	if len(lines) < 2 {
		t.Fatalf("column layout should wrap: %q", out)
	}
	if !strings.Contains(lines[0], " -> ") {
		t.Fatalf("first line missing arrow: %q", lines[0])
	}
	// Continuation lines must not repeat the arrow.
	for _, line := range lines[1:] {
		if strings.Contains(line, "->") {
			t.Fatalf("continuation line carries arrow: %q", line)
		}
	}
}

func TestRenderRowMediumHeader(t *testing.T) {
	row := Row{Indent: "  ", Header: "* CD 1: Bonus Disc"}
	out := RenderRow(row, 10, 10, 0, 0, LayoutColumn)
	if out != "  * CD 1: Bonus Disc" {
		t.Fatalf("header row = %q", out)
	}
}
