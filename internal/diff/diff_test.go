package diff

import (
	"strings"
	"testing"

	"retag/internal/style"
)

func newDiffer() Differ {
	return Differ{Styles: style.NewTable(true, nil, nil)}
}

func TestStringsIdenticalUncolored(t *testing.T) {
	d := newDiffer()
	for _, s := range []string{"", "Same Title", "with  double  spaces"} {
		oldOut, newOut := d.Strings(s, s)
		if oldOut != s || newOut != s {
			t.Errorf("self-diff of %q changed output: %q / %q", s, oldOut, newOut)
		}
	}
}

func TestStringsCaseOnlyChangeUsesMinorHighlight(t *testing.T) {
	d := newDiffer()
	oldOut, newOut := d.Strings("Abc", "abc")

	minor := d.Styles.Colorize(style.HighlightMinor, "x")
	prefix := strings.TrimSuffix(minor, "x"+style.Reset)
	if !strings.Contains(oldOut, prefix) || !strings.Contains(newOut, prefix) {
		t.Fatalf("expected minor highlight on both sides: %q / %q", oldOut, newOut)
	}
	added := strings.TrimSuffix(d.Styles.Colorize(style.DiffAdded, "x"), "x"+style.Reset)
	if strings.Contains(newOut, added) {
		t.Fatalf("case-only change must not use the added role: %q", newOut)
	}
	if style.Strip(oldOut) != "Abc" || style.Strip(newOut) != "abc" {
		t.Fatalf("stripped output altered: %q / %q", style.Strip(oldOut), style.Strip(newOut))
	}
}

func TestStringsInsertColorsNewSideOnly(t *testing.T) {
	d := newDiffer()
	oldOut, newOut := d.Strings("The Wall", "The Wall (Remastered)")
	if oldOut != "The Wall" {
		t.Fatalf("old side should be untouched by an insert: %q", oldOut)
	}
	if style.Strip(newOut) != "The Wall (Remastered)" {
		t.Fatalf("stripped new side altered: %q", style.Strip(newOut))
	}
	if !strings.Contains(newOut, "\x1b[") {
		t.Fatal("new side not colorized")
	}
}

func TestStringsDeleteColorsOldSideOnly(t *testing.T) {
	d := newDiffer()
	oldOut, newOut := d.Strings("Abbey Road [Deluxe]", "Abbey Road")
	if newOut != "Abbey Road" {
		t.Fatalf("new side should be untouched by a delete: %q", newOut)
	}
	if !strings.Contains(oldOut, "\x1b[") {
		t.Fatal("old side not colorized")
	}
}

func TestStringsWhitespaceSurvivesUncolored(t *testing.T) {
	d := newDiffer()
	oldOut, newOut := d.Strings("one two", "one three")
	// The space between words must not sit inside an escape-wrapped token.
	for _, out := range []string{oldOut, newOut} {
		if strings.Contains(out, " "+style.Reset) {
			t.Errorf("whitespace colorized in %q", out)
		}
	}
	if style.Strip(oldOut) != "one two" || style.Strip(newOut) != "one three" {
		t.Fatalf("stripped text altered: %q / %q", style.Strip(oldOut), style.Strip(newOut))
	}
}

func TestStringsDisabledTablePassthrough(t *testing.T) {
	d := Differ{Styles: style.NewTable(false, nil, nil)}
	oldOut, newOut := d.Strings("a", "b")
	if oldOut != "a" || newOut != "b" {
		t.Fatalf("disabled diff should pass through: %q / %q", oldOut, newOut)
	}
}

func TestWhole(t *testing.T) {
	d := newDiffer()
	oldOut, newOut := d.Whole("1999", "1999")
	if oldOut != "1999" || newOut != "1999" {
		t.Fatalf("equal values colorized: %q / %q", oldOut, newOut)
	}
	oldOut, newOut = d.Whole("1999", "2001")
	want := d.Styles.Colorize(style.Error, "1999")
	if oldOut != want {
		t.Fatalf("old value = %q, want %q", oldOut, want)
	}
	if style.Strip(newOut) != "2001" {
		t.Fatalf("new value stripped = %q", style.Strip(newOut))
	}
}

func TestOpcodesCoverBothStrings(t *testing.T) {
	a, b := []rune("kitten"), []rune("sitting")
	ops := opcodes(a, b)
	ai, bi := 0, 0
	for _, op := range ops {
		if op.A1 != ai || op.B1 != bi {
			t.Fatalf("gap in opcode coverage at %+v", op)
		}
		ai, bi = op.A2, op.B2
	}
	if ai != len(a) || bi != len(b) {
		t.Fatalf("opcodes end at %d/%d, want %d/%d", ai, bi, len(a), len(b))
	}
}

func TestSplitWords(t *testing.T) {
	got := splitWords("a  bc d")
	want := []string{"a", "  ", "bc", " ", "d"}
	if len(got) != len(want) {
		t.Fatalf("splitWords = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("splitWords[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
