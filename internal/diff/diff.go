package diff

import (
	"path/filepath"
	"strings"
	"unicode"

	"retag/internal/style"
)

// Differ colorizes differences between value pairs using the given table.
// With a disabled table every method degenerates to returning its inputs.
type Differ struct {
	Styles style.Table
}

// Strings returns old and new with their differing regions colorized:
// removed words in the old string, added words in the new one, and
// case-only changes marked with the minor highlight role on both sides.
// Diffing a string against itself leaves both outputs uncolored.
func (d Differ) Strings(old, new string) (string, string) {
	if !d.Styles.Enabled() {
		return old, new
	}

	a := []rune(old)
	b := []rune(new)

	var aOut, bOut strings.Builder
	for _, op := range opcodes(a, b) {
		aSpan := string(a[op.A1:op.A2])
		bSpan := string(b[op.B1:op.B2])
		switch op.Kind {
		case opEqual:
			aOut.WriteString(aSpan)
			bOut.WriteString(bSpan)
		case opInsert:
			bOut.WriteString(d.colorWords(style.DiffAdded, bSpan))
		case opDelete:
			aOut.WriteString(d.colorWords(style.DiffRemoved, aSpan))
		case opReplace:
			if strings.ToLower(aSpan) == strings.ToLower(bSpan) {
				aOut.WriteString(d.colorWords(style.HighlightMinor, aSpan))
				bOut.WriteString(d.colorWords(style.HighlightMinor, bSpan))
			} else {
				aOut.WriteString(d.colorWords(style.DiffRemoved, aSpan))
				bOut.WriteString(d.colorWords(style.DiffAdded, bSpan))
			}
		}
	}
	return aOut.String(), bOut.String()
}

// Paths is Strings over filesystem paths, converting both to a canonical
// displayable form before diffing.
func (d Differ) Paths(old, new string) (string, string) {
	return d.Strings(displayablePath(old), displayablePath(new))
}

// Whole compares two already-formatted non-string values and colorizes each
// side entirely as an error when they differ. Word-level diffing is not
// meaningful for numeric or structured values.
func (d Differ) Whole(old, new string) (string, string) {
	if old == new {
		return old, new
	}
	return d.Styles.Colorize(style.Error, old), d.Styles.Colorize(style.Error, new)
}

// colorWords colorizes every word in span while leaving whitespace runs
// untouched, so alignment padding keeps its visible width.
func (d Differ) colorWords(role style.Role, span string) string {
	var out strings.Builder
	for _, tok := range splitWords(span) {
		if isSpace(tok) {
			out.WriteString(tok)
		} else {
			out.WriteString(d.Styles.Colorize(role, tok))
		}
	}
	return out.String()
}

// splitWords splits s into alternating word and whitespace tokens,
// preserving every rune of the input.
func splitWords(s string) []string {
	var tokens []string
	var cur strings.Builder
	var curSpace bool
	for _, r := range s {
		space := unicode.IsSpace(r)
		if cur.Len() > 0 && space != curSpace {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
		cur.WriteRune(r)
		curSpace = space
	}
	if cur.Len() > 0 {
		tokens = append(tokens, cur.String())
	}
	return tokens
}

func isSpace(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return s != ""
}

func displayablePath(p string) string {
	if p == "" {
		return p
	}
	return filepath.Clean(filepath.FromSlash(p))
}
