package render

import (
	"fmt"
	"io"
	"strings"

	"retag/internal/config"
	"retag/internal/diff"
	"retag/internal/style"
)

// Renderer writes change views to a terminal-like stream. Width is the
// visible terminal width used for column negotiation.
type Renderer struct {
	out    io.Writer
	styles style.Table
	differ diff.Differ
	cfg    *config.Config
	width  int
}

// New returns a Renderer. cfg must be validated; width is the terminal
// width in columns.
func New(out io.Writer, styles style.Table, cfg *config.Config, width int) *Renderer {
	return &Renderer{
		out:    out,
		styles: styles,
		differ: diff.Differ{Styles: styles},
		cfg:    cfg,
		width:  width,
	}
}

// Styles exposes the renderer's color table for callers composing their own
// one-off lines.
func (r *Renderer) Styles() style.Table { return r.styles }

func (r *Renderer) print(args ...string) {
	fmt.Fprintln(r.out, strings.Join(args, " "))
}

func indent(width int) string {
	if width <= 0 {
		return ""
	}
	return strings.Repeat(" ", width)
}

// DistColorize colors a string by similarity tier: success within the strong
// threshold, warning within the medium threshold, error otherwise.
func (r *Renderer) DistColorize(s string, dist float64) string {
	switch {
	case dist <= r.cfg.Match.StrongRecThresh:
		return r.styles.Colorize(style.Success, s)
	case dist <= r.cfg.Match.MediumRecThresh:
		return r.styles.Colorize(style.Warning, s)
	default:
		return r.styles.Colorize(style.Error, s)
	}
}

// DistString formats a distance as a colorized similarity percentage.
func (r *Renderer) DistString(dist float64) string {
	return r.DistColorize(fmt.Sprintf("%.1f%%", (1-dist)*100), dist)
}

// PenaltyString summarizes penalty keys, prefixed with U+2260 (not equal to)
// and truncated with an ellipsis after limit entries. Returns "" when there
// are no penalties. limit <= 0 means unlimited.
func (r *Renderer) PenaltyString(penalties []string, limit int) string {
	if len(penalties) == 0 {
		return ""
	}
	names := make([]string, 0, len(penalties))
	for _, key := range penalties {
		key = strings.ReplaceAll(key, "album_", "")
		key = strings.ReplaceAll(key, "track_", "")
		key = strings.ReplaceAll(key, "_", " ")
		names = append(names, key)
	}
	if limit > 0 && len(names) > limit {
		names = append(names[:limit], "...")
	}
	return r.styles.Colorize(style.Changed, "≠ "+strings.Join(names, ", "))
}

// HumanBytes formats a byte count with binary-prefix units.
func HumanBytes(size int64) string {
	value := float64(size)
	unit := "B"
	for _, power := range []string{"", "K", "M", "G", "T", "P", "E"} {
		if value < 1024 {
			return fmt.Sprintf("%3.1f %s%s", value, power, unit)
		}
		value /= 1024
		unit = "iB"
	}
	return "big"
}

// HumanSecondsShort formats a duration in seconds as M:SS.
func HumanSecondsShort(seconds float64) string {
	whole := int(seconds)
	return fmt.Sprintf("%d:%02d", whole/60, whole%60)
}
