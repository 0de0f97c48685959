package style

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"

	"github.com/mattn/go-runewidth"
)

// Role names an abstract color used by the rendering components. Role values
// double as the keys under [ui.colors] in the configuration file.
type Role string

const (
	Success        Role = "text_success"
	Warning        Role = "text_warning"
	Error          Role = "text_error"
	Highlight      Role = "text_highlight"
	HighlightMinor Role = "text_highlight_minor"
	Text           Role = "text"
	Faint          Role = "text_faint"
	Path           Role = "import_path"
	PathItems      Role = "import_path_items"
	Action         Role = "action"
	ActionDefault  Role = "action_default"
	ActionDescr    Role = "action_description"
	Added          Role = "added"
	Removed        Role = "removed"
	Changed        Role = "changed"
	DiffAdded      Role = "text_diff_added"
	DiffRemoved    Role = "text_diff_removed"
	DiffChanged    Role = "text_diff_changed"
)

// Roles lists every role the renderer understands, in configuration order.
var Roles = []Role{
	Success, Warning, Error, Highlight, HighlightMinor,
	Text, Faint, Path, PathItems,
	Action, ActionDefault, ActionDescr,
	Added, Removed, Changed,
	DiffAdded, DiffRemoved, DiffChanged,
}

const escape = "\x1b["

// Reset restores default foreground, background, and intensity.
const Reset = escape + "39;49;00m"

// ansiCodes maps configurable code names to their SGR parameters.
var ansiCodes = map[string]int{
	"normal":    0,
	"bold":      1,
	"faint":     2,
	"underline": 4,
	"inverse":   7,

	"black":   30,
	"red":     31,
	"green":   32,
	"yellow":  33,
	"blue":    34,
	"magenta": 35,
	"cyan":    36,
	"white":   37,

	"bg_black":   40,
	"bg_red":     41,
	"bg_green":   42,
	"bg_yellow":  43,
	"bg_blue":    44,
	"bg_magenta": 45,
	"bg_cyan":    46,
	"bg_white":   47,
}

// Table resolves roles to escape-sequence prefixes. The zero value is a
// disabled table: Colorize returns its input unchanged.
type Table struct {
	enabled  bool
	prefixes map[Role]string
	logger   *slog.Logger
}

// NewTable builds a color table from role definitions, each an ordered list
// of ANSI code names. Definitions for unknown roles are ignored; roles with
// a malformed definition fall back to passthrough and are reported once via
// the logger. A nil defs map yields the built-in defaults.
func NewTable(enabled bool, defs map[string][]string, logger *slog.Logger) Table {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	t := Table{enabled: enabled, logger: logger}
	if !enabled {
		return t
	}

	t.prefixes = make(map[Role]string, len(Roles))
	for _, role := range Roles {
		def, ok := defs[string(role)]
		if !ok {
			def = defaultColors[role]
		}
		prefix, err := compile(def)
		if err != nil {
			logger.Warn("invalid color definition, role will not be colorized",
				slog.String("role", string(role)), slog.Any("error", err))
			continue
		}
		t.prefixes[role] = prefix
	}
	return t
}

func compile(codes []string) (string, error) {
	if len(codes) == 0 {
		return "", fmt.Errorf("empty color definition")
	}
	var prefix string
	for _, code := range codes {
		n, ok := ansiCodes[code]
		if !ok {
			return "", fmt.Errorf("no such ANSI code %q", code)
		}
		prefix += fmt.Sprintf("%s%dm", escape, n)
	}
	return prefix, nil
}

// Enabled reports whether the table produces escape sequences at all.
func (t Table) Enabled() bool { return t.enabled }

// Colorize wraps text in the escape sequence for role. Unknown or unresolved
// roles, a disabled table, and empty text all return the text unchanged.
func (t Table) Colorize(role Role, text string) string {
	if !t.enabled || text == "" {
		return text
	}
	prefix, ok := t.prefixes[role]
	if !ok {
		t.logger.Debug("unknown color role", slog.String("role", string(role)))
		return text
	}
	return prefix + text + Reset
}

// ansiPattern matches "ESC [ <digits-and-semicolons> <letter>".
var ansiPattern = regexp.MustCompile(`\x1b\[[;\d]*[A-Za-z]`)

// Strip removes all ANSI escape sequences from text.
func Strip(text string) string {
	return ansiPattern.ReplaceAllString(text, "")
}

// Width returns the number of terminal columns text occupies, excluding
// escape sequences and accounting for wide runes.
func Width(text string) int {
	return runewidth.StringWidth(Strip(text))
}
