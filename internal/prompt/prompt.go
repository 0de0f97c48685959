package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"retag/internal/style"
)

// ErrAmbiguousOptions reports that no unused shortcut letter could be found
// for some option label. It signals a caller-side bug, not operator input.
var ErrAmbiguousOptions = errors.New("no unambiguous lettering found")

// ErrInputExhausted reports that the input stream ended while a response was
// still required.
var ErrInputExhausted = errors.New("input stream ended while response required")

// arrow prefixes generated prompts (U+279C, heavy round-tipped rightwards arrow).
const arrow = "➜ "

// Range is an inclusive integer interval accepted alongside letter shortcuts.
type Range struct {
	Low  int
	High int
}

// Options configures a single prompt.
type Options struct {
	// Choices are the option labels, in display order. A label containing
	// exactly one uppercase letter pins that letter as its shortcut;
	// otherwise the first alphabetic character not already taken is used.
	Choices []string
	// Require disables the default choice; empty input reprompts.
	Require bool
	// Prompt overrides the generated prompt line.
	Prompt string
	// FallbackPrompt overrides the short prompt shown after invalid input.
	FallbackPrompt string
	// NumRange additionally accepts an integer in the given range.
	NumRange *Range
	// Default names the default shortcut letter. When empty the first
	// option is the default, or the range low bound when NumRange is set.
	Default string
}

// Response is a resolved operator choice: either a shortcut letter or, when a
// numeric range was offered, an integer inside that range.
type Response struct {
	Letter   rune
	Number   int
	IsNumber bool
}

// Prompter reads operator responses and writes prompt lines.
type Prompter struct {
	in       *bufio.Reader
	out      io.Writer
	styles   style.Table
	maxWidth int
}

// New returns a Prompter wrapping the given streams. maxWidth bounds the
// generated prompt line width.
func New(in io.Reader, out io.Writer, styles style.Table, maxWidth int) *Prompter {
	if maxWidth <= 0 {
		maxWidth = 72
	}
	return &Prompter{
		in:       bufio.NewReader(in),
		out:      out,
		styles:   styles,
		maxWidth: maxWidth,
	}
}

type choice struct {
	label    string
	shortcut rune
}

// Choose presents the options and blocks until the operator picks one.
func (p *Prompter) Choose(opts Options) (Response, error) {
	choices, err := p.inferShortcuts(opts)
	if err != nil {
		return Response{}, err
	}

	defaultLetter, defaultNumber, hasNumberDefault := resolveDefault(opts, choices)

	promptLine := opts.Prompt
	if promptLine == "" {
		promptLine = p.buildPrompt(opts, choices, defaultLetter, defaultNumber, hasNumberDefault)
	}
	fallback := opts.FallbackPrompt
	if fallback == "" {
		fallback = buildFallback(opts, choices)
	}

	line, err := p.ask(promptLine)
	for {
		if err != nil {
			return Response{}, err
		}
		resp := strings.ToLower(strings.TrimSpace(line))

		if resp == "" {
			if hasNumberDefault {
				return Response{Number: defaultNumber, IsNumber: true}, nil
			}
			if defaultLetter != 0 {
				return Response{Letter: defaultLetter}, nil
			}
		}

		if opts.NumRange != nil && resp != "" {
			if n, convErr := strconv.Atoi(resp); convErr == nil {
				if n >= opts.NumRange.Low && n <= opts.NumRange.High {
					return Response{Number: n, IsNumber: true}, nil
				}
				line, err = p.ask(fallback)
				continue
			}
		}

		if resp != "" {
			first := []rune(resp)[0]
			for _, c := range choices {
				if first == c.shortcut {
					return Response{Letter: first}, nil
				}
			}
		}

		line, err = p.ask(fallback)
	}
}

// ConfirmYes asks a yes/no question. The default is yes unless require is set.
func (p *Prompter) ConfirmYes(question string, require bool) (bool, error) {
	fallback := p.styles.Colorize(style.Action, arrow) +
		p.styles.Colorize(style.ActionDescr, "Enter Y or N:")
	resp, err := p.Choose(Options{
		Choices:        []string{"y", "n"},
		Require:        require,
		Prompt:         question,
		FallbackPrompt: fallback,
	})
	if err != nil {
		return false, err
	}
	return resp.Letter == 'y', nil
}

func (p *Prompter) inferShortcuts(opts Options) ([]choice, error) {
	used := make(map[rune]bool)
	choices := make([]choice, 0, len(opts.Choices))
	for _, label := range opts.Choices {
		shortcut := findShortcut(label, used)
		if shortcut == 0 {
			return nil, fmt.Errorf("%w: option %q", ErrAmbiguousOptions, label)
		}
		used[shortcut] = true
		choices = append(choices, choice{label: label, shortcut: shortcut})
	}
	return choices, nil
}

// findShortcut picks the shortcut for a label: a pre-capitalized letter wins,
// otherwise the first alphabetic rune not yet taken. Returns 0 when every
// letter of the label is taken.
func findShortcut(label string, used map[rune]bool) rune {
	for _, r := range label {
		if unicode.IsLetter(r) && unicode.IsUpper(r) {
			return unicode.ToLower(r)
		}
	}
	for _, r := range label {
		if !unicode.IsLetter(r) {
			continue
		}
		if !used[unicode.ToLower(r)] {
			return unicode.ToLower(r)
		}
	}
	return 0
}

func resolveDefault(opts Options, choices []choice) (letter rune, number int, isNumber bool) {
	if opts.Require {
		return 0, 0, false
	}
	if opts.Default != "" {
		want := unicode.ToLower([]rune(opts.Default)[0])
		for _, c := range choices {
			if c.shortcut == want {
				return c.shortcut, 0, false
			}
		}
	}
	if opts.NumRange != nil {
		return 0, opts.NumRange.Low, true
	}
	if len(choices) > 0 {
		return choices[0].shortcut, 0, false
	}
	return 0, 0, false
}

// buildPrompt assembles the wrapped prompt line: highlighted shortcut letters,
// the default choice bracketed, parts separated by commas and closed with a
// question mark.
func (p *Prompter) buildPrompt(opts Options, choices []choice, defaultLetter rune, defaultNumber int, hasNumberDefault bool) string {
	type part struct {
		text  string
		width int
	}
	parts := make([]part, 0, len(choices)+1)

	if opts.NumRange != nil {
		if hasNumberDefault {
			plain := fmt.Sprintf("# selection (default %d)", defaultNumber)
			text := "# selection (default " +
				p.styles.Colorize(style.ActionDefault, strconv.Itoa(defaultNumber)) + ")"
			parts = append(parts, part{text: text, width: len(plain)})
		} else {
			parts = append(parts, part{text: "# selection", width: len("# selection")})
		}
	}

	for _, c := range choices {
		isDefault := !opts.Require && !hasNumberDefault && c.shortcut == defaultLetter
		parts = append(parts, part{
			text:  p.renderChoice(c, isDefault),
			width: style.Width(c.label),
		})
	}

	var sb strings.Builder
	sb.WriteString(p.styles.Colorize(style.Action, arrow))
	lineLength := 0
	for i, pt := range parts {
		text := pt.text
		width := pt.width + 1
		if i == len(parts)-1 {
			text += p.styles.Colorize(style.ActionDescr, "?")
		} else {
			text += p.styles.Colorize(style.ActionDescr, ",")
		}

		if lineLength+width+1 > p.maxWidth {
			sb.WriteByte('\n')
			lineLength = 0
		}
		if lineLength != 0 {
			sb.WriteByte(' ')
			width++
		}
		sb.WriteString(text)
		lineLength += width
	}
	return sb.String()
}

// renderChoice highlights the shortcut letter inside the label, uppercased
// and, for the default choice, bracketed.
func (p *Prompter) renderChoice(c choice, isDefault bool) string {
	runes := []rune(c.label)
	at := shortcutIndex(c.label, c.shortcut)
	if at < 0 {
		return p.styles.Colorize(style.ActionDescr, c.label)
	}

	letter := string(unicode.ToUpper(runes[at]))
	letterRole := style.Action
	descrRole := style.ActionDescr
	if isDefault {
		letter = "[" + letter + "]"
		letterRole = style.ActionDefault
		descrRole = style.ActionDefault
	}

	return p.styles.Colorize(descrRole, string(runes[:at])) +
		p.styles.Colorize(letterRole, letter) +
		p.styles.Colorize(descrRole, string(runes[at+1:]))
}

// shortcutIndex finds the rune index of the shortcut inside the label,
// preferring an explicitly capitalized occurrence.
func shortcutIndex(label string, shortcut rune) int {
	runes := []rune(label)
	for i, r := range runes {
		if unicode.IsUpper(r) && unicode.ToLower(r) == shortcut {
			return i
		}
	}
	for i, r := range runes {
		if unicode.ToLower(r) == shortcut {
			return i
		}
	}
	return -1
}

func buildFallback(opts Options, choices []choice) string {
	var sb strings.Builder
	sb.WriteString("Enter one of ")
	if opts.NumRange != nil {
		fmt.Fprintf(&sb, "%d-%d, ", opts.NumRange.Low, opts.NumRange.High)
	}
	for i, c := range choices {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteRune(unicode.ToUpper(c.shortcut))
	}
	sb.WriteByte(':')
	return sb.String()
}

// Ask writes a free-text prompt and returns one trimmed line of input. Used
// for manual search terms and identifiers, where no option list applies.
func (p *Prompter) Ask(promptLine string) (string, error) {
	line, err := p.ask(promptLine)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ask writes the prompt followed by a space and reads one response line.
func (p *Prompter) ask(promptLine string) (string, error) {
	if _, err := fmt.Fprintf(p.out, "%s ", promptLine); err != nil {
		return "", fmt.Errorf("write prompt: %w", err)
	}
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if strings.TrimSpace(line) != "" {
				return line, nil
			}
			return "", ErrInputExhausted
		}
		return "", fmt.Errorf("read response: %w", err)
	}
	return line, nil
}
