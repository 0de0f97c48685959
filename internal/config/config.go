package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Indentation holds the leading-space widths of the change view blocks.
type Indentation struct {
	MatchHeader    int `toml:"match_header"`
	MatchDetails   int `toml:"match_details"`
	MatchTracklist int `toml:"match_tracklist"`
}

// UI contains terminal rendering configuration.
type UI struct {
	// Color is "auto", "always", or "never".
	Color         string `toml:"color"`
	TerminalWidth int    `toml:"terminal_width"`
	PromptWidth   int    `toml:"prompt_width"`
	// LengthDiffThreshold is the track-length difference, in seconds,
	// above which durations are highlighted as changed.
	LengthDiffThreshold float64 `toml:"length_diff_threshold"`
	PerDiscNumbering    bool    `toml:"per_disc_numbering"`
	// ShowUnchanged includes unchanged tracks in the album diff.
	ShowUnchanged bool `toml:"show_unchanged"`
	// AlbumDiffLayout is "column" or "newline" and selects how changed
	// tracks that overflow their columns are rendered.
	AlbumDiffLayout string              `toml:"albumdiff_layout"`
	Indentation     Indentation         `toml:"indentation"`
	Colors          map[string][]string `toml:"colors"`
}

// Import contains decision policy configuration.
type Import struct {
	Quiet bool `toml:"quiet"`
	Timid bool `toml:"timid"`
	// QuietFallback ("skip" or "asis") applies in quiet mode when the
	// recommendation is not strong.
	QuietFallback string `toml:"quiet_fallback"`
	// NoneRecAction ("skip", "asis", or "ask") applies outside quiet mode
	// when the recommendation tier is none.
	NoneRecAction string `toml:"none_rec_action"`
	// DefaultAction ("apply", "skip", "asis", or "none") preselects the
	// confirmation prompt choice; "none" requires an explicit answer.
	DefaultAction string `toml:"default_action"`
}

// Match contains similarity-threshold configuration.
type Match struct {
	StrongRecThresh float64 `toml:"strong_rec_thresh"`
	MediumRecThresh float64 `toml:"medium_rec_thresh"`
	// MaxPenalties caps how many penalty keys are listed per candidate
	// before the summary is truncated with an ellipsis.
	MaxPenalties int `toml:"max_penalties"`
}

// Library contains the duplicate-detection store settings.
type Library struct {
	Path string `toml:"path"`
}

// Logging contains log output configuration.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for retag.
type Config struct {
	UI      UI      `toml:"ui"`
	Import  Import  `toml:"import"`
	Match   Match   `toml:"match"`
	Library Library `toml:"library"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/retag/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// path is where the file was (or would be) read; exists reports whether it
// was actually present.
func Load(path string) (cfg *Config, resolvedPath string, exists bool, err error) {
	loaded := Default()

	resolvedPath, exists, err = resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&loaded); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := loaded.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := loaded.Validate(); err != nil {
		return nil, "", false, err
	}
	return &loaded, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("retag.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	c.UI.Color = strings.ToLower(strings.TrimSpace(c.UI.Color))
	c.UI.AlbumDiffLayout = strings.ToLower(strings.TrimSpace(c.UI.AlbumDiffLayout))
	c.Import.QuietFallback = strings.ToLower(strings.TrimSpace(c.Import.QuietFallback))
	c.Import.NoneRecAction = strings.ToLower(strings.TrimSpace(c.Import.NoneRecAction))
	c.Import.DefaultAction = strings.ToLower(strings.TrimSpace(c.Import.DefaultAction))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))

	expanded, err := expandPath(c.Library.Path)
	if err != nil {
		return err
	}
	c.Library.Path = expanded
	return nil
}

// ColorEnabled resolves the color mode against the given terminal state.
func (c *Config) ColorEnabled(isTerminal bool) bool {
	switch c.UI.Color {
	case "always":
		return true
	case "never":
		return false
	default:
		return isTerminal
	}
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
