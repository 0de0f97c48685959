package config

import "fmt"

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateUI(); err != nil {
		return err
	}
	if err := c.validateImport(); err != nil {
		return err
	}
	if err := c.validateMatch(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateUI() error {
	switch c.UI.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("ui.color: unsupported value %q", c.UI.Color)
	}
	switch c.UI.AlbumDiffLayout {
	case "column", "newline":
	default:
		return fmt.Errorf("ui.albumdiff_layout: unsupported value %q", c.UI.AlbumDiffLayout)
	}
	if c.UI.TerminalWidth <= 0 {
		return fmt.Errorf("ui.terminal_width must be positive, got %d", c.UI.TerminalWidth)
	}
	if c.UI.PromptWidth <= 0 {
		return fmt.Errorf("ui.prompt_width must be positive, got %d", c.UI.PromptWidth)
	}
	if c.UI.LengthDiffThreshold < 0 {
		return fmt.Errorf("ui.length_diff_threshold must not be negative")
	}
	for _, indent := range []struct {
		name  string
		value int
	}{
		{"match_header", c.UI.Indentation.MatchHeader},
		{"match_details", c.UI.Indentation.MatchDetails},
		{"match_tracklist", c.UI.Indentation.MatchTracklist},
	} {
		if indent.value < 0 {
			return fmt.Errorf("ui.indentation.%s must not be negative", indent.name)
		}
	}
	return nil
}

func (c *Config) validateImport() error {
	switch c.Import.QuietFallback {
	case "skip", "asis":
	default:
		return fmt.Errorf("import.quiet_fallback: unsupported value %q", c.Import.QuietFallback)
	}
	switch c.Import.NoneRecAction {
	case "skip", "asis", "ask":
	default:
		return fmt.Errorf("import.none_rec_action: unsupported value %q", c.Import.NoneRecAction)
	}
	switch c.Import.DefaultAction {
	case "apply", "skip", "asis", "none":
	default:
		return fmt.Errorf("import.default_action: unsupported value %q", c.Import.DefaultAction)
	}
	return nil
}

func (c *Config) validateMatch() error {
	if c.Match.StrongRecThresh < 0 || c.Match.StrongRecThresh > 1 {
		return fmt.Errorf("match.strong_rec_thresh must be within [0,1]")
	}
	if c.Match.MediumRecThresh < 0 || c.Match.MediumRecThresh > 1 {
		return fmt.Errorf("match.medium_rec_thresh must be within [0,1]")
	}
	if c.Match.StrongRecThresh > c.Match.MediumRecThresh {
		return fmt.Errorf("match.strong_rec_thresh must not exceed match.medium_rec_thresh")
	}
	if c.Match.MaxPenalties < 0 {
		return fmt.Errorf("match.max_penalties must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
