package config

const (
	defaultLibraryPath     = "~/.local/share/retag/library.db"
	defaultTerminalWidth   = 80
	defaultPromptWidth     = 72
	defaultLengthDiff      = 0.1
	defaultAlbumDiffLayout = "column"
	defaultQuietFallback   = "skip"
	defaultNoneRecAction   = "ask"
	defaultDefaultAction   = "apply"
	defaultStrongRecThresh = 0.04
	defaultMediumRecThresh = 0.25
	defaultMaxPenalties    = 3
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		UI: UI{
			Color:               "auto",
			TerminalWidth:       defaultTerminalWidth,
			PromptWidth:         defaultPromptWidth,
			LengthDiffThreshold: defaultLengthDiff,
			ShowUnchanged:       true,
			AlbumDiffLayout:     defaultAlbumDiffLayout,
			Indentation: Indentation{
				MatchHeader:    2,
				MatchDetails:   4,
				MatchTracklist: 4,
			},
		},
		Import: Import{
			QuietFallback: defaultQuietFallback,
			NoneRecAction: defaultNoneRecAction,
			DefaultAction: defaultDefaultAction,
		},
		Match: Match{
			StrongRecThresh: defaultStrongRecThresh,
			MediumRecThresh: defaultMediumRecThresh,
			MaxPenalties:    defaultMaxPenalties,
		},
		Library: Library{
			Path: defaultLibraryPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
