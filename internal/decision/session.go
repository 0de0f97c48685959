package decision

import (
	"context"
	"fmt"
	"log/slog"

	"retag/internal/config"
	"retag/internal/logging"
	"retag/internal/match"
	"retag/internal/prompt"
	"retag/internal/render"
)

// Session drives candidate selection for a whole run. It is single-threaded:
// one unit of work fully resolves, including any manual re-queries, before
// the next begins.
type Session struct {
	cfg      *config.Config
	prompter *prompt.Prompter
	renderer *render.Renderer
	matcher  match.Matcher
	logger   *slog.Logger
}

// NewSession wires a session. matcher may be nil when manual re-queries are
// not available; the manual options then re-prompt with an empty result.
func NewSession(cfg *config.Config, prompter *prompt.Prompter, renderer *render.Renderer, matcher match.Matcher, logger *slog.Logger) *Session {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Session{
		cfg:      cfg,
		prompter: prompter,
		renderer: renderer,
		matcher:  matcher,
		logger:   logger,
	}
}

// pick is the raw outcome of one pass through the interactive loop. Manual
// picks stay internal: the exported methods resolve them by re-querying the
// matcher and looping.
type pick int

const (
	pickCandidate pick = iota
	pickSkip
	pickAsIs
	pickTracks
	pickAlbums
	pickManual
	pickManualID
	pickAbort
)

// ChooseAlbum resolves one album proposal into a Decision.
func (s *Session) ChooseAlbum(ctx context.Context, prop *match.Proposal) (Decision, error) {
	return s.choose(ctx, prop)
}

// ChooseTrack resolves one standalone-track proposal into a Decision.
func (s *Session) ChooseTrack(ctx context.Context, prop *match.Proposal) (Decision, error) {
	return s.choose(ctx, prop)
}

func (s *Session) choose(ctx context.Context, prop *match.Proposal) (Decision, error) {
	candidates, rec := prop.Candidates, prop.Rec

	if action, ok := s.summaryJudgment(rec, len(candidates)); ok {
		s.logger.Info("summary judgment",
			logging.Args(
				logging.String("action", action.String()),
				logging.String("recommendation", rec.String()),
			)...)
		if action == ActionApply {
			cand := &candidates[0]
			s.showChange(prop, cand)
			return Decision{Action: ActionApply, Candidate: cand}, nil
		}
		return Decision{Action: action}, nil
	}

	for {
		choice, cand, err := s.chooseCandidate(prop, candidates, rec)
		if err != nil {
			return Decision{}, err
		}

		switch choice {
		case pickCandidate:
			return Decision{Action: ActionApply, Candidate: cand}, nil
		case pickSkip:
			return Decision{Action: ActionSkip}, nil
		case pickAsIs:
			return Decision{Action: ActionAsIs}, nil
		case pickTracks:
			return Decision{Action: ActionTracks}, nil
		case pickAlbums:
			return Decision{Action: ActionAlbums}, nil
		case pickAbort:
			return Decision{Action: ActionAbort}, nil
		case pickManual:
			candidates, rec, err = s.manualSearch(ctx, prop, candidates, rec)
			if err != nil {
				return Decision{}, err
			}
		case pickManualID:
			candidates, rec, err = s.manualID(ctx, prop, candidates, rec)
			if err != nil {
				return Decision{}, err
			}
		}
	}
}

// summaryJudgment decides without asking when policy allows: quiet mode
// auto-applies strong recommendations and otherwise falls back to the
// configured action, and the none tier consults its own policy. The second
// return reports whether a judgment was made.
func (s *Session) summaryJudgment(rec match.Recommendation, candidateCount int) (Action, bool) {
	var action Action
	switch {
	case s.cfg.Import.Quiet:
		if rec == match.RecStrong && candidateCount > 0 {
			return ActionApply, true
		}
		if s.cfg.Import.QuietFallback == "asis" {
			action = ActionAsIs
		} else {
			action = ActionSkip
		}
	case rec == match.RecNone:
		switch s.cfg.Import.NoneRecAction {
		case "skip":
			action = ActionSkip
		case "asis":
			action = ActionAsIs
		default: // ask
			return 0, false
		}
	default:
		return 0, false
	}

	if action == ActionSkip {
		s.renderer.Print("Skipping.")
	} else {
		s.renderer.Print("Importing as-is.")
	}
	return action, true
}

func (s *Session) showChange(prop *match.Proposal, cand *match.Candidate) {
	if prop.Singleton {
		s.renderer.ShowTrackChange(prop.Item, cand)
	} else {
		s.renderer.ShowAlbumChange(prop.Artist, prop.Album, cand)
	}
}

// chooseCandidate runs the interactive loop for one candidate list: display,
// numeric selection, change view, and confirmation. Manual picks are
// returned to the caller, which owns the re-query loop.
func (s *Session) chooseCandidate(prop *match.Proposal, candidates []match.Candidate, rec match.Recommendation) (pick, *match.Candidate, error) {
	if len(candidates) == 0 {
		return s.chooseWithoutCandidates(prop)
	}

	// A usable recommendation jumps straight to the top candidate's change
	// view; the full list appears only on demand.
	bypass := rec != match.RecNone
	var selected *match.Candidate
	if bypass {
		selected = &candidates[0]
	}

	for {
		require := rec <= match.RecLow
		if !bypass {
			view := *prop
			view.Candidates = candidates
			s.renderer.ShowCandidates(&view)

			choices := []string{"Skip", "Use as-is", "as Tracks", "Group albums", "Enter search", "enter Id", "aBort"}
			if prop.Singleton {
				choices = []string{"Skip", "Use as-is", "Enter search", "enter Id", "aBort"}
			}
			resp, err := s.prompter.Choose(prompt.Options{
				Choices:  choices,
				NumRange: &prompt.Range{Low: 1, High: len(candidates)},
			})
			if err != nil {
				return 0, nil, err
			}

			if resp.IsNumber {
				selected = &candidates[resp.Number-1]
				if resp.Number != 1 {
					// Overriding the ranking deserves an explicit confirmation.
					require = true
				}
			} else {
				switch resp.Letter {
				case 's':
					return pickSkip, nil, nil
				case 'u':
					return pickAsIs, nil, nil
				case 't':
					return pickTracks, nil, nil
				case 'g':
					return pickAlbums, nil, nil
				case 'e':
					return pickManual, nil, nil
				case 'i':
					return pickManualID, nil, nil
				case 'b':
					return pickAbort, nil, nil
				}
			}
		}
		bypass = false

		s.showChange(prop, selected)

		if rec == match.RecStrong && !s.cfg.Import.Timid {
			return pickCandidate, selected, nil
		}

		choices := []string{"Apply", "More candidates", "Skip", "Use as-is", "as Tracks", "Group albums", "Enter search", "enter Id", "aBort"}
		if prop.Singleton {
			choices = []string{"Apply", "More candidates", "Skip", "Use as-is", "Enter search", "enter Id", "aBort"}
		}
		confirmRequire := require
		var defaultLetter string
		switch s.cfg.Import.DefaultAction {
		case "apply":
			defaultLetter = "a"
		case "skip":
			defaultLetter = "s"
		case "asis":
			defaultLetter = "u"
		case "none":
			confirmRequire = true
		}

		resp, err := s.prompter.Choose(prompt.Options{
			Choices: choices,
			Require: confirmRequire,
			Default: defaultLetter,
		})
		if err != nil {
			return 0, nil, err
		}
		switch resp.Letter {
		case 'a':
			return pickCandidate, selected, nil
		case 's':
			return pickSkip, nil, nil
		case 'u':
			return pickAsIs, nil, nil
		case 't':
			return pickTracks, nil, nil
		case 'g':
			return pickAlbums, nil, nil
		case 'e':
			return pickManual, nil, nil
		case 'i':
			return pickManualID, nil, nil
		case 'b':
			return pickAbort, nil, nil
		case 'm':
			// Back to the candidate list.
		}
	}
}

func (s *Session) chooseWithoutCandidates(prop *match.Proposal) (pick, *match.Candidate, error) {
	var choices []string
	if prop.Singleton {
		s.renderer.Print("No matching recordings found.")
		choices = []string{"Use as-is", "Skip", "Enter search", "enter Id", "aBort"}
	} else {
		s.renderer.Print(fmt.Sprintf("No matching release found for %d tracks.", len(prop.Items)))
		choices = []string{"Use as-is", "as Tracks", "Group albums", "Skip", "Enter search", "enter Id", "aBort"}
	}

	resp, err := s.prompter.Choose(prompt.Options{Choices: choices})
	if err != nil {
		return 0, nil, err
	}
	switch resp.Letter {
	case 'u':
		return pickAsIs, nil, nil
	case 't':
		return pickTracks, nil, nil
	case 'g':
		return pickAlbums, nil, nil
	case 's':
		return pickSkip, nil, nil
	case 'e':
		return pickManual, nil, nil
	case 'i':
		return pickManualID, nil, nil
	default:
		return pickAbort, nil, nil
	}
}

// manualSearch re-queries the matcher with operator-supplied terms. The
// current list survives a failed or unavailable re-query.
func (s *Session) manualSearch(ctx context.Context, prop *match.Proposal, candidates []match.Candidate, rec match.Recommendation) ([]match.Candidate, match.Recommendation, error) {
	artist, err := s.prompter.Ask("Artist:")
	if err != nil {
		return nil, 0, err
	}
	namePrompt := "Album:"
	if prop.Singleton {
		namePrompt = "Track:"
	}
	name, err := s.prompter.Ask(namePrompt)
	if err != nil {
		return nil, 0, err
	}

	if s.matcher == nil {
		s.renderer.Print("No matcher available for manual search.")
		return candidates, match.RecNone, nil
	}

	var fresh []match.Candidate
	var freshRec match.Recommendation
	if prop.Singleton {
		fresh, freshRec, err = s.matcher.SearchTrack(ctx, *prop.Item, artist, name)
	} else {
		fresh, freshRec, err = s.matcher.SearchAlbum(ctx, prop.Items, artist, name)
	}
	if err != nil {
		s.logger.Warn("manual search failed", logging.Args(logging.Error(err))...)
		return candidates, rec, nil
	}
	return fresh, freshRec, nil
}

// manualID re-queries the matcher with an operator-supplied identifier. An
// empty identifier keeps the current list.
func (s *Session) manualID(ctx context.Context, prop *match.Proposal, candidates []match.Candidate, rec match.Recommendation) ([]match.Candidate, match.Recommendation, error) {
	idPrompt := "Enter release ID:"
	if prop.Singleton {
		idPrompt = "Enter recording ID:"
	}
	id, err := s.prompter.Ask(idPrompt)
	if err != nil {
		return nil, 0, err
	}
	if id == "" || s.matcher == nil {
		return candidates, rec, nil
	}

	var fresh []match.Candidate
	var freshRec match.Recommendation
	if prop.Singleton {
		fresh, freshRec, err = s.matcher.LookupTrack(ctx, *prop.Item, id)
	} else {
		fresh, freshRec, err = s.matcher.LookupAlbum(ctx, prop.Items, id)
	}
	if err != nil {
		s.logger.Warn("id lookup failed", logging.Args(logging.Error(err))...)
		return candidates, rec, nil
	}
	return fresh, freshRec, nil
}

// ResolveDuplicate decides what to do when the unit already exists in the
// library. existing holds the item groups of each duplicate found. Quiet
// mode always skips the new copy.
func (s *Session) ResolveDuplicate(ctx context.Context, prop *match.Proposal, existing [][]match.Item) (DuplicateAction, error) {
	kind := "album"
	if prop.Singleton {
		kind = "item"
	}
	s.logger.Warn(fmt.Sprintf("this %s is already in the library", kind),
		logging.Args(logging.String("id", prop.ID))...)

	if s.cfg.Import.Quiet {
		s.logger.Info("skipping duplicate")
		return DuplicateSkipNew, nil
	}

	for _, group := range existing {
		s.renderer.Print("Old: " + render.SummarizeItems(group, prop.Singleton))
	}
	newItems := prop.Items
	if prop.Singleton && prop.Item != nil {
		newItems = []match.Item{*prop.Item}
	}
	s.renderer.Print("New: " + render.SummarizeItems(newItems, prop.Singleton))

	resp, err := s.prompter.Choose(prompt.Options{
		Choices: []string{"Skip new", "Keep both", "Remove old"},
	})
	if err != nil {
		return 0, err
	}
	switch resp.Letter {
	case 'k':
		return DuplicateKeepBoth, nil
	case 'r':
		return DuplicateRemoveOld, nil
	default:
		return DuplicateSkipNew, nil
	}
}
