package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"retag/internal/config"
	"retag/internal/decision"
	"retag/internal/library"
	"retag/internal/logging"
	"retag/internal/match"
	"retag/internal/prompt"
	"retag/internal/render"
	"retag/internal/style"
)

// ErrAborted reports that the operator aborted the run. Units decided before
// the abort keep their outcomes.
var ErrAborted = errors.New("import aborted")

// Stats counts decision outcomes for one run.
type Stats struct {
	Applied int
	AsIs    int
	Skipped int
}

// Runner walks proposals through decision, duplicate resolution, and the
// library.
type Runner struct {
	cfg      *config.Config
	styles   style.Table
	renderer *render.Renderer
	session  *decision.Session
	matcher  *offlineMatcher
	store    *library.Store
	logger   *slog.Logger
}

// NewRunner wires a run. store may be nil, which disables duplicate checks
// and persistence (dry runs).
func NewRunner(cfg *config.Config, prompter *prompt.Prompter, renderer *render.Renderer, store *library.Store, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "pipeline")
	matcher := newOfflineMatcher(cfg)
	return &Runner{
		cfg:      cfg,
		styles:   renderer.Styles(),
		renderer: renderer,
		session:  decision.NewSession(cfg, prompter, renderer, matcher, logger),
		matcher:  matcher,
		store:    store,
		logger:   logger,
	}
}

// Run decides every proposal in order. A single abort ends the run with
// ErrAborted; all other decisions continue to the next unit.
func (r *Runner) Run(ctx context.Context, proposals []match.Proposal) (Stats, error) {
	runID := uuid.NewString()
	logger := r.logger.With(logging.String("run_id", runID))
	logger.Info("import run starting", logging.Args(logging.Int("units", len(proposals)))...)

	var stats Stats
	for i := range proposals {
		prop := &proposals[i]
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		r.printUnitHeader(prop)
		r.matcher.setUnit(prop.Candidates)

		unitLogger := logger.With(logging.String("unit_id", prop.ID))
		dec, err := r.decide(ctx, prop)
		if err != nil {
			return stats, fmt.Errorf("decide unit %s: %w", prop.ID, err)
		}
		unitLogger.Info("unit decided", logging.Args(logging.String("action", dec.Action.String()))...)

		switch dec.Action {
		case decision.ActionAbort:
			logger.Info("run aborted by operator")
			return stats, ErrAborted
		case decision.ActionSkip:
			stats.Skipped++
		case decision.ActionTracks, decision.ActionAlbums:
			// Regrouping needs the engine to rebuild proposals; record the
			// intent and move on.
			unitLogger.Warn("regrouping requires a fresh engine run; unit skipped")
			stats.Skipped++
		case decision.ActionApply, decision.ActionAsIs:
			committed, err := r.commit(ctx, prop, dec)
			if err != nil {
				return stats, err
			}
			if !committed {
				stats.Skipped++
				break
			}
			if dec.Action == decision.ActionApply {
				stats.Applied++
			} else {
				stats.AsIs++
			}
		}
	}

	logger.Info("import run finished",
		logging.Args(
			logging.Int("applied", stats.Applied),
			logging.Int("asis", stats.AsIs),
			logging.Int("skipped", stats.Skipped),
		)...)
	return stats, nil
}

// printUnitHeader shows what is being tagged: the unit's paths and its item
// count.
func (r *Runner) printUnitHeader(prop *match.Proposal) {
	r.renderer.Print("")
	paths := prop.Paths
	if len(paths) == 0 {
		for _, item := range unitItems(prop) {
			paths = append(paths, item.Path)
		}
	}
	header := r.styles.Colorize(style.Path, strings.Join(paths, "\n"))
	count := r.styles.Colorize(style.PathItems, fmt.Sprintf("(%d items)", len(unitItems(prop))))
	r.renderer.Print(header + " " + count)
}

func (r *Runner) decide(ctx context.Context, prop *match.Proposal) (decision.Decision, error) {
	if prop.Singleton {
		return r.session.ChooseTrack(ctx, prop)
	}
	return r.session.ChooseAlbum(ctx, prop)
}

// commit resolves duplicates and persists the unit. Returns false when the
// duplicate resolution skipped the new copy.
func (r *Runner) commit(ctx context.Context, prop *match.Proposal, dec decision.Decision) (bool, error) {
	artist, album, items := committedIdentity(prop, dec)

	if r.store == nil {
		return true, nil
	}

	existing, err := r.findDuplicates(ctx, prop, artist, album, items)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		resolution, err := r.session.ResolveDuplicate(ctx, prop, existing)
		if err != nil {
			return false, err
		}
		switch resolution {
		case decision.DuplicateSkipNew:
			return false, nil
		case decision.DuplicateRemoveOld:
			if !prop.Singleton {
				if _, err := r.store.RemoveAlbum(ctx, artist, album); err != nil {
					return false, fmt.Errorf("remove duplicate album: %w", err)
				}
			}
		case decision.DuplicateKeepBoth:
		}
	}

	if prop.Singleton {
		if len(items) > 0 {
			if err := r.store.AddItem(ctx, items[0]); err != nil {
				return false, fmt.Errorf("store item: %w", err)
			}
		}
		return true, nil
	}
	if _, err := r.store.AddAlbum(ctx, artist, album, items); err != nil {
		return false, fmt.Errorf("store album: %w", err)
	}
	return true, nil
}

func (r *Runner) findDuplicates(ctx context.Context, prop *match.Proposal, artist, album string, items []match.Item) ([][]match.Item, error) {
	if prop.Singleton {
		if len(items) == 0 {
			return nil, nil
		}
		found, err := r.store.FindItemDuplicates(ctx, items[0].Artist, items[0].Title)
		if err != nil {
			return nil, fmt.Errorf("find item duplicates: %w", err)
		}
		groups := make([][]match.Item, 0, len(found))
		for _, item := range found {
			groups = append(groups, []match.Item{item})
		}
		return groups, nil
	}

	groups, err := r.store.FindAlbumDuplicates(ctx, artist, album)
	if err != nil {
		return nil, fmt.Errorf("find album duplicates: %w", err)
	}
	return groups, nil
}

func unitItems(prop *match.Proposal) []match.Item {
	if prop.Singleton && prop.Item != nil {
		return []match.Item{*prop.Item}
	}
	return prop.Items
}

// committedIdentity resolves the metadata the unit is stored under: the
// candidate's for apply, the current tags for as-is.
func committedIdentity(prop *match.Proposal, dec decision.Decision) (artist, album string, items []match.Item) {
	if dec.Action != decision.ActionApply || dec.Candidate == nil {
		return prop.Artist, prop.Album, unitItems(prop)
	}

	cand := dec.Candidate
	if prop.Singleton {
		item := *prop.Item
		if cand.Track != nil {
			item.Title = cand.Track.Title
		}
		if cand.TrackArtist != "" {
			item.Artist = cand.TrackArtist
		}
		return item.Artist, "", []match.Item{item}
	}

	artist, album = cand.Album.Artist, cand.Album.Album
	items = make([]match.Item, 0, len(cand.Mapping))
	for _, pair := range cand.Mapping {
		item := pair.Item
		item.Title = pair.Track.Title
		item.Artist = artist
		item.Album = album
		item.Track = pair.Track.Index
		item.Disc = pair.Track.Medium
		item.DiscTotal = cand.Album.Mediums
		items = append(items, item)
	}
	return artist, album, items
}
