package pipeline

import (
	"context"
	"strings"

	"retag/internal/config"
	"retag/internal/match"
)

// offlineMatcher answers manual re-queries against the candidates already
// present in the proposals file. The engine is not reachable during an
// import run, so search and lookup narrow the current unit's candidate list
// instead of fetching fresh ones.
type offlineMatcher struct {
	cfg        *config.Config
	candidates []match.Candidate
}

func newOfflineMatcher(cfg *config.Config) *offlineMatcher {
	return &offlineMatcher{cfg: cfg}
}

// setUnit installs the candidate pool for the unit currently being decided.
func (m *offlineMatcher) setUnit(candidates []match.Candidate) {
	m.candidates = candidates
}

func (m *offlineMatcher) SearchAlbum(_ context.Context, _ []match.Item, artist, album string) ([]match.Candidate, match.Recommendation, error) {
	found := m.filter(func(c *match.Candidate) bool {
		if c.Album == nil {
			return false
		}
		return containsFold(c.Album.Artist, artist) && containsFold(c.Album.Album, album)
	})
	return found, m.recommend(found), nil
}

func (m *offlineMatcher) SearchTrack(_ context.Context, _ match.Item, artist, title string) ([]match.Candidate, match.Recommendation, error) {
	found := m.filter(func(c *match.Candidate) bool {
		if c.Track == nil {
			return false
		}
		return containsFold(c.TrackArtist, artist) && containsFold(c.Track.Title, title)
	})
	return found, m.recommend(found), nil
}

func (m *offlineMatcher) LookupAlbum(_ context.Context, _ []match.Item, id string) ([]match.Candidate, match.Recommendation, error) {
	return m.lookup(id)
}

func (m *offlineMatcher) LookupTrack(_ context.Context, _ match.Item, id string) ([]match.Candidate, match.Recommendation, error) {
	return m.lookup(id)
}

func (m *offlineMatcher) lookup(id string) ([]match.Candidate, match.Recommendation, error) {
	found := m.filter(func(c *match.Candidate) bool {
		if id == "" {
			return false
		}
		if strings.Contains(c.DataURL, id) {
			return true
		}
		return c.Album != nil && strings.Contains(c.Album.DataURL, id)
	})
	return found, m.recommend(found), nil
}

func (m *offlineMatcher) filter(keep func(*match.Candidate) bool) []match.Candidate {
	var found []match.Candidate
	for i := range m.candidates {
		if keep(&m.candidates[i]) {
			found = append(found, m.candidates[i])
		}
	}
	return found
}

// recommend derives the tier from the best (first) distance; the pool is
// already sorted best-first.
func (m *offlineMatcher) recommend(candidates []match.Candidate) match.Recommendation {
	if len(candidates) == 0 {
		return match.RecNone
	}
	dist := candidates[0].Distance
	switch {
	case dist <= m.cfg.Match.StrongRecThresh:
		return match.RecStrong
	case dist <= m.cfg.Match.MediumRecThresh:
		return match.RecMedium
	default:
		return match.RecLow
	}
}

// containsFold reports whether s contains substr, ignoring case. An empty
// substring matches anything, so blank search terms do not over-filter.
func containsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
