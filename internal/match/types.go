package match

import (
	"context"
	"fmt"
	"sort"
)

// VariousArtists is the sentinel artist used for compilation releases. The
// renderer suppresses artist diffs against it.
const VariousArtists = "Various Artists"

// TrackInfo is a candidate's metadata for one track.
type TrackInfo struct {
	Title       string  `json:"title"`
	Index       int     `json:"index"`
	Medium      int     `json:"medium"`
	MediumIndex int     `json:"medium_index"`
	DiscTitle   string  `json:"disc_title,omitempty"`
	Length      float64 `json:"length,omitempty"`
	DataSource  string  `json:"data_source,omitempty"`
}

// Item is an original file's current metadata, as read by the external tag
// layer before matching.
type Item struct {
	Path      string  `json:"path"`
	Title     string  `json:"title"`
	Artist    string  `json:"artist,omitempty"`
	Album     string  `json:"album,omitempty"`
	Track     int     `json:"track,omitempty"`
	Disc      int     `json:"disc,omitempty"`
	DiscTotal int     `json:"disc_total,omitempty"`
	Length    float64 `json:"length,omitempty"`
	Bitrate   int     `json:"bitrate,omitempty"`
	Filesize  int64   `json:"filesize,omitempty"`
	Format    string  `json:"format,omitempty"`
}

// TrackRef is the common index surface over a TrackInfo or an Item, used
// wherever a track position must be formatted without caring which side it
// came from.
type TrackRef struct {
	Index       int
	Medium      int
	MediumIndex int
	DiscCount   int
}

// Ref returns the track reference of a candidate track. mediums is the
// candidate album's disc count.
func (t TrackInfo) Ref(mediums int) TrackRef {
	return TrackRef{Index: t.Index, Medium: t.Medium, MediumIndex: t.MediumIndex, DiscCount: mediums}
}

// Ref returns the track reference of an original item.
func (i Item) Ref() TrackRef {
	return TrackRef{Index: i.Track, Medium: i.Disc, MediumIndex: i.Track, DiscCount: i.DiscTotal}
}

// AlbumInfo is a candidate's album-level metadata.
type AlbumInfo struct {
	Artist         string      `json:"artist"`
	Album          string      `json:"album"`
	Tracks         []TrackInfo `json:"tracks,omitempty"`
	Media          string      `json:"media,omitempty"`
	Mediums        int         `json:"mediums,omitempty"`
	Year           int         `json:"year,omitempty"`
	Country        string      `json:"country,omitempty"`
	Label          string      `json:"label,omitempty"`
	Disambiguation string      `json:"disambiguation,omitempty"`
	DataSource     string      `json:"data_source,omitempty"`
	DataURL        string      `json:"data_url,omitempty"`
}

// TrackPair maps one original item to its matched candidate track.
type TrackPair struct {
	Item  Item      `json:"item"`
	Track TrackInfo `json:"track"`
}

// Candidate is one proposed correction produced by the matching engine.
// Exactly one of Album or Track is set, depending on whether the unit of
// work is an album or a standalone track. Candidates are immutable; the
// decision layer only reads them.
type Candidate struct {
	// Distance scores similarity in [0,1]; 0 is an exact match.
	Distance  float64  `json:"distance"`
	Penalties []string `json:"penalties,omitempty"`

	Album *AlbumInfo `json:"album,omitempty"`
	Track *TrackInfo `json:"track,omitempty"`

	// Mapping pairs each original item with its candidate track, ordered
	// by candidate track index regardless of original file order.
	Mapping     []TrackPair `json:"mapping,omitempty"`
	ExtraTracks []TrackInfo `json:"extra_tracks,omitempty"`
	ExtraItems  []Item      `json:"extra_items,omitempty"`

	// TrackArtist carries the artist for singleton candidates.
	TrackArtist string `json:"track_artist,omitempty"`
	DataURL     string `json:"data_url,omitempty"`
}

// SortMapping restores the canonical candidate track order. Engine output
// is expected to arrive sorted already; loaders call this to enforce the
// invariant.
func (c *Candidate) SortMapping() {
	sort.SliceStable(c.Mapping, func(i, j int) bool {
		return c.Mapping[i].Track.Index < c.Mapping[j].Track.Index
	})
}

// Recommendation is the matcher's confidence tier for the top candidate.
type Recommendation int

const (
	RecNone Recommendation = iota
	RecLow
	RecMedium
	RecStrong
)

var recNames = map[Recommendation]string{
	RecNone:   "none",
	RecLow:    "low",
	RecMedium: "medium",
	RecStrong: "strong",
}

func (r Recommendation) String() string {
	if name, ok := recNames[r]; ok {
		return name
	}
	return fmt.Sprintf("recommendation(%d)", int(r))
}

// MarshalText renders the tier name for JSON and logs.
func (r Recommendation) MarshalText() ([]byte, error) {
	name, ok := recNames[r]
	if !ok {
		return nil, fmt.Errorf("unknown recommendation %d", int(r))
	}
	return []byte(name), nil
}

// UnmarshalText parses a tier name; unknown names map to none.
func (r *Recommendation) UnmarshalText(text []byte) error {
	for tier, name := range recNames {
		if name == string(text) {
			*r = tier
			return nil
		}
	}
	*r = RecNone
	return nil
}

// Proposal is one unit of work handed to the decision layer: the current
// state of an album (or single track) plus the engine's ranked candidates.
type Proposal struct {
	ID         string         `json:"id,omitempty"`
	Paths      []string       `json:"paths,omitempty"`
	Artist     string         `json:"artist,omitempty"`
	Album      string         `json:"album,omitempty"`
	Singleton  bool           `json:"singleton,omitempty"`
	Items      []Item         `json:"items,omitempty"`
	Item       *Item          `json:"item,omitempty"`
	Candidates []Candidate    `json:"candidates,omitempty"`
	Rec        Recommendation `json:"recommendation"`
}

// Matcher is the external engine boundary. Search and Lookup re-query the
// engine with operator-supplied terms or an identifier and return a fresh
// ranked candidate list with its recommendation.
type Matcher interface {
	SearchAlbum(ctx context.Context, items []Item, artist, album string) ([]Candidate, Recommendation, error)
	SearchTrack(ctx context.Context, item Item, artist, title string) ([]Candidate, Recommendation, error)
	LookupAlbum(ctx context.Context, items []Item, id string) ([]Candidate, Recommendation, error)
	LookupTrack(ctx context.Context, item Item, id string) ([]Candidate, Recommendation, error)
}
