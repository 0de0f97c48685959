package render

import (
	"strings"
	"testing"

	"retag/internal/config"
	"retag/internal/match"
	"retag/internal/style"
)

func testConfig() *config.Config {
	cfg := config.Default()
	return &cfg
}

func newTestRenderer(out *strings.Builder) *Renderer {
	return New(out, style.NewTable(false, nil, nil), testConfig(), 80)
}

func TestDistString(t *testing.T) {
	var out strings.Builder
	r := newTestRenderer(&out)

	if got := r.DistString(0.025); got != "97.5%" {
		t.Fatalf("DistString(0.025) = %q, want 97.5%%", got)
	}
	if got := r.DistString(0.0); got != "100.0%" {
		t.Fatalf("DistString(0.0) = %q, want 100.0%%", got)
	}
}

func TestDistColorizeTiers(t *testing.T) {
	var out strings.Builder
	r := New(&out, style.NewTable(true, nil, nil), testConfig(), 80)

	strong := r.DistColorize("x", 0.01)
	medium := r.DistColorize("x", 0.1)
	weak := r.DistColorize("x", 0.5)
	if strong == medium || medium == weak || strong == weak {
		t.Fatalf("tiers should colorize differently: %q %q %q", strong, medium, weak)
	}
	for _, s := range []string{strong, medium, weak} {
		if style.Strip(s) != "x" {
			t.Fatalf("colorizing should preserve text: %q", s)
		}
	}
}

func TestPenaltyString(t *testing.T) {
	var out strings.Builder
	r := newTestRenderer(&out)

	if got := r.PenaltyString(nil, 3); got != "" {
		t.Fatalf("no penalties should yield empty string, got %q", got)
	}

	got := r.PenaltyString([]string{"album_year", "track_length", "unmatched_tracks"}, 0)
	want := "≠ year, length, unmatched tracks"
	if got != want {
		t.Fatalf("PenaltyString = %q, want %q", got, want)
	}

	got = r.PenaltyString([]string{"a", "b", "c", "d"}, 3)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("over-limit penalties should end with ellipsis: %q", got)
	}
	if strings.Contains(got, "d") {
		t.Fatalf("truncated penalty should be dropped: %q", got)
	}
}

func TestDisambigString(t *testing.T) {
	var out strings.Builder
	r := newTestRenderer(&out)

	tests := []struct {
		name string
		info *match.AlbumInfo
		want string
	}{
		{"nil info", nil, ""},
		{"empty info", &match.AlbumInfo{}, ""},
		{
			"canonical source omitted",
			&match.AlbumInfo{DataSource: "MusicBrainz", Year: 1969},
			"1969",
		},
		{
			"full context",
			&match.AlbumInfo{
				DataSource:     "Discogs",
				Media:          "vinyl",
				Mediums:        2,
				Year:           1977,
				Country:        "UK",
				Label:          "Harvest",
				Disambiguation: "first pressing",
			},
			"Discogs | 2xVinyl | 1977 | UK | Harvest | first pressing",
		},
		{
			"single medium",
			&match.AlbumInfo{Media: "CD", Year: 1994},
			"CD | 1994",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.DisambigString(tt.info); got != tt.want {
				t.Fatalf("DisambigString = %q, want %q", got, tt.want)
			}
		})
	}
}

func albumCandidate() *match.Candidate {
	return &match.Candidate{
		Distance:  0.02,
		Penalties: []string{"album_year"},
		Album: &match.AlbumInfo{
			Artist:  "The Beatles",
			Album:   "Abbey Road",
			Media:   "CD",
			Mediums: 1,
			Year:    1969,
			Tracks: []match.TrackInfo{
				{Title: "Come Together", Index: 1, Medium: 1, MediumIndex: 1, Length: 259},
				{Title: "Something", Index: 2, Medium: 1, MediumIndex: 1, Length: 182},
				{Title: "Octopus's Garden", Index: 3, Medium: 1, MediumIndex: 3, Length: 170},
			},
			DataURL: "https://musicbrainz.org/release/xyz",
		},
		Mapping: []match.TrackPair{
			{
				Item:  match.Item{Path: "/music/01.mp3", Title: "Come Together", Track: 1, Length: 259},
				Track: match.TrackInfo{Title: "Come Together", Index: 1, Medium: 1, MediumIndex: 1, Length: 259},
			},
			{
				Item:  match.Item{Path: "/music/02.mp3", Title: "Somethin", Track: 2, Length: 182},
				Track: match.TrackInfo{Title: "Something", Index: 2, Medium: 1, MediumIndex: 2, Length: 182},
			},
		},
		ExtraTracks: []match.TrackInfo{
			{Title: "Octopus's Garden", Index: 3, Medium: 1, MediumIndex: 3, Length: 170},
		},
	}
}

func TestShowAlbumChange(t *testing.T) {
	var out strings.Builder
	r := newTestRenderer(&out)

	r.ShowAlbumChange("The Beatles", "Abby Road", albumCandidate())
	text := out.String()

	if !strings.Contains(text, "Match (98.0%):") {
		t.Fatalf("missing match header: %q", text)
	}
	if !strings.Contains(text, "The Beatles - Abbey Road") {
		t.Fatalf("missing identity line: %q", text)
	}
	if !strings.Contains(text, "≠ year") {
		t.Fatalf("missing penalty line: %q", text)
	}
	if !strings.Contains(text, "* Artist: The Beatles") {
		t.Fatalf("unchanged artist should use the * prefix: %q", text)
	}
	if !strings.Contains(text, "≠ Album: Abby Road -> Abbey Road") {
		t.Fatalf("changed album should be diffed: %q", text)
	}
	if !strings.Contains(text, "* CD 1") {
		t.Fatalf("missing medium header: %q", text)
	}
	if !strings.Contains(text, "Somethin") || !strings.Contains(text, "Something") {
		t.Fatalf("missing changed track row: %q", text)
	}
	if !strings.Contains(text, "Missing tracks (1/3 - 33.3%):") {
		t.Fatalf("missing tracks block wrong: %q", text)
	}
	if !strings.Contains(text, " ! Octopus's Garden (#3) (2:50)") {
		t.Fatalf("missing track line wrong: %q", text)
	}
}

func TestShowAlbumChangeSuppressesVariousArtists(t *testing.T) {
	var out strings.Builder
	r := newTestRenderer(&out)

	cand := albumCandidate()
	cand.Album.Artist = match.VariousArtists
	r.ShowAlbumChange("Somebody", "Abbey Road", cand)

	for _, line := range strings.Split(out.String(), "\n") {
		if strings.Contains(line, "Artist:") {
			t.Fatalf("artist line should be suppressed for compilations: %q", line)
		}
	}
}

func TestShowTrackChange(t *testing.T) {
	var out strings.Builder
	r := newTestRenderer(&out)

	item := &match.Item{Artist: "Bob Dyaln", Title: "Hurricane"}
	cand := &match.Candidate{
		Distance:    0.05,
		TrackArtist: "Bob Dylan",
		Track:       &match.TrackInfo{Title: "Hurricane", Index: 1},
		DataURL:     "https://musicbrainz.org/recording/abc",
	}
	r.ShowTrackChange(item, cand)
	text := out.String()

	if !strings.Contains(text, "Correcting track tags from:") {
		t.Fatalf("missing correction header: %q", text)
	}
	if !strings.Contains(text, "Bob Dyaln - Hurricane") || !strings.Contains(text, "Bob Dylan - Hurricane") {
		t.Fatalf("missing before/after lines: %q", text)
	}
	if !strings.Contains(text, "(Similarity: 95.0%)") {
		t.Fatalf("missing similarity line: %q", text)
	}
	if !strings.Contains(text, "https://musicbrainz.org/recording/abc") {
		t.Fatalf("missing URL: %q", text)
	}
}

func TestShowTrackChangeUnchanged(t *testing.T) {
	var out strings.Builder
	r := newTestRenderer(&out)

	item := &match.Item{Artist: "Nina Simone", Title: "Sinnerman"}
	cand := &match.Candidate{
		Distance:    0.0,
		TrackArtist: "Nina Simone",
		Track:       &match.TrackInfo{Title: "Sinnerman"},
	}
	r.ShowTrackChange(item, cand)

	if !strings.Contains(out.String(), "Tagging track: Nina Simone - Sinnerman") {
		t.Fatalf("unchanged track should use the tagging line: %q", out.String())
	}
}

func TestShowCandidates(t *testing.T) {
	var out strings.Builder
	r := newTestRenderer(&out)

	prop := &match.Proposal{
		Artist: "Pixies",
		Album:  "Doolittle",
		Candidates: []match.Candidate{
			{Distance: 0.03, Album: &match.AlbumInfo{Artist: "Pixies", Album: "Doolittle", Year: 1989}},
			{Distance: 0.4, Penalties: []string{"album_year", "tracks"}, Album: &match.AlbumInfo{Artist: "Pixies", Album: "Doolittle (Remastered)"}},
		},
	}
	r.ShowCandidates(prop)
	text := out.String()

	if !strings.Contains(text, `Finding tags for album "Pixies - Doolittle".`) {
		t.Fatalf("missing query line: %q", text)
	}
	if !strings.Contains(text, "1. (97.0%) Pixies - Doolittle") {
		t.Fatalf("missing first candidate: %q", text)
	}
	if !strings.Contains(text, "2. (60.0%) Pixies - Doolittle (Remastered)") {
		t.Fatalf("missing second candidate: %q", text)
	}
	if !strings.Contains(text, "≠ year, tracks") {
		t.Fatalf("missing penalties: %q", text)
	}
	if !strings.Contains(text, "1989") {
		t.Fatalf("missing disambiguation: %q", text)
	}
}

func TestShowCandidatesHonorsMaxPenalties(t *testing.T) {
	var out strings.Builder
	cfg := testConfig()
	cfg.Match.MaxPenalties = 1
	r := New(&out, style.NewTable(false, nil, nil), cfg, 80)

	prop := &match.Proposal{
		Artist: "Pixies",
		Album:  "Doolittle",
		Candidates: []match.Candidate{
			{
				Distance:  0.4,
				Penalties: []string{"album_year", "country", "label"},
				Album:     &match.AlbumInfo{Artist: "Pixies", Album: "Doolittle"},
			},
		},
	}
	r.ShowCandidates(prop)
	text := out.String()

	if !strings.Contains(text, "≠ year, ...") {
		t.Fatalf("penalties should truncate after the configured limit: %q", text)
	}
	if strings.Contains(text, "country") || strings.Contains(text, "label") {
		t.Fatalf("penalties beyond the limit should be dropped: %q", text)
	}
}

func TestShowTrackChangeDisambiguation(t *testing.T) {
	var out strings.Builder
	r := newTestRenderer(&out)

	item := &match.Item{Artist: "Nick Drake", Title: "Pink Moon"}
	cand := &match.Candidate{
		Distance:    0.0,
		TrackArtist: "Nick Drake",
		Track:       &match.TrackInfo{Title: "Pink Moon", DataSource: "Discogs"},
	}
	r.ShowTrackChange(item, cand)

	if !strings.Contains(out.String(), "(Similarity: 100.0%) (Discogs)") {
		t.Fatalf("missing data-source disambiguation: %q", out.String())
	}

	out.Reset()
	cand.Track.DataSource = "MusicBrainz"
	r.ShowTrackChange(item, cand)
	if strings.Contains(out.String(), "(MusicBrainz)") {
		t.Fatalf("canonical source should be omitted: %q", out.String())
	}
}

func TestTrackDisambigStringInCandidateList(t *testing.T) {
	var out strings.Builder
	r := newTestRenderer(&out)

	prop := &match.Proposal{
		Singleton: true,
		Item:      &match.Item{Artist: "Nick Drake", Title: "Pink Moon"},
		Candidates: []match.Candidate{
			{
				Distance:    0.1,
				TrackArtist: "Nick Drake",
				Track:       &match.TrackInfo{Title: "Pink Moon", DataSource: "Discogs"},
			},
		},
	}
	r.ShowCandidates(prop)

	if !strings.Contains(out.String(), "Discogs") {
		t.Fatalf("singleton candidate should list its data source: %q", out.String())
	}
}

func TestSummarizeItems(t *testing.T) {
	items := []match.Item{
		{Format: "MP3", Bitrate: 320000, Length: 120, Filesize: 1 << 20},
		{Format: "MP3", Bitrate: 320000, Length: 180, Filesize: 2 << 20},
	}

	got := SummarizeItems(items, false)
	want := "2 items, MP3, 320kbps, 5:00, 3.0 MiB"
	if got != want {
		t.Fatalf("SummarizeItems = %q, want %q", got, want)
	}

	got = SummarizeItems(items[:1], true)
	if strings.Contains(got, "items") {
		t.Fatalf("singleton summary should omit the item count: %q", got)
	}
}

func TestSummarizeItemsMixedFormats(t *testing.T) {
	items := []match.Item{
		{Format: "FLAC", Bitrate: 900000, Length: 100, Filesize: 10 << 20},
		{Format: "MP3", Bitrate: 320000, Length: 100, Filesize: 5 << 20},
		{Format: "MP3", Bitrate: 320000, Length: 100, Filesize: 5 << 20},
	}

	got := SummarizeItems(items, false)
	if !strings.Contains(got, "MP3 2, FLAC 1") {
		t.Fatalf("formats should be sorted by frequency: %q", got)
	}
}

func TestHumanHelpers(t *testing.T) {
	if got := HumanBytes(512); got != "512.0 B" {
		t.Fatalf("HumanBytes(512) = %q", got)
	}
	if got := HumanBytes(3 << 20); got != "3.0 MiB" {
		t.Fatalf("HumanBytes(3MiB) = %q", got)
	}
	if got := HumanSecondsShort(754); got != "12:34" {
		t.Fatalf("HumanSecondsShort(754) = %q", got)
	}
	if got := HumanSecondsShort(59); got != "0:59" {
		t.Fatalf("HumanSecondsShort(59) = %q", got)
	}
}
