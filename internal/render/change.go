package render

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"retag/internal/layout"
	"retag/internal/match"
	"retag/internal/style"
)

// notEqual prefixes changed lines (U+2260).
const notEqual = "≠"

// ShowAlbumChange renders the full change view for one album candidate: the
// match header, the artist/album detail diff, the per-track table grouped by
// medium, and the missing/unmatched warnings.
func (r *Renderer) ShowAlbumChange(curArtist, curAlbum string, cand *match.Candidate) {
	r.showMatchHeader(cand)
	r.showMatchDetails(curArtist, curAlbum, cand)
	r.showMatchTracks(cand)
}

func (r *Renderer) showMatchHeader(cand *match.Candidate) {
	head := indent(r.cfg.UI.Indentation.MatchHeader)
	info := cand.Album

	r.print("")
	r.print(head + fmt.Sprintf("Match (%s):", r.DistString(cand.Distance)))
	r.print(head + r.DistColorize(info.Artist+" - "+info.Album, cand.Distance))
	if penalties := r.PenaltyString(cand.Penalties, 0); penalties != "" {
		r.print(head + penalties)
	}
	if disambig := r.DisambigString(info); disambig != "" {
		r.print(head + disambig)
	}
	if url := dataURL(cand); url != "" {
		r.print(head + r.styles.Colorize(style.HighlightMinor, url))
	}
}

func dataURL(cand *match.Candidate) string {
	if cand.DataURL != "" {
		return cand.DataURL
	}
	if cand.Album != nil {
		return cand.Album.DataURL
	}
	return ""
}

func (r *Renderer) showMatchDetails(curArtist, curAlbum string, cand *match.Candidate) {
	detail := indent(r.cfg.UI.Indentation.MatchDetails)
	info := cand.Album

	// Compilations keep whatever artists the files carry; the sentinel
	// would only add noise.
	if info.Artist != match.VariousArtists {
		if curArtist != info.Artist {
			left, right := r.differ.Strings(curArtist, info.Artist)
			r.print(detail+r.styles.Colorize(style.Changed, notEqual), "Artist:", left, "->", right)
		} else {
			r.print(detail+"*", "Artist:", info.Artist)
		}
	}

	if curAlbum != info.Album && info.Album != match.VariousArtists {
		left, right := r.differ.Strings(curAlbum, info.Album)
		r.print(detail+r.styles.Colorize(style.Changed, notEqual), "Album:", left, "->", right)
	} else {
		r.print(detail+"*", "Album:", info.Album)
	}
}

func (r *Renderer) showMatchTracks(cand *match.Candidate) {
	info := cand.Album
	tracklistIndent := indent(r.cfg.UI.Indentation.MatchTracklist)

	rows := make([]layout.Row, 0, len(cand.Mapping)+2)
	var maxLeft, maxRight int
	medium, discTitle := -1, ""
	for _, pair := range cand.Mapping {
		if pair.Track.Medium != medium || pair.Track.DiscTitle != discTitle {
			rows = append(rows, layout.Row{
				Indent: indent(r.cfg.UI.Indentation.MatchDetails),
				Header: r.mediumInfoLine(info, pair.Track),
			})
			medium, discTitle = pair.Track.Medium, pair.Track.DiscTitle
		}

		row, changed := r.makeTrackRow(tracklistIndent, info, pair)
		if !changed && !r.cfg.UI.ShowUnchanged {
			continue
		}
		rows = append(rows, row)
		if row.Left.Width > maxLeft {
			maxLeft = row.Left.Width
		}
		if row.Right.Width > maxRight {
			maxRight = row.Right.Width
		}
	}

	joinerWidth := len("* ") + len(" -> ")
	budget := r.width - r.cfg.UI.Indentation.MatchTracklist - joinerWidth
	colLeft, colRight, _ := layout.Columns(budget, maxLeft, maxRight)

	mode := layout.Layout(r.cfg.UI.AlbumDiffLayout)
	for _, row := range rows {
		r.print(layout.RenderRow(row, colLeft, colRight, maxLeft, maxRight, mode))
	}

	r.showExtraTracks(cand)
	r.showExtraItems(cand)
}

// mediumInfoLine builds the "* CD 2: Disc title" header printed when the
// medium changes inside the track table.
func (r *Renderer) mediumInfoLine(info *match.AlbumInfo, track match.TrackInfo) string {
	media := "Media"
	if info.Media != "" {
		media = mediaTitle.String(info.Media)
	}
	switch {
	case info.Mediums > 1 && track.DiscTitle != "":
		return fmt.Sprintf("* %s %d: %s", media, track.Medium, track.DiscTitle)
	case track.DiscTitle != "":
		return fmt.Sprintf("* %s: %s", media, track.DiscTitle)
	default:
		return fmt.Sprintf("* %s %d", media, track.Medium)
	}
}

// makeTrackRow builds one comparison row and reports whether the track
// changes under the candidate.
func (r *Renderer) makeTrackRow(rowIndent string, info *match.AlbumInfo, pair match.TrackPair) (layout.Row, bool) {
	item, track := pair.Item, pair.Track

	curTitle, newTitle := r.trackTitles(item, track)
	curTrack, newTrack := r.trackNumbers(item, track, info.Mediums)
	curLength, newLength := r.trackLengths(item, track)

	leftPlain := style.Strip(curTrack + " " + curTitle + " " + curLength)
	rightPlain := style.Strip(newTrack + " " + newTitle + " " + newLength)
	changed := leftPlain != rightPlain

	prefix := "* "
	if changed {
		prefix = r.styles.Colorize(style.Changed, notEqual+" ")
	}

	return layout.Row{
		Indent:  rowIndent,
		Prefix:  prefix,
		Changed: changed,
		Left: layout.Side{
			Track:  curTrack,
			Title:  curTitle,
			Length: curLength,
			Width:  style.Width(curTrack + " " + curTitle + " " + curLength),
		},
		Right: layout.Side{
			Track:  newTrack,
			Title:  newTitle,
			Length: newLength,
			Width:  style.Width(newTrack + " " + newTitle + " " + newLength),
		},
	}, changed
}

func (r *Renderer) trackTitles(item match.Item, track match.TrackInfo) (string, string) {
	if strings.TrimSpace(item.Title) == "" {
		// No tagged title; show the filename without diffing it.
		return filepath.Base(item.Path), track.Title
	}
	return r.differ.Strings(strings.TrimSpace(item.Title), track.Title)
}

func (r *Renderer) trackNumbers(item match.Item, track match.TrackInfo, mediums int) (string, string) {
	curIndex := r.formatIndex(item.Ref())
	newIndex := r.formatIndex(track.Ref(mediums))
	if curIndex == newIndex {
		return "", ""
	}
	role := style.Highlight
	if item.Track == track.Index || item.Track == track.MediumIndex {
		// A renumbering artifact rather than a real mismatch.
		role = style.HighlightMinor
	}
	return r.styles.Colorize(role, "(#"+curIndex+")"), r.styles.Colorize(role, "(#"+newIndex+")")
}

func (r *Renderer) trackLengths(item match.Item, track match.TrackInfo) (string, string) {
	role := style.HighlightMinor
	if item.Length > 0 && track.Length > 0 &&
		math.Abs(item.Length-track.Length) > r.cfg.UI.LengthDiffThreshold {
		role = style.Highlight
	}
	return r.styles.Colorize(role, "("+HumanSecondsShort(item.Length)+")"),
		r.styles.Colorize(role, "("+HumanSecondsShort(track.Length)+")")
}

func (r *Renderer) showExtraTracks(cand *match.Candidate) {
	if len(cand.ExtraTracks) == 0 {
		return
	}
	total := len(cand.Album.Tracks)
	if total == 0 {
		total = len(cand.Mapping) + len(cand.ExtraTracks)
	}
	r.print(fmt.Sprintf("Missing tracks (%d/%d - %.1f%%):",
		len(cand.ExtraTracks), total, float64(len(cand.ExtraTracks))/float64(total)*100))
	for _, track := range cand.ExtraTracks {
		line := fmt.Sprintf(" ! %s (#%s)", track.Title, r.formatIndex(track.Ref(cand.Album.Mediums)))
		if track.Length > 0 {
			line += fmt.Sprintf(" (%s)", HumanSecondsShort(track.Length))
		}
		r.print(r.styles.Colorize(style.Warning, line))
	}
}

func (r *Renderer) showExtraItems(cand *match.Candidate) {
	if len(cand.ExtraItems) == 0 {
		return
	}
	r.print(fmt.Sprintf("Unmatched tracks (%d):", len(cand.ExtraItems)))
	for _, item := range cand.ExtraItems {
		line := fmt.Sprintf(" ! %s (#%s)", item.Title, r.formatIndex(item.Ref()))
		if item.Length > 0 {
			line += fmt.Sprintf(" (%s)", HumanSecondsShort(item.Length))
		}
		r.print(r.styles.Colorize(style.Warning, line))
	}
}

// ShowTrackChange renders the change view for a standalone track candidate.
func (r *Renderer) ShowTrackChange(item *match.Item, cand *match.Candidate) {
	track := cand.Track
	newArtist := cand.TrackArtist
	curArtist, curTitle := item.Artist, item.Title

	if curArtist != newArtist || curTitle != track.Title {
		artistL, artistR := r.differ.Strings(curArtist, newArtist)
		titleL, titleR := r.differ.Strings(curTitle, track.Title)
		r.print("Correcting track tags from:")
		r.print(fmt.Sprintf("    %s - %s", artistL, titleL))
		r.print("To:")
		r.print(fmt.Sprintf("    %s - %s", artistR, titleR))
	} else {
		r.print(fmt.Sprintf("Tagging track: %s - %s", curArtist, curTitle))
	}

	if cand.DataURL != "" {
		r.print("URL:\n    " + cand.DataURL)
	}

	parts := []string{fmt.Sprintf("(Similarity: %s)", r.DistString(cand.Distance))}
	if penalties := r.PenaltyString(cand.Penalties, 0); penalties != "" {
		parts = append(parts, penalties)
	}
	if disambig := r.TrackDisambigString(track); disambig != "" {
		parts = append(parts, "("+disambig+")")
	}
	r.print(strings.Join(parts, " "))
}
