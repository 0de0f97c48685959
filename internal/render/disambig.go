package render

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"retag/internal/match"
	"retag/internal/style"
)

// mediaTitle normalizes medium names ("vinyl", "cassette") for display
// without mangling acronyms like CD.
var mediaTitle = cases.Title(language.English, cases.NoLower)

// referenceSource is the canonical metadata source; it is omitted from
// disambiguation strings because it is the uninteresting default.
const referenceSource = "MusicBrainz"

// DisambigString builds the context line that separates similar-looking
// releases: source, medium count and type, year, country, label, and the
// release disambiguation comment, joined with " | ". Returns "" when there
// is nothing to say.
func (r *Renderer) DisambigString(info *match.AlbumInfo) string {
	if info == nil {
		return ""
	}
	parts := make([]string, 0, 6)
	if info.DataSource != "" && info.DataSource != referenceSource {
		parts = append(parts, info.DataSource)
	}
	if info.Media != "" {
		media := mediaTitle.String(info.Media)
		if info.Mediums > 1 {
			parts = append(parts, fmt.Sprintf("%dx%s", info.Mediums, media))
		} else {
			parts = append(parts, media)
		}
	}
	if info.Year != 0 {
		parts = append(parts, strconv.Itoa(info.Year))
	}
	if info.Country != "" {
		parts = append(parts, info.Country)
	}
	if info.Label != "" {
		parts = append(parts, info.Label)
	}
	if info.Disambiguation != "" {
		parts = append(parts, info.Disambiguation)
	}
	if len(parts) == 0 {
		return ""
	}
	return r.styles.Colorize(style.HighlightMinor, strings.Join(parts, " | "))
}

// TrackDisambigString is the singleton counterpart of DisambigString: a
// standalone track carries no release context, so only a non-canonical
// data source is worth mentioning.
func (r *Renderer) TrackDisambigString(info *match.TrackInfo) string {
	if info == nil || info.DataSource == "" || info.DataSource == referenceSource {
		return ""
	}
	return r.styles.Colorize(style.HighlightMinor, info.DataSource)
}

// formatIndex renders a track position, honoring per-disc numbering for
// multi-disc releases.
func (r *Renderer) formatIndex(ref match.TrackRef) string {
	if r.cfg.UI.PerDiscNumbering {
		if ref.DiscCount > 1 {
			return fmt.Sprintf("%d-%d", ref.Medium, ref.MediumIndex)
		}
		return strconv.Itoa(ref.MediumIndex)
	}
	return strconv.Itoa(ref.Index)
}
