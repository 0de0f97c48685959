package render

import (
	"fmt"
	"sort"
	"strings"

	"retag/internal/match"
)

// ShowCandidates prints the ranked candidate list for the interactive loop:
// index and similarity for every candidate, the top pick's metadata
// colorized by its distance, penalties capped at the configured maximum,
// and the disambiguation line.
func (r *Renderer) ShowCandidates(prop *match.Proposal) {
	kind, subject := "album", prop.Artist+" - "+prop.Album
	if prop.Singleton && prop.Item != nil {
		kind, subject = "track", prop.Item.Artist+" - "+prop.Item.Title
	}

	r.print("")
	r.print(fmt.Sprintf("Finding tags for %s %q.", kind, subject))
	r.print(indent(2) + "Candidates:")

	for i, cand := range prop.Candidates {
		index := r.DistColorize(fmt.Sprintf("%d.", i+1), cand.Distance)
		similarity := r.DistColorize(fmt.Sprintf("(%.1f%%)", (1-cand.Distance)*100), cand.Distance)
		metadata := candidateMetadata(&cand)
		if i == 0 {
			metadata = r.DistColorize(metadata, cand.Distance)
		}
		r.print(indent(2) + strings.Join([]string{index, similarity, metadata}, " "))

		if penalties := r.PenaltyString(cand.Penalties, r.cfg.Match.MaxPenalties); penalties != "" {
			r.print(indent(13) + penalties)
		}
		disambig := r.DisambigString(cand.Album)
		if cand.Track != nil {
			disambig = r.TrackDisambigString(cand.Track)
		}
		if disambig != "" {
			r.print(indent(13) + disambig)
		}
	}
}

func candidateMetadata(cand *match.Candidate) string {
	if cand.Track != nil {
		return cand.TrackArtist + " - " + cand.Track.Title
	}
	return cand.Album.Artist + " - " + cand.Album.Album
}

// SummarizeItems produces the one-line description of a set of files used
// when resolving duplicates: item count, formats, average bitrate, total
// duration, and total size.
func SummarizeItems(items []match.Item, singleton bool) string {
	parts := []string{}
	if !singleton {
		parts = append(parts, fmt.Sprintf("%d items", len(items)))
	}

	counts := map[string]int{}
	for _, item := range items {
		counts[item.Format]++
	}
	if len(counts) == 1 {
		parts = append(parts, items[0].Format)
	} else {
		formats := make([]string, 0, len(counts))
		for format := range counts {
			formats = append(formats, format)
		}
		sort.Slice(formats, func(i, j int) bool {
			if counts[formats[i]] != counts[formats[j]] {
				return counts[formats[i]] > counts[formats[j]]
			}
			return formats[i] < formats[j]
		})
		for _, format := range formats {
			parts = append(parts, fmt.Sprintf("%s %d", format, counts[format]))
		}
	}

	if len(items) > 0 {
		var bitrate int
		var duration float64
		var size int64
		for _, item := range items {
			bitrate += item.Bitrate
			duration += item.Length
			size += item.Filesize
		}
		parts = append(parts,
			fmt.Sprintf("%dkbps", bitrate/len(items)/1000),
			HumanSecondsShort(duration),
			HumanBytes(size))
	}

	return strings.Join(parts, ", ")
}

// Print writes a plain line through the renderer's output stream.
func (r *Renderer) Print(args ...string) {
	r.print(args...)
}
