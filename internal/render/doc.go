// Package render draws the terminal views of proposed metadata changes.
//
// It composes the style, diff, and layout packages into the blocks the
// interactive session prints: the match header with its similarity
// percentage and penalty summary, the artist/album detail diff, the
// per-track change table grouped by medium, the ranked candidate list, and
// the one-line item summaries used when resolving duplicates.
package render
