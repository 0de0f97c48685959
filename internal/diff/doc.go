// Package diff computes colorized word-level diffs between old and new
// metadata values.
//
// Alignment runs at rune granularity using a longest-matching-block
// strategy, producing equal/insert/delete/replace spans. Replace spans are
// then re-split into words so whitespace survives uncolored, and a span
// whose two sides differ only by letter case is marked with the minor
// highlight role instead of the add/remove pair.
package diff
