// Package layout performs terminal-width-aware text placement for the
// change renderer.
//
// It negotiates one- or two-column layouts from visible widths, word-wraps
// colorized fragments against per-line budgets that reserve space for track
// numbers and durations, and renders track comparison rows in compact,
// columnar, or newline form. All functions are pure: they take explicit
// inputs and return printable strings.
package layout
