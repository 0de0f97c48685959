// Package match defines the data exchanged with the external matching
// engine: candidates, recommendations, album/track metadata, and the
// Matcher interface used for manual re-queries.
//
// Everything here is plain data. Candidates are produced by the engine and
// treated as read-only by the decision and rendering layers; the JSON tags
// let engine output be serialized as a proposals document for offline
// reconciliation runs.
package match
