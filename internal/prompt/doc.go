// Package prompt implements the interactive multiple-choice engine.
//
// A prompt is built from short option labels. Each label gets a single-letter
// shortcut, inferred from the label text, and the generated prompt line wraps
// at a configurable width with the shortcut letters highlighted. Malformed
// responses reprint a shorter fallback prompt and retry without bound; the
// only terminal conditions are a valid response or end of the input stream.
package prompt
