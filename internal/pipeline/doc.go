// Package pipeline runs an import: it walks the proposals produced by the
// matching engine, hands each one to the interactive decision session,
// resolves duplicates against the library, and commits accepted metadata.
package pipeline
