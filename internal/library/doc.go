// Package library persists imported albums and items in SQLite and answers
// the duplicate queries the import pipeline asks before committing a unit of
// work. A sidecar flock guards the database against concurrent retag
// processes.
package library
