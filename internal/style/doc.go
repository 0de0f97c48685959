// Package style maps abstract color roles onto ANSI terminal escape
// sequences.
//
// A Table is built once at session start from configuration and passed to
// every rendering component; there is no process-global color state. Roles
// that cannot be resolved degrade to passthrough text with a single
// diagnostic, so a malformed color definition never breaks rendering.
//
// Strip and Width operate on any string and are used before all layout
// width arithmetic, since escape sequences occupy no terminal columns.
package style
