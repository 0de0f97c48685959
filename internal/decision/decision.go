package decision

import "retag/internal/match"

// Action is the terminal outcome of a decision.
type Action int

const (
	// ActionApply accepts a candidate's metadata.
	ActionApply Action = iota
	// ActionSkip drops the unit of work entirely.
	ActionSkip
	// ActionAsIs keeps the current tags untouched.
	ActionAsIs
	// ActionTracks re-imports an album's files as standalone tracks.
	ActionTracks
	// ActionAlbums re-groups loose files into albums.
	ActionAlbums
	// ActionAbort terminates the whole run, not just this unit. Callers
	// must propagate it without starting further units.
	ActionAbort
)

var actionNames = map[Action]string{
	ActionApply:  "apply",
	ActionSkip:   "skip",
	ActionAsIs:   "asis",
	ActionTracks: "tracks",
	ActionAlbums: "albums",
	ActionAbort:  "abort",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// Decision is the session's answer for one unit of work. Candidate is set
// only for ActionApply.
type Decision struct {
	Action    Action
	Candidate *match.Candidate
}

// DuplicateAction resolves a unit that already exists in the library.
type DuplicateAction int

const (
	// DuplicateSkipNew drops the incoming unit.
	DuplicateSkipNew DuplicateAction = iota
	// DuplicateKeepBoth imports alongside the existing copy.
	DuplicateKeepBoth
	// DuplicateRemoveOld removes the existing copy before importing.
	DuplicateRemoveOld
)

func (d DuplicateAction) String() string {
	switch d {
	case DuplicateSkipNew:
		return "skip-new"
	case DuplicateKeepBoth:
		return "keep-both"
	case DuplicateRemoveOld:
		return "remove-old"
	default:
		return "unknown"
	}
}
