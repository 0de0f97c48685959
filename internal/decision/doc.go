// Package decision implements the interactive candidate-selection state
// machine.
//
// A Session turns a proposal (ranked candidates plus a recommendation tier)
// into a final Decision: apply a candidate, keep the tags as-is, skip the
// unit, re-group it, or abort the run. Quiet mode and high-confidence
// recommendations short-circuit the interactive loop entirely; otherwise the
// operator walks through candidate display, optional manual re-queries of
// the matcher, and a confirmation prompt.
package decision
