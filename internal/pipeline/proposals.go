package pipeline

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"retag/internal/match"
)

// LoadProposals reads an engine-produced proposals file: a JSON array of
// proposal objects. Candidate mappings are re-sorted into canonical track
// order and proposals without an ID get one assigned.
func LoadProposals(path string) ([]match.Proposal, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read proposals: %w", err)
	}

	var proposals []match.Proposal
	if err := json.Unmarshal(data, &proposals); err != nil {
		return nil, fmt.Errorf("parse proposals: %w", err)
	}

	for i := range proposals {
		prop := &proposals[i]
		if prop.ID == "" {
			prop.ID = uuid.NewString()
		}
		if prop.Singleton && prop.Item == nil && len(prop.Items) > 0 {
			prop.Item = &prop.Items[0]
		}
		for j := range prop.Candidates {
			prop.Candidates[j].SortMapping()
		}
	}
	return proposals, nil
}
