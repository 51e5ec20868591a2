package review

import (
	"encoding/json"
	"fmt"
	"os"
)

// Progress files hold a JSON array of finding identifiers currently in
// the Fixed state; the format is shared with the webapp's Save/Load
// Progress feature. Only the Fixed set persists: Not Relevant and To
// Discuss annotations are lost on reload. That asymmetry mirrors the
// review workflow this tool inherited; whether annotation loss is
// intended or an oversight is an open question with the stakeholders,
// so the contract is left as-is rather than hardened.

// SaveProgress writes the session's Fixed-id set to path. The file is
// written whole or not at all; a failed write leaves session state
// untouched.
func SaveProgress(path string, s *Session) error {
	data, err := json.MarshalIndent(s.FixedIDs(), "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling progress: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing progress file: %w", err)
	}
	return nil
}

// LoadProgress reads a progress file back into an id list. Validation
// of the ids against the current finding set happens in ApplyFixedIDs,
// which drops stale entries silently.
func LoadProgress(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading progress file: %w", err)
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("progress file %q is not a JSON array of ids: %w", path, err)
	}
	return ids, nil
}
