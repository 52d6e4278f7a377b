package registry

import (
	"encoding/json"

	"apistake/core/state"
)

// ProjectStore persists Project records keyed by project id.
type ProjectStore struct {
	store state.Store
}

// NewProjectStore wraps store as a ProjectStore.
func NewProjectStore(store state.Store) *ProjectStore {
	return &ProjectStore{store: store}
}

// Get returns the project record for projectID, or ok=false if unset.
func (s *ProjectStore) Get(projectID string) (Project, bool, error) {
	raw, err := s.store.Get(state.ProjectKey(projectID))
	if err != nil {
		if err == state.ErrNotFound {
			return Project{}, false, nil
		}
		return Project{}, false, err
	}
	var p Project
	if err := json.Unmarshal(raw, &p); err != nil {
		return Project{}, false, err
	}
	return p, true, nil
}

// Put persists p under projectID.
func (s *ProjectStore) Put(projectID string, p Project) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.store.Set(state.ProjectKey(projectID), raw)
}

// Count returns the number of registered projects.
func (s *ProjectStore) Count() (int, error) {
	count := 0
	err := s.store.IteratePrefix(state.ProjectPrefix(), func(_, _ []byte) bool {
		count++
		return true
	})
	return count, err
}
