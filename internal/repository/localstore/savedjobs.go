package localstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Ravularamesh74/Job-Portal/internal/domain"
)

// SavedJobStore is the domain.LocalSavedJobStore for one session: the
// serialized id list under the "savedJobs" key.
type SavedJobStore struct {
	db        *DB
	sessionID string
}

// ForSession scopes the local store to a single session.
func (d *DB) ForSession(sessionID string) *SavedJobStore {
	return &SavedJobStore{db: d, sessionID: sessionID}
}

// Load reads the persisted id list, or an empty set if none exists yet.
func (s *SavedJobStore) Load(ctx context.Context) ([]string, error) {
	raw, err := s.db.get(ctx, s.sessionID, domain.LocalStorageKey)
	if err != nil {
		return nil, fmt.Errorf("reading saved jobs: %w", err)
	}
	if raw == "" {
		return nil, nil
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("decoding saved jobs: %w", err)
	}
	return ids, nil
}

// Save rewrites the serialized id list.
func (s *SavedJobStore) Save(ctx context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encoding saved jobs: %w", err)
	}
	if err := s.db.put(ctx, s.sessionID, domain.LocalStorageKey, string(raw)); err != nil {
		return fmt.Errorf("writing saved jobs: %w", err)
	}
	return nil
}
