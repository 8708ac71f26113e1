package domain

import "context"

// SavedJobMode indicates which backing store is authoritative for the
// session's bookmarked-jobs set.
type SavedJobMode string

const (
	SavedJobModeLocal  SavedJobMode = "local"
	SavedJobModeRemote SavedJobMode = "remote"
)

// LocalStorageKey is the key under which the serialized id list is kept in
// the device-local store. Read at startup, rewritten on every local-mode
// toggle.
const LocalStorageKey = "savedJobs"

// LocalSavedJobStore is the anonymous, device-local backing store for one
// session's saved-job ids.
type LocalSavedJobStore interface {
	Load(ctx context.Context) ([]string, error)
	Save(ctx context.Context, ids []string) error
}

// SavedJobSink is the server-synced backing store. Toggle flips membership
// of jobID and returns the new authoritative set; both calls require a
// bearer credential.
type SavedJobSink interface {
	ListSaved(ctx context.Context, token string) ([]string, error)
	ToggleSaved(ctx context.Context, token string, jobID string) ([]string, error)
}
