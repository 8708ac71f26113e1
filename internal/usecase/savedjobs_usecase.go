package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Ravularamesh74/Job-Portal/internal/domain"
	"github.com/Ravularamesh74/Job-Portal/pkg/apperror"
	"github.com/Ravularamesh74/Job-Portal/pkg/logger"
)

// SavedJobReconciler owns the session's bookmarked-job set and mediates
// between the device-local store (anonymous) and the remote sink
// (authenticated) behind a single toggle operation.
//
// Ordering rules: toggles for the same job id are serialized; toggles for
// different ids run concurrently; any toggle issued while the one-time
// login merge is in progress queues behind the merge.
type SavedJobReconciler struct {
	mu       sync.RWMutex // guards mode, members, identity
	mode     domain.SavedJobMode
	members  map[string]struct{}
	identity *domain.Identity

	mergeMu sync.RWMutex // merge/logout hold the write half, toggles the read half
	jobMu   sync.Map     // job id -> *sync.Mutex
	localMu sync.Mutex   // keeps local-store writes in snapshot order

	local domain.LocalSavedJobStore
	sink  domain.SavedJobSink
}

// NewSavedJobReconciler starts in local mode with the persisted snapshot
// (or an empty set if none).
func NewSavedJobReconciler(ctx context.Context, local domain.LocalSavedJobStore, sink domain.SavedJobSink) (*SavedJobReconciler, error) {
	r := &SavedJobReconciler{
		mode:    domain.SavedJobModeLocal,
		members: map[string]struct{}{},
		local:   local,
		sink:    sink,
	}

	ids, err := local.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		r.members[id] = struct{}{}
	}

	return r, nil
}

// IsSaved is the membership test against the active set.
func (r *SavedJobReconciler) IsSaved(jobID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.members[jobID]
	return ok
}

// Mode reports which backing store is currently authoritative.
func (r *SavedJobReconciler) Mode() domain.SavedJobMode {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.mode
}

// MemberIDs returns the active set, sorted for stable responses.
func (r *SavedJobReconciler) MemberIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.memberIDsLocked()
}

// toggleCommand captures the pre-toggle membership bit so an optimistic
// flip can be reverted exactly, even across rapid repeated toggles.
type toggleCommand struct {
	jobID  string
	before bool
}

func (r *SavedJobReconciler) applyFlip(jobID string) toggleCommand {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, before := r.members[jobID]
	if before {
		delete(r.members, jobID)
	} else {
		r.members[jobID] = struct{}{}
	}
	return toggleCommand{jobID: jobID, before: before}
}

func (r *SavedJobReconciler) revert(cmd toggleCommand) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cmd.before {
		r.members[cmd.jobID] = struct{}{}
	} else {
		delete(r.members, cmd.jobID)
	}
}

// Toggle flips membership for jobID and returns the new state. In local
// mode the flip is synchronous: set, persist, return. In remote mode the
// flip is optimistic: applied immediately, then confirmed against the
// sink; on failure the flip is rolled back, on success the sink's
// authoritative set replaces the in-memory one.
func (r *SavedJobReconciler) Toggle(ctx context.Context, jobID string) (bool, error) {
	// Queue behind an in-progress merge, then behind any prior toggle
	// still in flight for this id.
	r.mergeMu.RLock()
	defer r.mergeMu.RUnlock()

	idMu := r.lockJob(jobID)
	defer idMu.Unlock()

	r.mu.RLock()
	mode := r.mode
	identity := r.identity
	r.mu.RUnlock()

	cmd := r.applyFlip(jobID)
	saved := !cmd.before

	if mode == domain.SavedJobModeLocal {
		r.localMu.Lock()
		err := r.local.Save(ctx, r.MemberIDs())
		r.localMu.Unlock()
		if err != nil {
			r.revert(cmd)
			logger.Log.Error("local saved-jobs write failed", "job_id", jobID, "error", err)
			return cmd.before, apperror.Retryable("Could not update saved jobs. Please try again.", err)
		}
		return saved, nil
	}

	if identity == nil {
		r.revert(cmd)
		return cmd.before, apperror.Unauthorized("Sign in to sync saved jobs")
	}

	ids, err := r.sink.ToggleSaved(ctx, identity.Token, jobID)
	if err != nil {
		r.revert(cmd)

		var sinkErr *domain.SinkError
		if errors.As(err, &sinkErr) && sinkErr.AuthRequired() {
			return cmd.before, apperror.Unauthorized("Sign in to sync saved jobs")
		}
		logger.Log.Error("remote saved-jobs toggle failed", "job_id", jobID, "error", err)
		return cmd.before, apperror.Retryable("Could not update saved jobs. Please try again.", err)
	}

	// The returned set is authoritative and reconciles any server-side
	// divergence (e.g. a lost earlier toggle).
	r.replace(ids)
	return r.IsSaved(jobID), nil
}

// OnAuthenticated performs the one-time merge of the local set into the
// remote one, then switches authority to the remote store. Ids already
// present remotely are left untouched; a duplicate toggle would remove
// them. Ids that fail to merge stay in the local snapshot and are retried
// on the next login, never silently dropped. The local storage entry is
// superseded, not deleted.
func (r *SavedJobReconciler) OnAuthenticated(ctx context.Context, identity *domain.Identity) error {
	r.mergeMu.Lock()
	defer r.mergeMu.Unlock()

	r.mu.RLock()
	if r.mode == domain.SavedJobModeRemote {
		r.mu.RUnlock()
		return nil // already merged for this session
	}
	localIDs := r.memberIDsLocked()
	r.mu.RUnlock()

	// Fetched once; the read-then-write sequence below completes before
	// the mode switch, so no concurrent toggle can be lost.
	remoteIDs, err := r.sink.ListSaved(ctx, identity.Token)
	if err != nil {
		var sinkErr *domain.SinkError
		if errors.As(err, &sinkErr) && sinkErr.AuthRequired() {
			return apperror.Unauthorized("Session expired. Please sign in again.")
		}
		return apperror.Retryable("Could not load saved jobs. Please try again.", err)
	}

	remote := map[string]struct{}{}
	for _, id := range remoteIDs {
		remote[id] = struct{}{}
	}

	merged := map[string]struct{}{}
	for id := range remote {
		merged[id] = struct{}{}
	}

	var failed []string
	for _, id := range localIDs {
		if _, ok := remote[id]; ok {
			continue // already saved remotely; toggling would remove it
		}
		ids, err := r.sink.ToggleSaved(ctx, identity.Token, id)
		if err != nil {
			failed = append(failed, id)
			continue
		}
		merged = map[string]struct{}{}
		for _, mid := range ids {
			merged[mid] = struct{}{}
		}
	}

	// Authority switches to remote regardless of partial failures.
	r.mu.Lock()
	r.identity = identity
	r.mode = domain.SavedJobModeRemote
	r.members = merged
	r.mu.Unlock()

	if len(failed) > 0 {
		logger.Log.Warn("saved-jobs merge incomplete", "user_id", identity.UserID, "pending", failed)
		return apperror.Retryable("Some saved jobs could not be synced yet.", nil)
	}

	return nil
}

// OnLoggedOut reverts authority to a fresh local instance re-read from
// local storage. The previous remote set is not merged back.
func (r *SavedJobReconciler) OnLoggedOut(ctx context.Context) error {
	r.mergeMu.Lock()
	defer r.mergeMu.Unlock()

	ids, err := r.local.Load(ctx)
	if err != nil {
		ids = nil
		logger.Log.Error("local saved-jobs read failed on logout", "error", err)
	}

	r.mu.Lock()
	r.identity = nil
	r.mode = domain.SavedJobModeLocal
	r.members = map[string]struct{}{}
	for _, id := range ids {
		r.members[id] = struct{}{}
	}
	r.mu.Unlock()

	if err != nil {
		return apperror.Retryable("Could not load saved jobs. Please try again.", err)
	}
	return nil
}

func (r *SavedJobReconciler) replace(ids []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.members = map[string]struct{}{}
	for _, id := range ids {
		r.members[id] = struct{}{}
	}
}

func (r *SavedJobReconciler) memberIDsLocked() []string {
	ids := make([]string, 0, len(r.members))
	for id := range r.members {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (r *SavedJobReconciler) lockJob(jobID string) *sync.Mutex {
	muI, _ := r.jobMu.LoadOrStore(jobID, &sync.Mutex{})
	mu := muI.(*sync.Mutex)
	mu.Lock()
	return mu
}
