package session

import (
	"context"
	"sync"

	"github.com/Ravularamesh74/Job-Portal/internal/domain"
	"github.com/Ravularamesh74/Job-Portal/internal/repository/localstore"
	"github.com/Ravularamesh74/Job-Portal/internal/usecase"
)

// Session is one browser session's slice of the pipeline: its identity (if
// authenticated), its saved-job reconciler, and one submission machine per
// job. Each draft and saved set is owned by exactly one session.
type Session struct {
	ID string

	mu       sync.RWMutex
	identity *domain.Identity
	machines map[string]*usecase.SubmissionMachine

	Saved *usecase.SavedJobReconciler
}

// Identity returns the attached identity, or nil for anonymous sessions.
func (s *Session) Identity() *domain.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

// Login attaches the identity and triggers the one-time saved-jobs merge.
// The merge error (if any) is returned after the identity is attached, so
// a partial merge still leaves the session authenticated.
func (s *Session) Login(ctx context.Context, identity *domain.Identity) error {
	s.mu.Lock()
	s.identity = identity
	s.mu.Unlock()

	return s.Saved.OnAuthenticated(ctx, identity)
}

// Logout detaches the identity and reverts saved jobs to the local store.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.identity = nil
	s.mu.Unlock()

	return s.Saved.OnLoggedOut(ctx)
}

// MachineFor returns the submission machine for jobID, creating an empty
// draft on first use.
func (s *Session) MachineFor(jobID string, sink domain.SubmissionSink) *usecase.SubmissionMachine {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m, ok := s.machines[jobID]; ok {
		return m
	}
	m := usecase.NewSubmissionMachine(jobID, sink)
	s.machines[jobID] = m
	return m
}

// DropMachine destroys the draft for jobID (explicit cancel after a
// terminal state, or "return to listings").
func (s *Session) DropMachine(jobID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.machines, jobID)
}

// Registry tracks live sessions by id.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	store     *localstore.DB
	savedSink domain.SavedJobSink
}

func NewRegistry(store *localstore.DB, savedSink domain.SavedJobSink) *Registry {
	return &Registry{
		sessions:  map[string]*Session{},
		store:     store,
		savedSink: savedSink,
	}
}

// GetOrCreate returns the session for id, bootstrapping a new one (local
// saved-jobs snapshot loaded from the device store) when absent.
func (r *Registry) GetOrCreate(ctx context.Context, id string) (*Session, error) {
	r.mu.RLock()
	sess, ok := r.sessions[id]
	r.mu.RUnlock()
	if ok {
		return sess, nil
	}

	saved, err := usecase.NewSavedJobReconciler(ctx, r.store.ForSession(id), r.savedSink)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Lost the race: keep the first bootstrap.
	if existing, ok := r.sessions[id]; ok {
		return existing, nil
	}

	sess = &Session{
		ID:       id,
		machines: map[string]*usecase.SubmissionMachine{},
		Saved:    saved,
	}
	r.sessions[id] = sess
	return sess, nil
}
