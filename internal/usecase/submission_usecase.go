package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/Ravularamesh74/Job-Portal/internal/domain"
	"github.com/Ravularamesh74/Job-Portal/pkg/apperror"
	"github.com/Ravularamesh74/Job-Portal/pkg/logger"
	"github.com/Ravularamesh74/Job-Portal/pkg/security"
	"github.com/Ravularamesh74/Job-Portal/pkg/validation"
)

// SubmissionResult reports the outcome of a submit intent.
type SubmissionResult struct {
	State       domain.SubmissionState    `json:"state"`
	FieldErrors map[string]string         `json:"field_errors,omitempty"`
	Receipt     *domain.SubmissionReceipt `json:"receipt,omitempty"`
}

// SubmissionMachine owns the lifecycle of one application draft for one
// job, from editing through the terminal submitted state. All methods are
// safe for concurrent use; only one submission may be in flight at a time.
type SubmissionMachine struct {
	mu sync.Mutex

	jobID   string
	state   domain.SubmissionState
	draft   domain.ApplicationDraft
	outcome domain.SubmissionOutcome

	sink domain.SubmissionSink
}

// NewSubmissionMachine creates an empty draft in the editing state.
func NewSubmissionMachine(jobID string, sink domain.SubmissionSink) *SubmissionMachine {
	return &SubmissionMachine{
		jobID: jobID,
		state: domain.SubmissionStateEditing,
		sink:  sink,
	}
}

// UpdateFields applies field-by-field mutations to the draft. Only allowed
// while editing; a submission in flight or already completed rejects the
// mutation.
func (m *SubmissionMachine) UpdateFields(patch domain.DraftPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireEditingLocked(); err != nil {
		return err
	}

	if patch.FirstName != nil {
		m.draft.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		m.draft.LastName = *patch.LastName
	}
	if patch.Email != nil {
		m.draft.Email = *patch.Email
	}
	if patch.Phone != nil {
		m.draft.Phone = *patch.Phone
	}
	if patch.LinkedinURL != nil {
		m.draft.LinkedinURL = *patch.LinkedinURL
	}
	if patch.PortfolioURL != nil {
		m.draft.PortfolioURL = *patch.PortfolioURL
	}
	if patch.ExperienceBucket != nil {
		m.draft.ExperienceBucket = *patch.ExperienceBucket
	}
	if patch.CoverLetter != nil {
		m.draft.CoverLetter = *patch.CoverLetter
	}

	return nil
}

// AttachResume runs the attachment gate immediately and surfaces its
// result without waiting for submission. A rejected file is never
// attached; the previous attachment (if any) is kept.
func (m *SubmissionMachine) AttachResume(ref domain.AttachmentRef) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireEditingLocked(); err != nil {
		return err
	}

	if result := security.ValidateResume(ref.MediaType, ref.ByteSize); !result.Valid {
		return apperror.BadRequest(result.Error)
	}

	m.draft.Resume = &ref
	return nil
}

// RemoveResume detaches the current resume.
func (m *SubmissionMachine) RemoveResume() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireEditingLocked(); err != nil {
		return err
	}

	m.draft.Resume = nil
	return nil
}

// Submit is the submit intent. It validates all fields, then hands a
// finalized payload to the sink exactly once. On validation failure the
// machine returns to editing with the full error mapping and the sink is
// never contacted. On sink failure the draft is preserved verbatim so the
// candidate can retry. A second submit while one is in flight is a no-op.
func (m *SubmissionMachine) Submit(ctx context.Context, identity *domain.Identity) (*SubmissionResult, error) {
	m.mu.Lock()

	switch m.state {
	case domain.SubmissionStateSubmitting:
		// Single-flight guard: the attempt already in flight wins.
		m.mu.Unlock()
		return &SubmissionResult{State: domain.SubmissionStateSubmitting}, nil
	case domain.SubmissionStateSubmitted:
		m.mu.Unlock()
		return nil, apperror.Conflict("This application has already been submitted")
	}

	// 1. Validate every field; the gate's verdict for the current
	// attachment is already reflected (rejected files never attach).
	m.state = domain.SubmissionStateValidating
	errs := validation.ValidateDraft(&m.draft)
	if m.draft.Resume == nil {
		errs["resume"] = validation.MsgResumeRequired
	}
	if len(errs) > 0 {
		m.state = domain.SubmissionStateEditing
		m.mu.Unlock()
		return &SubmissionResult{
			State:       domain.SubmissionStateEditing,
			FieldErrors: errs,
		}, nil
	}

	// 2. Build the finalized payload and commit
	app := m.finalizeLocked(identity)
	m.state = domain.SubmissionStateSubmitting
	m.outcome = domain.OutcomePending
	m.mu.Unlock()

	receipt, err := m.sink.CreateApplication(ctx, bearerToken(identity), app)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		// Non-destructive failure: field values and attachment are kept
		// so the candidate can retry without re-entering data. The next
		// edit or submit intent re-enters editing.
		m.state = domain.SubmissionStateFailed
		m.outcome = domain.OutcomeFailed

		var sinkErr *domain.SinkError
		if errors.As(err, &sinkErr) && sinkErr.AuthRequired() {
			return nil, apperror.Unauthorized("Sign in to submit this application")
		}
		logger.Log.Error("submission commit failed", "job_id", m.jobID, "error", err)
		return nil, apperror.Retryable("Submission failed. Please try again.", err)
	}

	// 3. Terminal success: the draft is cleared
	m.state = domain.SubmissionStateSubmitted
	m.outcome = domain.OutcomeSucceeded
	m.draft = domain.ApplicationDraft{}

	return &SubmissionResult{
		State:   domain.SubmissionStateSubmitted,
		Receipt: receipt,
	}, nil
}

// Reset abandons the current draft (explicit cancel, or "apply to
// another" after a successful submission) and returns to an empty editing
// state. Abandoning is the single authoritative way to cancel; no partial
// commit exists.
func (m *SubmissionMachine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == domain.SubmissionStateSubmitting {
		// The in-flight attempt keeps its payload snapshot; the machine
		// itself simply returns to a fresh draft once it resolves.
		return
	}

	m.state = domain.SubmissionStateEditing
	m.outcome = ""
	m.draft = domain.ApplicationDraft{}
}

// State returns the current lifecycle state.
func (m *SubmissionMachine) State() domain.SubmissionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Snapshot returns a copy of the draft for UI resync.
func (m *SubmissionMachine) Snapshot() (domain.ApplicationDraft, domain.SubmissionState) {
	m.mu.Lock()
	defer m.mu.Unlock()

	draft := m.draft
	if m.draft.Resume != nil {
		ref := *m.draft.Resume
		draft.Resume = &ref
	}
	return draft, m.state
}

func (m *SubmissionMachine) requireEditingLocked() error {
	switch m.state {
	case domain.SubmissionStateSubmitting:
		return apperror.Conflict("Submission in progress")
	case domain.SubmissionStateSubmitted:
		return apperror.Conflict("This application has already been submitted")
	case domain.SubmissionStateFailed:
		m.state = domain.SubmissionStateEditing
	}
	return nil
}

func (m *SubmissionMachine) finalizeLocked(identity *domain.Identity) *domain.FinalizedApplication {
	candidateID := domain.GuestCandidateID
	if identity != nil {
		candidateID = identity.UserID
	}

	ref := *m.draft.Resume
	return &domain.FinalizedApplication{
		JobID:            m.jobID,
		CandidateID:      candidateID,
		FirstName:        m.draft.FirstName,
		LastName:         m.draft.LastName,
		Email:            m.draft.Email,
		Phone:            m.draft.Phone,
		LinkedinURL:      m.draft.LinkedinURL,
		PortfolioURL:     m.draft.PortfolioURL,
		ExperienceBucket: m.draft.ExperienceBucket,
		CoverLetter:      m.draft.CoverLetter,
		Resume:           &ref,
	}
}

func bearerToken(identity *domain.Identity) string {
	if identity == nil {
		return ""
	}
	return identity.Token
}
