package domain

import "context"

// Submission states for one application draft
type SubmissionState string

const (
	SubmissionStateEditing    SubmissionState = "editing"
	SubmissionStateValidating SubmissionState = "validating"
	SubmissionStateSubmitting SubmissionState = "submitting"
	SubmissionStateSubmitted  SubmissionState = "submitted"
	SubmissionStateFailed     SubmissionState = "failed"
)

// Outcome of the most recent submission attempt. Never persisted beyond
// the current form session.
type SubmissionOutcome string

const (
	OutcomePending   SubmissionOutcome = "pending"
	OutcomeSucceeded SubmissionOutcome = "succeeded"
	OutcomeFailed    SubmissionOutcome = "failed"
)

// GuestCandidateID marks submissions from sessions without an identity.
const GuestCandidateID = "guest"

// ExperienceBuckets are the selectable ranges for the optional
// years-of-experience field. Values are stored verbatim.
var ExperienceBuckets = []string{
	"0–1 years",
	"1–3 years",
	"3–5 years",
	"5–8 years",
	"8–12 years",
	"12+ years",
}

// AttachmentRef describes a candidate-supplied resume. Raw holds the bytes
// opaquely; nothing beyond declared MediaType and ByteSize is inspected.
type AttachmentRef struct {
	Filename  string `json:"filename"`
	ByteSize  int64  `json:"byte_size"`
	MediaType string `json:"media_type"`
	Raw       []byte `json:"-"`
}

// ApplicationDraft is the mutable, in-progress application before
// submission. One per (session, job).
type ApplicationDraft struct {
	FirstName        string         `json:"first_name"`
	LastName         string         `json:"last_name"`
	Email            string         `json:"email"`
	Phone            string         `json:"phone,omitempty"`
	LinkedinURL      string         `json:"linkedin_url,omitempty"`
	PortfolioURL     string         `json:"portfolio_url,omitempty"`
	ExperienceBucket string         `json:"experience_years,omitempty"`
	CoverLetter      string         `json:"cover_letter"`
	Resume           *AttachmentRef `json:"resume,omitempty"`
}

// DraftPatch carries field-by-field mutations; nil fields are untouched.
type DraftPatch struct {
	FirstName        *string `json:"firstName"`
	LastName         *string `json:"lastName"`
	Email            *string `json:"email"`
	Phone            *string `json:"phone"`
	LinkedinURL      *string `json:"linkedin"`
	PortfolioURL     *string `json:"portfolio"`
	ExperienceBucket *string `json:"experienceYears"`
	CoverLetter      *string `json:"coverLetter"`
}

// FinalizedApplication is the payload handed to the submission sink. It is
// the only entity that crosses the system boundary.
type FinalizedApplication struct {
	JobID            string         `json:"job_id"`
	CandidateID      string         `json:"candidate_id"`
	FirstName        string         `json:"first_name"`
	LastName         string         `json:"last_name"`
	Email            string         `json:"email"`
	Phone            string         `json:"phone,omitempty"`
	LinkedinURL      string         `json:"linkedin_url,omitempty"`
	PortfolioURL     string         `json:"portfolio_url,omitempty"`
	ExperienceBucket string         `json:"experience_years,omitempty"`
	CoverLetter      string         `json:"cover_letter"`
	Resume           *AttachmentRef `json:"resume"`
}

// SubmissionReceipt is the created record returned by the sink.
type SubmissionReceipt struct {
	ID     string `json:"id"`
	Status string `json:"status"` // "Pending" on creation
}

// SubmissionSink is the remote persistence endpoint for applications.
// Token may be empty for guest submissions.
type SubmissionSink interface {
	CreateApplication(ctx context.Context, token string, app *FinalizedApplication) (*SubmissionReceipt, error)
}
