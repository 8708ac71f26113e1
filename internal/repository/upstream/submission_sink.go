package upstream

import (
	"context"

	"github.com/Ravularamesh74/Job-Portal/internal/domain"
)

// SubmissionSink implements domain.SubmissionSink against
// POST /applications/{jobId}.
type SubmissionSink struct {
	client *Client
}

func NewSubmissionSink(client *Client) *SubmissionSink {
	return &SubmissionSink{client: client}
}

// createApplicationRequest carries the finalized draft fields. Resume raw
// bytes stay opaque; only the declared metadata crosses here, the upload
// itself is the collaborator's concern.
type createApplicationRequest struct {
	CandidateID      string `json:"candidate_id"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Email            string `json:"email"`
	Phone            string `json:"phone,omitempty"`
	LinkedinURL      string `json:"linkedin_url,omitempty"`
	PortfolioURL     string `json:"portfolio_url,omitempty"`
	ExperienceBucket string `json:"experience_years,omitempty"`
	CoverLetter      string `json:"cover_letter"`
	ResumeFilename   string `json:"resume_filename"`
	ResumeByteSize   int64  `json:"resume_byte_size"`
	ResumeMediaType  string `json:"resume_media_type"`
}

type createApplicationResponse struct {
	ID     string `json:"_id"`
	Status string `json:"status"`
}

func (s *SubmissionSink) CreateApplication(ctx context.Context, token string, app *domain.FinalizedApplication) (*domain.SubmissionReceipt, error) {
	req := createApplicationRequest{
		CandidateID:      app.CandidateID,
		FirstName:        app.FirstName,
		LastName:         app.LastName,
		Email:            app.Email,
		Phone:            app.Phone,
		LinkedinURL:      app.LinkedinURL,
		PortfolioURL:     app.PortfolioURL,
		ExperienceBucket: app.ExperienceBucket,
		CoverLetter:      app.CoverLetter,
	}
	if app.Resume != nil {
		req.ResumeFilename = app.Resume.Filename
		req.ResumeByteSize = app.Resume.ByteSize
		req.ResumeMediaType = app.Resume.MediaType
	}

	var resp createApplicationResponse
	if err := s.client.doJSON(ctx, "POST", "/applications/"+app.JobID, token, req, &resp); err != nil {
		return nil, err
	}

	status := resp.Status
	if status == "" {
		status = "Pending"
	}
	return &domain.SubmissionReceipt{ID: resp.ID, Status: status}, nil
}
